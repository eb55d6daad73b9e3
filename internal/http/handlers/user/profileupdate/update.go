// Package profileupdate реализует обработчик обновления профиля пользователя.
package profileupdate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
	"github.com/mkrivolapov/secure-auth/internal/http/response"
	"github.com/mkrivolapov/secure-auth/internal/lib/sl"
	"github.com/mkrivolapov/secure-auth/internal/models"
	userservice "github.com/mkrivolapov/secure-auth/internal/services/user"
)

// Request — входные данные обновления профиля. Оба поля опциональны;
// пустое тело запроса — no-op с текущим профилем в ответе.
type Request struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

// Response — ответ с обновлённой безопасной проекцией пользователя.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    models.UserInfo `json:"user"`
}

// ProfileUpdater описывает интерфейс сервиса обновления профиля.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, uid, name, email string) (*models.UserInfo, error)
}

type Handler struct {
	log      *slog.Logger
	profiles ProfileUpdater
	validate *validator.Validate
}

func New(log *slog.Logger, profiles ProfileUpdater) *Handler {
	return &Handler{
		log:      log,
		profiles: profiles,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profileupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.UID).(string)
	if !ok || uid == "" {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	info, err := h.profiles.UpdateProfile(r.Context(), uid, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrUserNotFound):
			log.Error("user not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found."))
		case errors.Is(err, userservice.ErrEmailTaken):
			log.Error("email already in use", slog.String("email", req.Email))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("Email already in use."))
		default:
			log.Error("profile update failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Server error."))
		}
		return
	}

	log.Info("profile updated", slog.String("uid", uid))
	render.JSON(w, r, Response{
		Success: true,
		Message: "Profile updated successfully.",
		User:    *info,
	})
}
