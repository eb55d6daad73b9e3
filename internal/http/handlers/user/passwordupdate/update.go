// Package passwordupdate реализует обработчик смены пароля пользователя.
package passwordupdate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
	"github.com/mkrivolapov/secure-auth/internal/http/response"
	"github.com/mkrivolapov/secure-auth/internal/lib/sl"
	userservice "github.com/mkrivolapov/secure-auth/internal/services/user"
)

// Request — входные данные смены пароля, оба поля обязательны.
type Request struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// PasswordChanger описывает интерфейс сервиса смены пароля.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error
}

type Handler struct {
	log      *slog.Logger
	profiles PasswordChanger
	validate *validator.Validate
}

func New(log *slog.Logger, profiles PasswordChanger) *Handler {
	return &Handler{
		log:      log,
		profiles: profiles,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.passwordupdate"

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
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Current and new password are required."))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Current and new password are required."))
		return
	}

	if err := h.profiles.ChangePassword(r.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, userservice.ErrWrongPassword):
			log.Error("incorrect current password", slog.String("uid", uid))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Incorrect current password."))
		case errors.Is(err, userservice.ErrUserNotFound):
			log.Error("user not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found."))
		default:
			log.Error("password update failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Server error."))
		}
		return
	}

	log.Info("password updated", slog.String("uid", uid))
	render.JSON(w, r, response.OK("Password updated successfully."))
}
