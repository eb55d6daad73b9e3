// Package profileread реализует обработчик чтения профиля пользователя.
package profileread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
	"github.com/mkrivolapov/secure-auth/internal/http/response"
	"github.com/mkrivolapov/secure-auth/internal/lib/sl"
	"github.com/mkrivolapov/secure-auth/internal/models"
	userservice "github.com/mkrivolapov/secure-auth/internal/services/user"
)

// Response — ответ с безопасной проекцией пользователя.
type Response struct {
	Success bool            `json:"success"`
	User    models.UserInfo `json:"user"`
}

// ProfileGetter описывает интерфейс сервиса чтения профиля.
type ProfileGetter interface {
	GetProfile(ctx context.Context, uid string) (*models.UserInfo, error)
}

type Handler struct {
	log      *slog.Logger
	profiles ProfileGetter
}

func New(log *slog.Logger, profiles ProfileGetter) *Handler {
	return &Handler{
		log:      log,
		profiles: profiles,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profileread"

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

	info, err := h.profiles.GetProfile(r.Context(), uid)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			log.Error("user not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found."))
			return
		}
		log.Error("profile read failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error."))
		return
	}

	render.JSON(w, r, Response{
		Success: true,
		User:    *info,
	})
}
