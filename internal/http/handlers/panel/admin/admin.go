// Package admin реализует защищённый эндпоинт, доступный только роли admin.
// Проверка роли выполняется композицией JWTMiddleware и RequireRole в
// маршрутизаторе; собственной логики авторизации здесь нет.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Response — приветственное сообщение.
type Response struct {
	Message string `json:"message"`
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Message: "Welcome to the Admin Panel.",
	})
}
