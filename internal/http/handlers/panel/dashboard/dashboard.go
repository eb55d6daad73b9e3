// Package dashboard реализует защищённый пример эндпоинта: приветствие
// для любого аутентифицированного пользователя. Данные идентичности
// берутся только из claims токена, база данных не читается.
package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
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
	uid, _ := r.Context().Value(middlewarectx.UID).(string)
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	render.JSON(w, r, Response{
		Message: fmt.Sprintf("Welcome to the dashboard, User %s (%s)!", uid, role),
	})
}
