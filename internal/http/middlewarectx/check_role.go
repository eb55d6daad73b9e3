package middlewarectx

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mkrivolapov/secure-auth/internal/http/response"
)

// RequireRole создает middleware, пропускающий запрос только если роль из
// контекста входит в allowed. Должен стоять в цепочке строго после
// JWTMiddleware: собственной логики извлечения идентичности у него нет.
func RequireRole(log *slog.Logger, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			role, ok := r.Context().Value(Role).(string)
			if !ok || !slices.Contains(allowed, role) {
				log.Error("insufficient permissions", slog.String("role", role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Access denied. Insufficient permissions."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
