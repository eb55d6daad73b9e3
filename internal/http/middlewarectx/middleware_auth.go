// Package middlewarectx содержит HTTP middleware для проверки JWT токенов
// и ролей пользователя.
//
// JWTMiddleware проверяет наличие и валидность JWT в заголовке Authorization
// и в случае успеха добавляет в контекст uid, роль и email пользователя для
// дальнейшего использования в обработчиках. База данных при этом не
// читается: данные идентичности берутся только из claims токена.
//
// Отсутствие токена отдаёт HTTP 403, невалидный или просроченный токен — 401.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mkrivolapov/secure-auth/internal/http/response"
	"github.com/mkrivolapov/secure-auth/internal/lib/jwt"
	"github.com/mkrivolapov/secure-auth/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UID — ключ для идентификатора пользователя в контексте
	UID Key = "uid"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// Email — ключ для email пользователя в контексте
	Email Key = "email"
)

// TokenParser описывает интерфейс проверки JWT токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке
// Authorization. Заголовок принимается как в форме "Bearer <token>", так и
// голым токеном.
func JWTMiddleware(tokens TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Error("no token provided")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("No token provided."))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Failed to authenticate token."))
				return
			}
			ctx := context.WithValue(r.Context(), UID, claims.UID)
			ctx = context.WithValue(ctx, Role, claims.Role)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
