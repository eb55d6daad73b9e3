// Package secureauth предоставляет маршруты приложения.
package secureauth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mkrivolapov/secure-auth/internal/http/handlers/auth/login"
	"github.com/mkrivolapov/secure-auth/internal/http/handlers/auth/register"
	"github.com/mkrivolapov/secure-auth/internal/http/handlers/panel/admin"
	"github.com/mkrivolapov/secure-auth/internal/http/handlers/panel/dashboard"
	"github.com/mkrivolapov/secure-auth/internal/http/handlers/user/passwordupdate"
	"github.com/mkrivolapov/secure-auth/internal/http/handlers/user/profileread"
	"github.com/mkrivolapov/secure-auth/internal/http/handlers/user/profileupdate"
	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
	"github.com/mkrivolapov/secure-auth/internal/lib/jwt"
	authservice "github.com/mkrivolapov/secure-auth/internal/services/auth"
	userservice "github.com/mkrivolapov/secure-auth/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.Service, userService *userservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Secure Backend is running!"))
	})

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Get("/user/profile", profileread.New(logger, userService).ServeHTTP)
			r.Put("/user/profile", profileupdate.New(logger, userService).ServeHTTP)
			r.Put("/user/password", passwordupdate.New(logger, userService).ServeHTTP)
			r.Get("/dashboard", dashboard.New(logger).ServeHTTP)

			// Группа с проверкой роли
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, "admin"))
				r.Get("/admin", admin.New(logger).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
