// Package login реализует обработчик входа пользователя с выпуском JWT.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mkrivolapov/secure-auth/internal/http/response"
	"github.com/mkrivolapov/secure-auth/internal/lib/sl"
	"github.com/mkrivolapov/secure-auth/internal/models"
	authservice "github.com/mkrivolapov/secure-auth/internal/services/auth"
)

// Request — входные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response — ответ успешного входа: токен и безопасная проекция пользователя.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    models.UserInfo `json:"user"`
}

// Authenticator описывает интерфейс сервиса аутентификации.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type Handler struct {
	log      *slog.Logger
	auth     Authenticator
	validate *validator.Validate
}

func New(log *slog.Logger, auth Authenticator) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP
// @Summary Вход пользователя, выпуск JWT
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Данные для входа (email, password)"
// @Success 200 {object} Response "Токен и данные пользователя"
// @Failure 400 {object} response.Response "Ошибка валидации или некорректный запрос"
// @Failure 401 {object} response.Response "Неверный email или пароль"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
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

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			// неизвестный email и неверный пароль неразличимы для клиента
			log.Error("invalid email or password")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Invalid email or password."))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error during login."))
		return
	}

	log.Info("user logged in", slog.String("uid", user.UID))
	render.JSON(w, r, Response{
		Success: true,
		Message: "Login successful.",
		Token:   token,
		User:    user.Info(),
	})
}
