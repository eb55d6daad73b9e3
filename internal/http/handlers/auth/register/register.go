// Package register реализует обработчик регистрации нового пользователя.
package register

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
	authservice "github.com/mkrivolapov/secure-auth/internal/services/auth"
)

// Request — входные данные для регистрации. Поле роли намеренно
// отсутствует: роль назначает сервер.
type Request struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response — ответ успешной регистрации.
type Response struct {
	Message string `json:"message"`
	UserID  string `json:"userID"`
}

// Registration описывает интерфейс сервиса регистрации.
type Registration interface {
	Register(ctx context.Context, name, email, password string) (string, error)
}

type Handler struct {
	log          *slog.Logger
	registration Registration
	validate     *validator.Validate
}

func New(log *slog.Logger, registration Registration) *Handler {
	return &Handler{
		log:          log,
		registration: registration,
		validate:     validator.New(),
	}
}

// ServeHTTP
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Данные для регистрации (name, email, password)"
// @Success 201 {object} Response "Пользователь успешно создан"
// @Failure 400 {object} response.Response "Ошибка валидации или некорректный запрос"
// @Failure 409 {object} response.Response "Email уже зарегистрирован"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	uid, err := h.registration.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			log.Error("email already exists", slog.String("email", req.Email))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("Email already exists."))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error during registration."))
		return
	}

	log.Info("created new user", slog.String("uid", uid))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: "User registered successfully.",
		UserID:  uid,
	})
}
