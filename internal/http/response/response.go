// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Поле message отдаётся
// клиенту как есть, внутренние детали ошибок в него никогда не попадают.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Success присутствует только в успешных ответах.
type Response struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK возвращает успешный ответ с сообщением.
func OK(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// Error возвращает ответ с текстом ошибки.
func Error(msg string) Response {
	return Response{
		Message: msg,
	}
}

// ValidationError собирает ошибки валидации полей запроса в одно сообщение.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Message: strings.Join(errsMsgs, ", "),
	}
}
