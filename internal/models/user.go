// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и роль.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя (может быть пустым)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Дата создания записи
}

// UserInfo безопасная проекция пользователя для ответов клиенту.
// Хэш пароля никогда не покидает сервер.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Info возвращает безопасную проекцию пользователя.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:    u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
