// Package auth содержит бизнес-логику регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkrivolapov/secure-auth/internal/lib/jwt"
	"github.com/mkrivolapov/secure-auth/internal/lib/password"
	"github.com/mkrivolapov/secure-auth/internal/models"
	"github.com/mkrivolapov/secure-auth/internal/storage/repository"
)

// Ошибки уровня сервиса, по которым обработчики выбирают статус ответа.
var (
	// ErrEmailTaken email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials неверный email или пароль. Неизвестный email и
	// неверный пароль намеренно неразличимы для вызывающей стороны.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за регистрацию и выпуск JWT при входе.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Роль всегда принудительно "user": клиент не может назначить себе роль
// при регистрации. Конфликт email отдаёт ErrEmailTaken; арбитром гонки
// служит уникальное ограничение базы данных.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         "user",
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT с uid, role и email.
// Отсутствующий пользователь и неверный пароль сведены к одной ошибке.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}
