// Package user содержит бизнес-логику чтения и обновления профиля
// и смены пароля, с кэшированием безопасной проекции профиля.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkrivolapov/secure-auth/internal/lib/password"
	"github.com/mkrivolapov/secure-auth/internal/lib/sl"
	"github.com/mkrivolapov/secure-auth/internal/models"
	"github.com/mkrivolapov/secure-auth/internal/storage/repository"
)

// Время жизни кэшированной проекции профиля.
const profileCacheTTL = 5 * time.Minute

// Ошибки уровня сервиса, по которым обработчики выбирают статус ответа.
var (
	// ErrUserNotFound пользователь исчез между выпуском токена и запросом.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken новый email занят другим пользователем.
	ErrEmailTaken = errors.New("email already in use")
	// ErrWrongPassword текущий пароль не совпал с сохранённым хэшем.
	ErrWrongPassword = errors.New("incorrect current password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, uid, name, email string) error
	UpdateUserPassword(ctx context.Context, uid, passwordHash string) error
}

// ProfileCache описывает кэш безопасных проекций профиля.
type ProfileCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service отвечает за чтение и изменение профиля пользователя.
type Service struct {
	users UserRepository
	cache ProfileCache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, cache ProfileCache, log *slog.Logger) *Service {
	return &Service{
		users: users,
		cache: cache,
		log:   log,
	}
}

func cacheKey(uid string) string {
	return "user:" + uid
}

// GetProfile возвращает безопасную проекцию профиля, читая через кэш.
// Ошибки кэша деградируют до чтения из хранилища.
func (s *Service) GetProfile(ctx context.Context, uid string) (*models.UserInfo, error) {
	const op = "services.user.GetProfile"

	var cached models.UserInfo
	hit, err := s.cache.Get(ctx, cacheKey(uid), &cached)
	if err != nil {
		s.log.Warn("profile cache read failed", sl.Err(err))
	}
	if hit {
		return &cached, nil
	}

	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := user.Info()
	if err := s.cache.Set(ctx, cacheKey(uid), info, profileCacheTTL); err != nil {
		s.log.Warn("profile cache write failed", sl.Err(err))
	}
	return &info, nil
}

// UpdateProfile применяет изменения имени и email. Пустые поля не меняются,
// пустое тело запроса — no-op с текущей проекцией. Конфликт email отдаёт
// ErrEmailTaken; уникальное ограничение базы — единственный арбитр.
func (s *Service) UpdateProfile(ctx context.Context, uid, name, email string) (*models.UserInfo, error) {
	const op = "services.user.UpdateProfile"

	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	changed := false
	if email != "" && email != user.Email {
		user.Email = email
		changed = true
	}
	if name != "" && name != user.Name {
		user.Name = name
		changed = true
	}
	if !changed {
		info := user.Info()
		return &info, nil
	}

	if err := s.users.UpdateUserProfile(ctx, uid, user.Name, user.Email); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, cacheKey(uid)); err != nil {
		s.log.Warn("profile cache invalidation failed", sl.Err(err))
	}
	info := user.Info()
	return &info, nil
}

// ChangePassword проверяет текущий пароль и сохраняет хэш нового.
// Уже выпущенные токены при этом остаются действительными до истечения TTL.
func (s *Service) ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	const op = "services.user.ChangePassword"

	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return ErrWrongPassword
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateUserPassword(ctx, uid, hashed); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, cacheKey(uid)); err != nil {
		s.log.Warn("profile cache invalidation failed", sl.Err(err))
	}
	return nil
}
