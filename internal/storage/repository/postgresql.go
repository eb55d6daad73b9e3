// Package repository реализует хранилище данных на основе PostgreSQL
// для управления учётными записями пользователей. Предоставляет методы
// создания, чтения и обновления записей; уникальность email гарантируется
// ограничением на уровне базы данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkrivolapov/secure-auth/internal/lib/sl"
)

// Ошибки уровня хранилища, транслируемые сервисами в ответы клиенту.
var (
	// ErrUserNotFound пользователь отсутствует в базе данных.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already taken")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// NewWithRetry подключается к PostgreSQL с ограниченным числом попыток
// и фиксированной паузой между ними. Исчерпание попыток фатально для
// запускающегося приложения.
func NewWithRetry(ctx context.Context, log *slog.Logger, storageConnectionString string,
	attempts int, backoff time.Duration) (*Storage, error) {
	const op = "storage.NewWithRetry"

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		storage, err := New(storageConnectionString)
		if err == nil {
			return storage, nil
		}
		lastErr = err
		log.Warn("database connection failed",
			slog.Int("attempt", attempt),
			slog.Int("attempts_left", attempts-attempt),
			sl.Err(err))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("%s: %w", op, lastErr)
}
