package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, uid, name, email, passwordHash, role string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		uid, name, email, passwordHash, role)
	require.NoError(t, err)
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserCount проверяет количество пользователей с данным email
func (v *TestVerification) VerifyUserCount(t *testing.T, email string, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// VerifyPasswordHash проверяет сохранённый хэш пароля пользователя
func (v *TestVerification) VerifyPasswordHash(t *testing.T, uid, expectedHash string) {
	var hash string
	err := v.storage.DB.QueryRow("SELECT password_hash FROM users WHERE uid = $1", uid).Scan(&hash)
	require.NoError(t, err)
	require.Equal(t, expectedHash, hash)
}

// VerifyUserEmail проверяет сохранённый email пользователя
func (v *TestVerification) VerifyUserEmail(t *testing.T, uid, expectedEmail string) {
	var email string
	err := v.storage.DB.QueryRow("SELECT email FROM users WHERE uid = $1", uid).Scan(&email)
	require.NoError(t, err)
	require.Equal(t, expectedEmail, email)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = postgresContainer.Terminate(ctx)
	}
	return storage, cleanup
}
