package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/pkg/auth"
)

const (
	defaultUserEmail    = "demo@tastemap.io"
	defaultUserNickname = "demo"
	defaultUserPassword = "demo1234!"
)

// CreateDefaultData inserts a demo account for development environments.
// It is idempotent and safe to run on every startup.
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	var exists bool
	err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", defaultUserEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking for default user: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultUserPassword)
	if err != nil {
		return fmt.Errorf("error hashing default user password: %w", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO users (email, password_hash, nickname) VALUES ($1, $2, $3)",
		defaultUserEmail, hashed, defaultUserNickname,
	)
	if err != nil {
		return fmt.Errorf("error creating default user: %w", err)
	}

	lgr.Info().Str("email", defaultUserEmail).Msg("Default development user created")
	return nil
}
