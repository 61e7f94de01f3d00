// Package bootstrap performs out-of-band provisioning at process startup.
// No API exposes user creation; the admin account either already exists or
// is created here from deployment configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
	"github.com/guardlink/portal-system/internal/infrastructure/config"
)

// EnsureAdmin creates the configured admin user if it does not exist yet.
// With no admin credentials configured it is a no-op.
func EnsureAdmin(ctx context.Context, cfg config.AdminConfig, users ports.UserRepository, log zerolog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("bootstrap: lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash admin password: %w", err)
	}

	now := time.Now().UTC()
	created, err := users.Create(ctx, &domain.User{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         cfg.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent replica may have won the race; that's fine.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("bootstrap: create admin: %w", err)
	}

	log.Info().Str("email", created.Email).Int64("user_id", created.ID).Msg("bootstrap admin user created")
	return nil
}
