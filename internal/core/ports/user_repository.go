package ports

import (
	"context"

	"github.com/guardlink/portal-system/internal/core/domain"
)

// UserRepository defines persistence operations for portal users.
// FindByEmail is the only method permitted to return the password hash;
// it uses an exact-match lookup (no normalization).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create is used by out-of-band provisioning only; no API exposes it.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
