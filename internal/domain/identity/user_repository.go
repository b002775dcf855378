package identity

import (
	"context"

	"github.com/tradegate/backend/internal/domain/shared"
)

// UserRepository persists marketplace accounts.
type UserRepository interface {
	shared.Repository[*User]
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}
