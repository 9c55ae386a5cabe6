package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations map store-level uniqueness violations to
// domain.ErrUserExists and missing rows to domain.ErrUserNotFound.
type UserRepository interface {
	// Create inserts the user and returns the generated id.
	Create(ctx context.Context, user *domain.User) (int64, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// FindByEmail is the only lookup that loads the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// UpdateProfile sets username and email, and the password hash when
	// passwordHash is non-empty. The role column is never touched.
	UpdateProfile(ctx context.Context, id int64, username, email, passwordHash string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	Delete(ctx context.Context, id int64) error
}
