package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// UpdateProfileInput lists the only fields a profile update may alter.
// Password is optional; empty keeps the current hash.
type UpdateProfileInput struct {
	UserID   int64
	Username string
	Email    string
	Password string
}

// UserService defines account management use-cases. Every method receives
// the requester's already-resolved identity.
type UserService interface {
	List(ctx context.Context, who domain.Identity) ([]domain.User, error)
	Get(ctx context.Context, who domain.Identity, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, who domain.Identity, in UpdateProfileInput) (*domain.User, error)
	ChangeRole(ctx context.Context, who domain.Identity, id int64, role string) error
	Delete(ctx context.Context, who domain.Identity, id int64) error
}
