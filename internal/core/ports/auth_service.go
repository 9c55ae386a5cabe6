package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService implements registration and login.
type AuthService interface {
	// Register returns the id of the new account.
	Register(ctx context.Context, in RegisterInput) (int64, error)
	// Login returns a signed token and the account without its password hash.
	// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
