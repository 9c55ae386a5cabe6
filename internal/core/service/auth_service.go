package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, logger: logger}
}

// Register creates a regular user account. The existence check is advisory:
// a concurrent registration that slips past it is rejected by the store's
// unique constraints with the same ErrUserExists.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (int64, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return 0, domain.NewValidationError(domain.MsgRegisterFieldsRequired)
	}
	if err := checkProfileLength(username, email); err != nil {
		return 0, err
	}
	if err := checkPasswordLength(in.Password); err != nil {
		return 0, err
	}

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return 0, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return 0, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user registered")
	return id, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError(domain.MsgLoginFieldsRequired)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.VerifyDummy(password)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("password verification failed")
		return "", nil, err
	}
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	redacted := user.Redacted()
	return token, &redacted, nil
}

// checkProfileLength keeps username and email within the users columns.
func checkProfileLength(username, email string) error {
	if utf8.RuneCountInString(username) > domain.MaxUsernameLength {
		return domain.NewValidationError(domain.MsgUsernameTooLong)
	}
	if utf8.RuneCountInString(email) > domain.MaxEmailLength {
		return domain.NewValidationError(domain.MsgEmailTooLong)
	}
	return nil
}

func checkPasswordLength(password string) error {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return domain.NewValidationError(domain.MsgPasswordTooShort)
	}
	return nil
}
