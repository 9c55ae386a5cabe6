package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// UserService implements account management. Authorization is decided here
// from the identity passed in by the caller.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

func (s *UserService) List(ctx context.Context, who domain.Identity) ([]domain.User, error) {
	if !who.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, who domain.Identity, id int64) (*domain.User, error) {
	if !who.CanAccessUser(id) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile changes username, email and optionally the password.
// The role is never touched here; see ChangeRole.
func (s *UserService) UpdateProfile(ctx context.Context, who domain.Identity, in ports.UpdateProfileInput) (*domain.User, error) {
	if !who.CanAccessUser(in.UserID) {
		return nil, domain.ErrForbidden
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" {
		return nil, domain.NewValidationError(domain.MsgProfileFieldsRequired)
	}
	if err := checkProfileLength(username, email); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != "" {
		if err := checkPasswordLength(in.Password); err != nil {
			return nil, err
		}
		h, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	user, err := s.repo.UpdateProfile(ctx, in.UserID, username, email, hash)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", in.UserID).
		Int64("by", who.ID).
		Bool("password_changed", hash != "").
		Msg("user profile updated")
	return user, nil
}

// ChangeRole validates the role before the self-target guard, so an admin
// sending a bogus role for their own id gets ErrInvalidRole.
func (s *UserService) ChangeRole(ctx context.Context, who domain.Identity, id int64, role string) error {
	if !who.IsAdmin() {
		return domain.ErrAdminRequired
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return domain.ErrInvalidRole
	}
	if who.IsSelf(id) {
		return domain.ErrSelfRoleChange
	}

	if err := s.repo.UpdateRole(ctx, id, r); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("by", who.ID).Str("role", string(r)).Msg("user role changed")
	return nil
}

func (s *UserService) Delete(ctx context.Context, who domain.Identity, id int64) error {
	if !who.IsAdmin() {
		return domain.ErrAdminRequired
	}
	if who.IsSelf(id) {
		return domain.ErrSelfDelete
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("by", who.ID).Msg("user deleted")
	return nil
}
