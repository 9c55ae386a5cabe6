package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

type CommentService struct {
	repo   ports.CommentRepository
	idem   idempotency
	logger zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *CommentService {
	return &CommentService{
		repo:   repo,
		idem:   idempotency{store: idem, logger: logger},
		logger: logger,
	}
}

// ListByArticle returns the comments of an article. An unknown article
// simply has no comments.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error) {
	return s.repo.ListByArticle(ctx, articleID)
}

func (s *CommentService) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores the comment with who as its author. The parent article is
// not looked up first; the repository reports ErrArticleNotFound when the
// store rejects the reference.
func (s *CommentService) Create(ctx context.Context, who domain.Identity, in ports.CreateCommentInput) (*ports.CreateCommentResult, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.NewValidationError(domain.MsgCommentContentRequired)
	}

	scope := fmt.Sprintf("comments:%d:%d", who.ID, in.ArticleID)
	if id, ok := s.idem.lookup(ctx, scope, in.IdempotencyKey); ok {
		existing, err := s.repo.FindByID(ctx, id)
		switch {
		case err == nil:
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int64("comment_id", id).Msg("idempotent replay")
			return &ports.CreateCommentResult{Comment: *existing, Replayed: true}, nil
		case !errors.Is(err, domain.ErrCommentNotFound):
			return nil, err
		}
	}

	comment := &domain.Comment{ArticleID: in.ArticleID, UserID: who.ID, Content: in.Content}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.idem.remember(ctx, scope, in.IdempotencyKey, comment.ID)

	s.logger.Info().Int64("comment_id", comment.ID).Int64("article_id", in.ArticleID).Int64("user_id", who.ID).Msg("comment created")
	return &ports.CreateCommentResult{Comment: *comment}, nil
}

// Delete reports a missing comment before checking authorship.
func (s *CommentService) Delete(ctx context.Context, who domain.Identity, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !who.CanModify(existing.UserID) {
		return domain.ErrCommentForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("comment_id", id).Int64("by", who.ID).Msg("comment deleted")
	return nil
}
