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

type ArticleService struct {
	repo   ports.ArticleRepository
	idem   idempotency
	logger zerolog.Logger
}

// NewArticleService builds the service. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewArticleService(repo ports.ArticleRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		idem:   idempotency{store: idem, logger: logger},
		logger: logger,
	}
}

func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	return s.repo.List(ctx)
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	return s.repo.FindByID(ctx, id)
}

// Create publishes an article authored by who. If the idempotency key was
// already used by the same author and the article still exists, it is
// returned without creating a duplicate.
func (s *ArticleService) Create(ctx context.Context, who domain.Identity, in ports.CreateArticleInput) (*ports.CreateArticleResult, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, domain.NewValidationError(domain.MsgArticleFieldsRequired)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return nil, domain.NewValidationError(domain.MsgTitleTooLong)
	}

	scope := fmt.Sprintf("articles:%d", who.ID)
	if id, ok := s.idem.lookup(ctx, scope, in.IdempotencyKey); ok {
		existing, err := s.repo.FindByID(ctx, id)
		switch {
		case err == nil:
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int64("article_id", id).Msg("idempotent replay")
			return &ports.CreateArticleResult{Article: *existing, Replayed: true}, nil
		case !errors.Is(err, domain.ErrArticleNotFound):
			return nil, err
		}
	}

	article := &domain.Article{UserID: who.ID, Title: title, Content: content}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	s.idem.remember(ctx, scope, in.IdempotencyKey, article.ID)

	s.logger.Info().Int64("article_id", article.ID).Int64("user_id", who.ID).Msg("article created")
	return &ports.CreateArticleResult{Article: *article}, nil
}

func (s *ArticleService) Update(ctx context.Context, who domain.Identity, id int64, title, content string) (*domain.Article, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, domain.NewValidationError(domain.MsgArticleFieldsRequired)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return nil, domain.NewValidationError(domain.MsgTitleTooLong)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !who.CanModify(existing.UserID) {
		return nil, domain.ErrArticleForbidden
	}

	return s.repo.Update(ctx, id, title, content)
}

// Delete removes the article and, through the store, its comments.
func (s *ArticleService) Delete(ctx context.Context, who domain.Identity, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !who.CanModify(existing.UserID) {
		return domain.ErrArticleForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("article_id", id).Int64("by", who.ID).Msg("article deleted")
	return nil
}
