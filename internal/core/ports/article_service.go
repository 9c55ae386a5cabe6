package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// CreateArticleInput carries a new article. IdempotencyKey is optional.
type CreateArticleInput struct {
	Title          string
	Content        string
	IdempotencyKey string
}

// CreateArticleResult is returned by ArticleService.Create.
type CreateArticleResult struct {
	Article domain.Article
	// Replayed is true when the Idempotency-Key matched an earlier create.
	Replayed bool
}

// ArticleService defines article use-cases.
type ArticleService interface {
	List(ctx context.Context) ([]domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	Create(ctx context.Context, who domain.Identity, in CreateArticleInput) (*CreateArticleResult, error)
	Update(ctx context.Context, who domain.Identity, id int64, title, content string) (*domain.Article, error)
	Delete(ctx context.Context, who domain.Identity, id int64) error
}
