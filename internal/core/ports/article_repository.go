package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	// Create inserts the article and fills in ID and timestamps.
	Create(ctx context.Context, article *domain.Article) error
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context) ([]domain.Article, error)
	Update(ctx context.Context, id int64, title, content string) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines persistence operations for comments.
// Create maps a missing parent article to domain.ErrArticleNotFound.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}
