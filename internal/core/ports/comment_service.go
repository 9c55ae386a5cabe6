package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// CreateCommentInput carries a new comment. IdempotencyKey is optional.
type CreateCommentInput struct {
	ArticleID      int64
	Content        string
	IdempotencyKey string
}

// CreateCommentResult is returned by CommentService.Create.
type CreateCommentResult struct {
	Comment  domain.Comment
	Replayed bool
}

// CommentService defines comment use-cases.
type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error)
	Get(ctx context.Context, id int64) (*domain.Comment, error)
	Create(ctx context.Context, who domain.Identity, in CreateCommentInput) (*CreateCommentResult, error)
	// Delete reports ErrCommentNotFound before checking authorship.
	Delete(ctx context.Context, who domain.Identity, id int64) error
}
