package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkpost/blog-api/internal/core/domain"
)

const (
	commentColumns = "id, article_id, user_id, content, created_at"

	commentArticleFK = "comments_article_id_fkey"
)

type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create relies on the article foreign key instead of a prior lookup, so a
// parent deleted concurrently still yields ErrArticleNotFound.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	const q = `INSERT INTO comments (article_id, user_id, content)
		VALUES ($1, $2, $3) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, q, c.ArticleID, c.UserID, c.Content).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if constraint, ok := foreignKeyViolation(err); ok {
			if constraint == commentArticleFK {
				return domain.ErrArticleNotFound
			}
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	c, err := scanComment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE article_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, q, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireAffected(res, domain.ErrCommentNotFound)
}

func scanComment(s rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	if err := s.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
