package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkpost/blog-api/internal/core/domain"
)

const articleColumns = "id, user_id, title, content, created_at, updated_at"

type ArticleRepository struct {
	db DBTX
}

func NewArticleRepository(db DBTX) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	const q = `INSERT INTO articles (user_id, title, content)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, q, a.UserID, a.Title, a.Content).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if _, ok := foreignKeyViolation(err); ok {
			return domain.ErrUserNotFound
		}
		if isStringTooLong(err) {
			return domain.NewValidationError(domain.MsgValueTooLong)
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	a, err := scanArticle(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

func (r *ArticleRepository) Update(ctx context.Context, id int64, title, content string) (*domain.Article, error) {
	q := `UPDATE articles SET title = $1, content = $2, updated_at = now()
		WHERE id = $3 RETURNING ` + articleColumns

	a, err := scanArticle(r.db.QueryRowContext(ctx, q, title, content, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.ErrArticleNotFound
		case isStringTooLong(err):
			return nil, domain.NewValidationError(domain.MsgValueTooLong)
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return requireAffected(res, domain.ErrArticleNotFound)
}

func scanArticle(s rowScanner) (*domain.Article, error) {
	var a domain.Article
	if err := s.Scan(&a.ID, &a.UserID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
