package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkpost/blog-api/internal/core/domain"
)

var articleRowColumns = []string{"id", "user_id", "title", "content", "created_at", "updated_at"}

func TestArticleRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticleRepository(db)
	now := time.Now()

	mock.ExpectQuery(`^INSERT INTO articles \(user_id, title, content\)`).
		WithArgs(int64(1), "Title", "Body").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	a := &domain.Article{UserID: 1, Title: "Title", Content: "Body"}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if a.ID != 5 || !a.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected article: %+v", a)
	}
}

func TestArticleRepository_Create_AuthorGone(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`^INSERT INTO articles`).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "articles_user_id_fkey"})

	if err := repo.Create(context.Background(), &domain.Article{UserID: 9, Title: "t", Content: "c"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestArticleRepository_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`FROM articles WHERE id = \$1`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(articleRowColumns).AddRow(int64(5), int64(1), "t", "c", time.Now(), time.Now()))
	mock.ExpectQuery(`FROM articles WHERE id = \$1`).WithArgs(int64(6)).WillReturnError(sql.ErrNoRows)

	a, err := repo.FindByID(context.Background(), 5)
	if err != nil || a.UserID != 1 {
		t.Fatalf("unexpected result: %+v %v", a, err)
	}
	if _, err := repo.FindByID(context.Background(), 6); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`FROM articles ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows(articleRowColumns).
			AddRow(int64(2), int64(1), "b", "c", time.Now(), time.Now()).
			AddRow(int64(1), int64(1), "a", "c", time.Now(), time.Now()))

	articles, err := repo.List(context.Background())
	if err != nil || len(articles) != 2 || articles[0].ID != 2 {
		t.Fatalf("unexpected list: %+v %v", articles, err)
	}
}

func TestArticleRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`UPDATE articles SET title = \$1, content = \$2, updated_at = now\(\)`).
		WithArgs("new", "body", int64(5)).
		WillReturnRows(sqlmock.NewRows(articleRowColumns).AddRow(int64(5), int64(1), "new", "body", time.Now(), time.Now()))
	mock.ExpectQuery(`UPDATE articles`).WithArgs("new", "body", int64(6)).WillReturnError(sql.ErrNoRows)

	a, err := repo.Update(context.Background(), 5, "new", "body")
	if err != nil || a.Title != "new" {
		t.Fatalf("unexpected result: %+v %v", a, err)
	}
	if _, err := repo.Update(context.Background(), 6, "new", "body"); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleRepository_TitleTooLong(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`^INSERT INTO articles`).WillReturnError(&pgconn.PgError{Code: codeStringTooLong})
	mock.ExpectQuery(`UPDATE articles`).WillReturnError(&pgconn.PgError{Code: codeStringTooLong})

	var ve *domain.ValidationError
	if err := repo.Create(context.Background(), &domain.Article{UserID: 1, Title: "t", Content: "c"}); !errors.As(err, &ve) {
		t.Fatalf("create: expected ValidationError, got %v", err)
	}
	if _, err := repo.Update(context.Background(), 1, "t", "c"); !errors.As(err, &ve) {
		t.Fatalf("update: expected ValidationError, got %v", err)
	}
}

func TestArticleRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticleRepository(db)

	mock.ExpectExec(`DELETE FROM articles WHERE id = \$1`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM articles`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), 5); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}
