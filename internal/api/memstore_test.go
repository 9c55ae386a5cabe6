package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// enforces the same unique and foreign-key rules as the schema.
type memStore struct {
	mu       sync.Mutex
	users    map[int64]domain.User
	articles map[int64]domain.Article
	comments map[int64]domain.Comment
	seq      int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]domain.User),
		articles: make(map[int64]domain.Article),
		comments: make(map[int64]domain.Comment),
	}
}

func (s *memStore) next() int64 {
	s.seq++
	return s.seq
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return 0, domain.ErrUserExists
		}
	}
	u.ID = r.next()
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return u.ID, nil
}

func (r memUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u = u.Redacted()
	return &u, nil
}

func (r memUsers) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Redacted())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) UpdateProfile(_ context.Context, id int64, username, email, hash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && (other.Email == email || other.Username == username) {
			return nil, domain.ErrUserExists
		}
	}
	u.Username, u.Email = username, email
	if hash != "" {
		u.PasswordHash = hash
	}
	r.users[id] = u
	u = u.Redacted()
	return &u, nil
}

func (r memUsers) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	r.users[id] = u
	return nil
}

// Delete cascades to the user's articles and comments.
func (r memUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	for aid, a := range r.articles {
		if a.UserID == id {
			r.deleteArticleLocked(aid)
		}
	}
	for cid, c := range r.comments {
		if c.UserID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

type memArticles struct{ *memStore }

func (r memArticles) Create(_ context.Context, a *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[a.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	a.ID = r.next()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.articles[a.ID] = *a
	return nil
}

func (r memArticles) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return &a, nil
}

func (r memArticles) List(_ context.Context) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memArticles) Update(_ context.Context, id int64, title, content string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Title, a.Content, a.UpdatedAt = title, content, time.Now()
	r.articles[id] = a
	return &a, nil
}

func (r memArticles) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	r.deleteArticleLocked(id)
	return nil
}

func (s *memStore) deleteArticleLocked(id int64) {
	delete(s.articles, id)
	for cid, c := range s.comments {
		if c.ArticleID == id {
			delete(s.comments, cid)
		}
	}
}

type memComments struct{ *memStore }

func (r memComments) Create(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[c.ArticleID]; !ok {
		return domain.ErrArticleNotFound
	}
	if _, ok := r.users[c.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	c.ID = r.next()
	c.CreatedAt = time.Now()
	r.comments[c.ID] = *c
	return nil
}

func (r memComments) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return &c, nil
}

func (r memComments) ListByArticle(_ context.Context, articleID int64) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Comment, 0)
	for _, c := range r.comments {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memComments) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

// memIdempotency is an in-memory ports.IdempotencyStore.
type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]int64
}

func (m *memIdempotency) Lookup(_ context.Context, scope, key string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.keys[scope+"|"+key]
	return id, ok, nil
}

func (m *memIdempotency) Remember(_ context.Context, scope, key string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.keys[scope+"|"+key]; !exists {
		m.keys[scope+"|"+key] = id
	}
	return nil
}
