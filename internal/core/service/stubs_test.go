package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories and security components
// ---------------------------------------------------------------------------

var errStore = errors.New("store unavailable")

type stubUserRepo struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
	creates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

// seed inserts a user directly and returns its id.
func (r *stubUserRepo) seed(username, email, hash string, role domain.Role) int64 {
	id := r.nextID
	r.nextID++
	r.users[id] = &domain.User{ID: id, Username: username, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	return id
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (int64, error) {
	r.creates++
	if r.createErr != nil {
		return 0, r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return 0, domain.ErrUserExists
		}
	}
	id := r.seed(u.Username, u.Email, u.PasswordHash, u.Role)
	u.ID = id
	return id, nil
}

func (r *stubUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := u.Redacted()
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Redacted())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, username, email, hash string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username = username
	u.Email = email
	if hash != "" {
		u.PasswordHash = hash
	}
	clone := u.Redacted()
	return &clone, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubHasher "hashes" by prefixing. A hash without the prefix is malformed.
type stubHasher struct {
	dummyCalls int
}

const stubHashPrefix = "hashed:"

func (h *stubHasher) Hash(plain string) (string, error) {
	return stubHashPrefix + plain, nil
}

func (h *stubHasher) Verify(plain, hash string) (bool, error) {
	if !strings.HasPrefix(hash, stubHashPrefix) {
		return false, domain.ErrCorruptPasswordHash
	}
	return hash == stubHashPrefix+plain, nil
}

func (h *stubHasher) VerifyDummy(string) {
	h.dummyCalls++
}

type stubIssuer struct {
	err error
}

func (i stubIssuer) Issue(u *domain.User) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	return "token-for-" + u.Username, nil
}

type stubArticleRepo struct {
	articles map[int64]*domain.Article
	nextID   int64
	creates  int
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[int64]*domain.Article), nextID: 1}
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) error {
	r.creates++
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	clone := *a
	r.articles[a.ID] = &clone
	return nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) List(_ context.Context) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubArticleRepo) Update(_ context.Context, id int64, title, content string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Title, a.Content, a.UpdatedAt = title, content, time.Now()
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

// stubCommentRepo emulates the article foreign key through the articles set.
type stubCommentRepo struct {
	comments map[int64]*domain.Comment
	articles map[int64]bool
	nextID   int64
	creates  int
}

func newStubCommentRepo(articleIDs ...int64) *stubCommentRepo {
	r := &stubCommentRepo{comments: make(map[int64]*domain.Comment), articles: make(map[int64]bool), nextID: 1}
	for _, id := range articleIDs {
		r.articles[id] = true
	}
	return r
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.creates++
	if !r.articles[c.ArticleID] {
		return domain.ErrArticleNotFound
	}
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) ListByArticle(_ context.Context, articleID int64) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0)
	for _, c := range r.comments {
		if c.ArticleID == articleID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

type stubIdemStore struct {
	keys map[string]int64
	err  error
}

func newStubIdemStore() *stubIdemStore {
	return &stubIdemStore{keys: make(map[string]int64)}
}

func (s *stubIdemStore) Lookup(_ context.Context, scope, key string) (int64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	id, ok := s.keys[scope+"|"+key]
	return id, ok, nil
}

func (s *stubIdemStore) Remember(_ context.Context, scope, key string, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.keys[scope+"|"+key] = id
	return nil
}
