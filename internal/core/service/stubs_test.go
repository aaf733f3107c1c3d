package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

func window[T any](items []T, page ports.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

// --- users ---

type stubUserRepo struct {
	users map[string]*domain.User
	order []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("u%d", len(r.order)+1)
	}
	r.users[copy.ID] = copy
	r.order = append(r.order, copy.ID)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) matching(excludeID string) []*domain.User {
	out := []*domain.User{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if id := r.order[i]; id != excludeID {
			out = append(out, cloneUser(r.users[id]))
		}
	}
	return out
}

func (r *stubUserRepo) List(_ context.Context, excludeID string, page ports.Page) ([]*domain.User, error) {
	return window(r.matching(excludeID), page), nil
}

func (r *stubUserRepo) Count(_ context.Context, excludeID string) (int64, error) {
	return int64(len(r.matching(excludeID))), nil
}

// --- categories ---

type stubCategoryRepo struct {
	categories []*domain.Category
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range r.categories {
		if existing.URL == c.URL {
			return nil, domain.ErrCategoryExists
		}
	}
	copy := *c
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("c%d", len(r.categories)+1)
	}
	r.categories = append(r.categories, &copy)
	out := copy
	return &out, nil
}

func (r *stubCategoryRepo) FindAll(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		copy := *c
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			copy := *c
			return &copy, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) FindByURL(_ context.Context, url string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.URL == url {
			copy := *c
			return &copy, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	out := []*domain.Category{}
	for _, id := range ids {
		if c, err := r.FindByID(ctx, id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- articles ---

type stubArticleRepo struct {
	mu       sync.Mutex
	articles map[string]*domain.Article
	order    []string
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[string]*domain.Article)}
}

func cloneArticle(a *domain.Article) *domain.Article {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.articles {
		if existing.URL == a.URL {
			return nil, domain.ErrArticleURLTaken
		}
	}
	copy := cloneArticle(a)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("a%d", len(r.order)+1)
	}
	r.articles[copy.ID] = copy
	r.order = append(r.order, copy.ID)
	return cloneArticle(copy), nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		return cloneArticle(a), nil
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) FindByURL(_ context.Context, url string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.URL == url {
			return cloneArticle(a), nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Article{}
	for _, id := range ids {
		if a, ok := r.articles[id]; ok {
			out = append(out, cloneArticle(a))
		}
	}
	return out, nil
}

func (r *stubArticleRepo) Update(_ context.Context, id string, p domain.ArticlePatch) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.Title, p.Title)
	set(&a.URL, p.URL)
	set(&a.Spoiler, p.Spoiler)
	set(&a.Content, p.Content)
	set(&a.CoverImage, p.CoverImage)
	set(&a.Picture, p.Picture)
	set(&a.CategoryID, p.CategoryID)
	return cloneArticle(a), nil
}

func (r *stubArticleRepo) SetPublished(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Published = true
	return cloneArticle(a), nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *stubArticleRepo) IncrementViews(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Views++
	return cloneArticle(a), nil
}

func (r *stubArticleRepo) matching(f ports.ArticleFilter, s ports.Sort) []*domain.Article {
	out := []*domain.Article{}
	for i := len(r.order) - 1; i >= 0; i-- {
		a, ok := r.articles[r.order[i]]
		if !ok {
			continue
		}
		if f.Published != nil && a.Published != *f.Published {
			continue
		}
		if f.OwnerID != "" && a.UserID != f.OwnerID {
			continue
		}
		if f.CategoryID != "" && a.CategoryID != f.CategoryID {
			continue
		}
		out = append(out, cloneArticle(a))
	}
	if s == ports.SortMostViewed {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	}
	return out
}

func (r *stubArticleRepo) List(_ context.Context, f ports.ArticleFilter, page ports.Page, s ports.Sort) ([]*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return window(r.matching(f, s), page), nil
}

func (r *stubArticleRepo) Count(_ context.Context, f ports.ArticleFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(f, ports.SortNewest))), nil
}

// --- comments ---

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	order    []string
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	copy := *c
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("m%d", len(r.order)+1)
	}
	r.comments[copy.ID] = &copy
	r.order = append(r.order, copy.ID)
	out := copy
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	if c, ok := r.comments[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) matching(f ports.CommentFilter, s ports.Sort) []*domain.Comment {
	out := []*domain.Comment{}
	for _, id := range r.order {
		c, ok := r.comments[id]
		if !ok {
			continue
		}
		if f.ArticleID != "" && c.ArticleID != f.ArticleID {
			continue
		}
		if f.Published != nil && c.Published != *f.Published {
			continue
		}
		copy := *c
		out = append(out, &copy)
	}
	if s == ports.SortNewest {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func (r *stubCommentRepo) List(_ context.Context, f ports.CommentFilter, page ports.Page, s ports.Sort) ([]*domain.Comment, error) {
	return window(r.matching(f, s), page), nil
}

func (r *stubCommentRepo) Count(_ context.Context, f ports.CommentFilter) (int64, error) {
	return int64(len(r.matching(f, ports.SortOldest))), nil
}

func (r *stubCommentRepo) CountByArticles(_ context.Context, ids []string) (map[string]int64, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make(map[string]int64)
	for _, c := range r.comments {
		if _, ok := want[c.ArticleID]; ok {
			out[c.ArticleID]++
		}
	}
	return out, nil
}

func (r *stubCommentRepo) Publish(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Published = true
	copy := *c
	return &copy, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) DeleteByArticle(_ context.Context, articleID string) error {
	for id, c := range r.comments {
		if c.ArticleID == articleID {
			delete(r.comments, id)
		}
	}
	return nil
}

// --- collaborators ---

type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked[id] = until
	return nil
}

func (r *stubRevoker) Claim(_ context.Context, id string, until time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, taken := r.revoked[id]; taken {
		return false, nil
	}
	r.revoked[id] = until
	return true, nil
}

type stubMailQueue struct {
	sent []ports.MailMessage
}

func (q *stubMailQueue) Enqueue(msg ports.MailMessage) error {
	q.sent = append(q.sent, msg)
	return nil
}

type stubStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failKey string
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *stubStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.failKey {
		return fmt.Errorf("storage unavailable")
	}
	delete(s.objects, key)
	return nil
}
