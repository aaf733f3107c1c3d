package handler

import (
	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

// --- Domain → Response ---

func toUserResponse(u domain.UserView) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Title: c.Title, URL: c.URL, CreatedAt: c.CreatedAt}
}

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		CategoryID: a.CategoryID,
		Title:      a.Title,
		URL:        a.URL,
		Spoiler:    a.Spoiler,
		Content:    a.Content,
		CoverImage: a.CoverImage,
		Picture:    a.Picture,
		Published:  a.Published,
		Views:      a.Views,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toArticleDetailResponse(d ports.ArticleDetail) articleResponse {
	out := toArticleResponse(d.Article)
	if d.Category != nil {
		cat := toCategoryResponse(d.Category)
		out.Category = &cat
	}
	count := d.CommentCount
	out.CommentCount = &count
	return out
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		ArticleID: c.ArticleID,
		Text:      c.Text,
		Published: c.Published,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentDetailResponse(d ports.CommentDetail) commentResponse {
	out := toCommentResponse(d.Comment)
	if d.Author != nil {
		author := toUserResponse(*d.Author)
		out.User = &author
	}
	if d.Article != nil {
		out.Article = &articleRefResponse{ID: d.Article.ID, Title: d.Article.Title}
	}
	return out
}

// toListResponse maps one page of service results into the list envelope.
func toListResponse[T, R any](page *ports.PageResult[T], mapFn func(T) R) listResponse[R] {
	data := make([]R, 0, len(page.Data))
	for _, item := range page.Data {
		data = append(data, mapFn(item))
	}
	return listResponse[R]{Data: data, Limit: page.Limit, Offset: page.Offset, Count: page.Count}
}

// --- Request → Domain ---

func (r updateArticleRequest) toPatch() domain.ArticlePatch {
	return domain.ArticlePatch{
		Title:      r.Title,
		URL:        r.URL,
		Spoiler:    r.Spoiler,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Picture:    r.Picture,
		CategoryID: r.CategoryID,
	}
}

func (r createArticleRequest) toInput() ports.CreateArticleInput {
	return ports.CreateArticleInput{
		Title:      r.Title,
		URL:        r.URL,
		Spoiler:    r.Spoiler,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Picture:    r.Picture,
		CategoryID: r.CategoryID,
	}
}
