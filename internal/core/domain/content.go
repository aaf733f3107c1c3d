package domain

import "time"

// Category groups articles under a unique URL slug.
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Article is authored by UserID and starts life as a draft.
type Article struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Spoiler    string    `json:"spoiler,omitempty"`
	Content    string    `json:"content"`
	CoverImage string    `json:"cover_image,omitempty"`
	Picture    string    `json:"picture,omitempty"`
	Published  bool      `json:"published"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ArticlePatch lists the article fields an owner may change. Nil fields are
// left untouched. Published, Views and UserID cannot be patched.
type ArticlePatch struct {
	Title      *string
	URL        *string
	Spoiler    *string
	Content    *string
	CoverImage *string
	Picture    *string
	CategoryID *string
}

// Empty reports whether the patch changes nothing.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.URL == nil && p.Spoiler == nil && p.Content == nil &&
		p.CoverImage == nil && p.Picture == nil && p.CategoryID == nil
}

// Comment is left by UserID on ArticleID and is hidden until published.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ArticleID string    `json:"article_id"`
	Text      string    `json:"text"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
