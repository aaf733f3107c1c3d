package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listResponse is the envelope shared by every paginated listing.
type listResponse[T any] struct {
	Data   []T   `json:"data"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Count  int64 `json:"count"`
}

// Response-only types owned by the transport layer. They keep the JSON
// contract independent from domain structs.

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type articleResponse struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	CategoryID   string            `json:"categoryId"`
	Category     *categoryResponse `json:"category,omitempty"`
	Title        string            `json:"title"`
	URL          string            `json:"url"`
	Spoiler      string            `json:"spoiler,omitempty"`
	Content      string            `json:"content"`
	CoverImage   string            `json:"coverImage,omitempty"`
	Picture      string            `json:"picture,omitempty"`
	Published    bool              `json:"published"`
	Views        int64             `json:"views"`
	CommentCount *int64            `json:"commentCount,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type articleRefResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type commentResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	ArticleID string              `json:"articleId"`
	Text      string              `json:"text"`
	Published bool                `json:"published"`
	User      *userResponse       `json:"user,omitempty"`
	Article   *articleRefResponse `json:"article,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}
