package handler

type createCommentRequest struct {
	Text      string `json:"text"      validate:"required,max=2000"`
	ArticleID string `json:"articleId" validate:"required"`
}
