package handler

type createArticleRequest struct {
	Title      string `json:"title"      validate:"required,max=200"`
	URL        string `json:"url"        validate:"required,max=200"`
	Spoiler    string `json:"spoiler"    validate:"omitempty,max=500"`
	Content    string `json:"content"    validate:"required"`
	CoverImage string `json:"coverImage" validate:"omitempty,url"`
	Picture    string `json:"picture"    validate:"omitempty,url"`
	CategoryID string `json:"categoryId" validate:"required"`
}

// updateArticleRequest carries only the fields an owner may change; unknown
// keys such as published, views or userId are ignored.
type updateArticleRequest struct {
	Title      *string `json:"title"      validate:"omitempty,min=1,max=200"`
	URL        *string `json:"url"        validate:"omitempty,min=1,max=200"`
	Spoiler    *string `json:"spoiler"    validate:"omitempty,max=500"`
	Content    *string `json:"content"    validate:"omitempty,min=1"`
	CoverImage *string `json:"coverImage" validate:"omitempty,url"`
	Picture    *string `json:"picture"    validate:"omitempty,url"`
	CategoryID *string `json:"categoryId" validate:"omitempty,min=1"`
}
