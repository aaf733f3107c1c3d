package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/api/metrics"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

const commentLimit, commentMax = 5, 10

// CommentHandler handles HTTP requests for comments and their moderation.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /comments. New comments wait for moderation.
//
// @Summary      Comment on an article
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	comment, err := h.service.Create(c.Request().Context(), claim, req.ArticleID, req.Text)
	if err != nil {
		return err
	}
	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// ForArticle handles GET /comments/article/:articleId.
//
// @Summary      List published comments of an article
// @Tags         comments
// @Produce      json
// @Param        articleId  path      string  true   "Article ID"
// @Param        limit      query     int     false  "Page size (default 5, max 10)"
// @Param        offset     query     int     false  "Items to skip"
// @Success      200        {object}  listResponse[commentResponse]
// @Failure      400        {object}  errorResponse
// @Router       /comments/article/{articleId} [get]
func (h *CommentHandler) ForArticle(c echo.Context) error {
	page, err := pageParams(c, commentLimit, commentMax)
	if err != nil {
		return err
	}
	result, err := h.service.ListForArticle(c.Request().Context(), c.Param("articleId"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, toCommentDetailResponse))
}

// Drafts handles GET /comments/draft, the moderation queue.
//
// @Summary      List comments awaiting moderation, oldest first
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 5, max 10)"
// @Param        offset  query     int  false  "Items to skip"
// @Success      200     {object}  listResponse[commentResponse]
// @Failure      403     {object}  errorResponse
// @Router       /comments/draft [get]
func (h *CommentHandler) Drafts(c echo.Context) error {
	page, err := pageParams(c, commentLimit, commentMax)
	if err != nil {
		return err
	}
	result, err := h.service.ListDrafts(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, toCommentDetailResponse))
}

// Publish handles POST /comments/:id/publish.
//
// @Summary      Publish a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID"
// @Success      200  {object}  commentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id}/publish [post]
func (h *CommentHandler) Publish(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	comment, err := h.service.Publish(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /comments/:id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), claim, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
