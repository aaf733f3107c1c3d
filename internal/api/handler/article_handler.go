package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/api/metrics"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

// Listing windows: default and maximum limit per listing.
const (
	publishedLimit, publishedMax = 10, 10
	draftLimit, draftMax         = 5, 10
	popularLimit, popularMax     = 4, 10
	categoryLimit, categoryMax   = 5, 10
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles GET /articles.
//
// @Summary      List published articles, newest first
// @Tags         articles
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 10, max 10)"
// @Param        offset  query     int  false  "Items to skip"
// @Success      200     {object}  listResponse[articleResponse]
// @Failure      400     {object}  errorResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	page, err := pageParams(c, publishedLimit, publishedMax)
	if err != nil {
		return err
	}
	result, err := h.service.ListPublished(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, toArticleDetailResponse))
}

// Popular handles GET /articles/popular.
//
// @Summary      List published articles, most viewed first
// @Tags         articles
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 4, max 10)"
// @Param        offset  query     int  false  "Items to skip"
// @Success      200     {object}  listResponse[articleResponse]
// @Failure      400     {object}  errorResponse
// @Router       /articles/popular [get]
func (h *ArticleHandler) Popular(c echo.Context) error {
	page, err := pageParams(c, popularLimit, popularMax)
	if err != nil {
		return err
	}
	result, err := h.service.ListPopular(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, toArticleDetailResponse))
}

// ByCategory handles GET /articles/category/:url.
//
// @Summary      List published articles of a category
// @Tags         articles
// @Produce      json
// @Param        url     path      string  true   "Category URL slug"
// @Param        limit   query     int     false  "Page size (default 5, max 10)"
// @Param        offset  query     int     false  "Items to skip"
// @Success      200     {object}  listResponse[articleResponse]
// @Failure      404     {object}  errorResponse
// @Router       /articles/category/{url} [get]
func (h *ArticleHandler) ByCategory(c echo.Context) error {
	page, err := pageParams(c, categoryLimit, categoryMax)
	if err != nil {
		return err
	}
	result, err := h.service.ListByCategory(c.Request().Context(), c.Param("url"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, toArticleDetailResponse))
}

// Drafts handles GET /articles/draft. ADMIN sees every draft, a MANAGER
// only their own.
//
// @Summary      List draft articles
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 5, max 10)"
// @Param        offset  query     int  false  "Items to skip"
// @Success      200     {object}  listResponse[articleResponse]
// @Failure      403     {object}  errorResponse
// @Router       /articles/draft [get]
func (h *ArticleHandler) Drafts(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	page, err := pageParams(c, draftLimit, draftMax)
	if err != nil {
		return err
	}
	result, err := h.service.ListDrafts(c.Request().Context(), claim, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, toArticleDetailResponse))
}

// Get handles GET /articles/:url and counts one view.
//
// @Summary      Read a published article
// @Tags         articles
// @Produce      json
// @Param        url  path      string  true  "Article URL slug"
// @Success      200  {object}  articleResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{url} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	detail, err := h.service.GetPublished(c.Request().Context(), c.Param("url"))
	if err != nil {
		return err
	}
	metrics.ArticleViewsTotal.Inc()
	return c.JSON(http.StatusOK, toArticleDetailResponse(*detail))
}

// GetPrivate handles GET /articles/:url/private, which also returns drafts.
//
// @Summary      Read an article regardless of its state
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        url  path      string  true  "Article URL slug"
// @Success      200  {object}  articleResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{url}/private [get]
func (h *ArticleHandler) GetPrivate(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	detail, err := h.service.GetPrivate(c.Request().Context(), claim, c.Param("url"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleDetailResponse(*detail))
}

// Create handles POST /articles. The article starts as a draft owned by the
// caller.
//
// @Summary      Create a draft article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	article, err := h.service.Create(c.Request().Context(), claim, req.toInput())
	if err != nil {
		return err
	}
	metrics.ArticlesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Update handles PATCH /articles/:id.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Article ID"
// @Param        body  body      updateArticleRequest  true  "Fields to change"
// @Success      200   {object}  articleResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /articles/{id} [patch]
func (h *ArticleHandler) Update(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	article, err := h.service.Update(c.Request().Context(), claim, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Delete handles DELETE /articles/:id. The article's comments go with it.
//
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id  path  string  true  "Article ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), claim, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Publish handles POST /articles/:id/publish.
//
// @Summary      Publish a draft article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  articleResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id}/publish [post]
func (h *ArticleHandler) Publish(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	article, err := h.service.Publish(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ArticlesPublishedTotal.Inc()
	return c.JSON(http.StatusOK, toArticleResponse(article))
}
