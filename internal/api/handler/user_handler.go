package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

const userLimit, userMax = 10, 100

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN MANAGER USER"`
}

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users. The caller is left out of the listing.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 10, max 100)"
// @Param        offset  query     int  false  "Items to skip"
// @Success      200     {object}  listResponse[userResponse]
// @Failure      403     {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	page, err := pageParams(c, userLimit, userMax)
	if err != nil {
		return err
	}
	result, err := h.service.List(c.Request().Context(), claim, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, toUserResponse))
}

// Me handles GET /users/me.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userEnvelope
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	user, err := h.service.Me(c.Request().Context(), claim)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{User: toUserResponse(*user)})
}

// UpdateRole handles PATCH /users/:id.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string             true  "User ID"
// @Param        body  body  updateRoleRequest  true  "New role"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
