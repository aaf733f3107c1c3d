package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/api/middleware"
	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

// ctxClaim returns the identity resolved by the Identify middleware.
func ctxClaim(c echo.Context) (domain.Claim, error) {
	claim := middleware.ClaimFrom(c)
	if claim == nil {
		return domain.Claim{}, domain.ErrNotAuthorized
	}
	return *claim, nil
}

// pageParams reads limit and offset from the query string. A missing or zero
// limit becomes def and anything above maxLimit is capped.
func pageParams(c echo.Context, def, maxLimit int) (ports.Page, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return ports.Page{}, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return ports.Page{}, err
	}
	return ports.Page{Limit: parsedLimit(limit, def, maxLimit), Offset: offset}, nil
}

func parsedLimit(limit, def, maxLimit int) int {
	switch {
	case limit == 0:
		return def
	case limit > maxLimit:
		return maxLimit
	}
	return limit
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}
