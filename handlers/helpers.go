package handlers

import (
	"net/http"
	"strconv"

	"juriscloud/services"

	"github.com/labstack/echo/v4"
)

// getListParams extracts pagination and search state from query parameters
func getListParams(c echo.Context) services.ListParams {
	params := services.ListParams{
		Page:     1,
		PageSize: services.DefaultPageSize,
		Search:   c.QueryParam("search"),
	}

	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			params.Page = p
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= services.MaxPageSize {
			params.PageSize = l
		}
	}

	return params
}

// validationError returns a 400 response with per-field messages; no write has
// happened when this is returned
func validationError(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":  "Validation failed",
		"fields": fields,
	})
}
