package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/apperror"
	"filter-backend/internal/store"
	"filter-backend/internal/workshop"
)

const maxPageLimit = 100

// parsePagination reads ?page and ?limit. Without a limit the whole
// directory is returned.
func parsePagination(pageStr, limitStr string) (store.Page, error) {
	page := int64(1)
	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return store.Page{}, apperror.Validation("page must be a positive integer")
		}
		page = p
	}

	if limitStr == "" {
		return store.Page{}, nil
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		return store.Page{}, apperror.Validation("limit must be a positive integer")
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page-1 > math.MaxInt64/limit {
		return store.Page{}, apperror.Validation("page is out of range")
	}
	return store.Page{Skip: (page - 1) * limit, Limit: limit}, nil
}

func ListWorkshops(directory *workshop.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": directory.Workshops()})
	}
}

func ListProviders(directory *workshop.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/providers"

		page, err := parsePagination(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		providers, err := directory.Providers(ctx, page)
		if err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "providers": providers})
	}
}
