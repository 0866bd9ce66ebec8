package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/apperror"
	"filter-backend/internal/store"
)

const pingTimeout = 2 * time.Second

// Health reports whether the store answers a ping.
func Health(pinger store.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"

		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			respondError(c, route, apperror.Unavailable("Database unavailable", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	}
}
