package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"filter-backend/internal/apperror"
	"filter-backend/internal/middleware"
)

const (
	requestTimeout = 5 * time.Second
	uploadTimeout  = 60 * time.Second
)

// respondError writes the {success:false, message} envelope for any error.
// Only internal failures are logged at error level with their cause.
func respondError(c *gin.Context, route string, err error) {
	appErr := apperror.From(err)
	status := appErr.HTTPStatus()
	log := middleware.Logger(c).With(zap.String("route", route), zap.Int("status", status))
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("message", appErr.Message), zap.Error(appErr.Err))
	} else {
		log.Info("request rejected", zap.String("message", appErr.Message))
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": appErr.Message})
}

func respondValidationError(c *gin.Context, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		respondError(c, route, apperror.Validation(strings.Join(details, "; ")))
		return
	}
	respondError(c, route, apperror.Validation("Invalid request body"))
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
