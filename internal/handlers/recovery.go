package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/otp"
)

type ForgotPasswordRequest struct {
	Phone string `json:"phone" form:"phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" form:"phone"`
	OTP   string `json:"otp" form:"otp"`
}

func ForgotPassword(codes *otp.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/forgot-password"

		var req ForgotPasswordRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		message, err := codes.RequestReset(c.Request.Context(), req.Phone)
		if err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
	}
}

func VerifyOTP(codes *otp.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/verify-otp"

		var req VerifyOTPRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if err := codes.Verify(ctx, req.Phone, req.OTP); err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified successfully"})
	}
}
