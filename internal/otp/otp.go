// Package otp implements the mock password recovery flow. No message is
// delivered; every phone accepts the same static code.
package otp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"filter-backend/internal/apperror"
	"filter-backend/internal/logger"
)

const DefaultCode = "1234"

type Service struct {
	code string
}

func NewService(code string) *Service {
	if strings.TrimSpace(code) == "" {
		code = DefaultCode
	}
	return &Service{code: code}
}

// RequestReset pretends to send a code and returns the confirmation message.
func (s *Service) RequestReset(_ context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", apperror.Validation("Phone number is required")
	}
	logger.Info("otp requested", zap.String("phone", phone))
	return "OTP sent successfully to " + phone, nil
}

func (s *Service) Verify(_ context.Context, phone, code string) error {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return apperror.Validation("Phone number and OTP are required")
	}
	if code != s.code {
		return apperror.Validation("Invalid OTP")
	}
	return nil
}
