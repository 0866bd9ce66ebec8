// Package account resolves logins across the customer and provider
// collections and registers new accounts of both kinds.
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"filter-backend/internal/apperror"
	"filter-backend/internal/logger"
	"filter-backend/internal/store"
	"filter-backend/internal/upload"
)

const ProviderUploadFolder = "providers"

type Service struct {
	customers  store.CustomerStore
	providers  store.ProviderStore
	uploader   upload.Uploader
	tokens     *TokenIssuer
	bcryptCost int
	now        func() time.Time
}

func NewService(customers store.CustomerStore, providers store.ProviderStore, uploader upload.Uploader, tokens *TokenIssuer, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		customers:  customers,
		providers:  providers,
		uploader:   uploader,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func (s *Service) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", apperror.Upstream("Failed to secure password", err)
	}
	return string(hashed), nil
}

// phoneTaken reports whether the phone belongs to a customer or a provider.
func (s *Service) phoneTaken(ctx context.Context, phone string) (bool, error) {
	if _, err := s.customers.FindCustomerByPhone(ctx, phone); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, apperror.Upstream("Database error", err)
	}

	if _, err := s.providers.FindProviderByMobile(ctx, phone); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, apperror.Upstream("Database error", err)
	}
	return false, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func logFailure(op string, err error) {
	if apperror.Is(err, apperror.KindInternal) || apperror.Is(err, apperror.KindUpstream) {
		logger.Error(op+" failed", zap.Error(err))
	}
}
