package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"filter-backend/internal/apperror"
	"filter-backend/internal/logger"
	"filter-backend/internal/models"
	"filter-backend/internal/store"
)

type LoginInput struct {
	Email    string
	Phone    string
	Password string
	Role     string
}

// Profile is the account shape returned to clients regardless of which
// collection the account lives in.
type Profile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	LogoURL      *string `json:"logoUrl"`
	Address      string  `json:"address"`
	WorkshopName string  `json:"workshopName,omitempty"`
	OwnerName    string  `json:"ownerName,omitempty"`
	FullName     string  `json:"fullName,omitempty"`
}

type LoginResult struct {
	User        Profile
	AccessToken string
	ExpiresIn   int64
}

type credentials struct {
	id           string
	accountType  string
	passwordHash string
	profile      Profile
}

// Login resolves an identity against customers first and providers second.
// Unknown accounts and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := normalizeEmail(in.Email)
	phone := strings.TrimSpace(in.Phone)
	role := strings.ToLower(strings.TrimSpace(in.Role))

	if (email == "" && phone == "") || in.Password == "" {
		return nil, apperror.Validation("Email or phone and password are required")
	}

	account, err := s.resolve(ctx, email, phone, role)
	if err != nil {
		logFailure("login lookup", err)
		return nil, err
	}
	if account == nil {
		logger.Info("login rejected: unknown account", zap.String("role", role))
		return nil, apperror.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.passwordHash), []byte(in.Password)); err != nil {
		logger.Info("login rejected: password mismatch", zap.String("accountId", account.id))
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(account.id, account.accountType)
	if err != nil {
		return nil, apperror.Upstream("Token generation failed", err)
	}

	logger.Info("login succeeded", zap.String("accountId", account.id), zap.String("type", account.accountType))
	return &LoginResult{
		User:        account.profile,
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *Service) resolve(ctx context.Context, email, phone, role string) (*credentials, error) {
	if !models.IsProviderRole(role) {
		customer, err := s.findCustomer(ctx, email, phone)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			return customerCredentials(customer), nil
		}
	}

	provider, err := s.findProvider(ctx, email, phone, role)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		return providerCredentials(provider), nil
	}
	return nil, nil
}

func (s *Service) findCustomer(ctx context.Context, email, phone string) (*models.Customer, error) {
	var (
		customer *models.Customer
		err      error
	)
	if email != "" {
		customer, err = s.customers.FindCustomerByEmail(ctx, email)
	} else {
		customer, err = s.customers.FindCustomerByPhone(ctx, phone)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Upstream("Database error", err)
	}
	return customer, nil
}

func (s *Service) findProvider(ctx context.Context, email, phone, role string) (*models.Provider, error) {
	var (
		provider *models.Provider
		err      error
	)
	switch {
	case role == models.ProviderTypeOwner:
		if phone == "" {
			return nil, nil
		}
		provider, err = s.providers.FindOwnerByMobile(ctx, phone)
	case email != "":
		provider, err = s.providers.FindProviderByEmail(ctx, email)
	default:
		provider, err = s.providers.FindProviderByMobile(ctx, phone)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Upstream("Database error", err)
	}
	return provider, nil
}

func customerCredentials(c *models.Customer) *credentials {
	accountType := models.FirstNonEmpty(c.Type, models.AccountTypeCustomer)
	return &credentials{
		id:           c.ID.Hex(),
		accountType:  accountType,
		passwordHash: c.PasswordHash,
		profile: Profile{
			ID:    c.ID.Hex(),
			Name:  c.Name,
			Type:  accountType,
			Email: c.Email,
			Phone: c.Phone,
		},
	}
}

func providerCredentials(p *models.Provider) *credentials {
	var logo *string
	if p.LogoURL != "" {
		url := p.LogoURL
		logo = &url
	}
	return &credentials{
		id:           p.ID.Hex(),
		accountType:  p.Type,
		passwordHash: p.PasswordHash,
		profile: Profile{
			ID:           p.ID.Hex(),
			Name:         p.DisplayName(),
			Type:         p.Type,
			Email:        p.Email,
			Phone:        p.MobileNumber,
			LogoURL:      logo,
			Address:      p.Address,
			WorkshopName: p.WorkshopName,
			OwnerName:    p.OwnerName,
			FullName:     p.FullName,
		},
	}
}
