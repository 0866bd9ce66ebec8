package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"filter-backend/internal/apperror"
	"filter-backend/internal/logger"
	"filter-backend/internal/models"
	"filter-backend/internal/store"
	"filter-backend/internal/upload"
)

type CustomerInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

func (s *Service) RegisterCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	email := normalizeEmail(in.Email)
	if name == "" || phone == "" || in.Password == "" {
		return nil, apperror.Validation("Missing required fields")
	}

	taken, err := s.phoneTaken(ctx, phone)
	if err != nil {
		logFailure("register customer lookup", err)
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("Customer already exists")
	}
	if email != "" {
		if _, err := s.customers.FindCustomerByEmail(ctx, email); err == nil {
			return nil, apperror.Conflict("Customer already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Upstream("Database error", err)
		}
	}

	hashed, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: hashed,
		Type:         models.AccountTypeCustomer,
		Status:       models.AccountStatusActive,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.customers.InsertCustomer(ctx, customer); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.Conflict("Customer already exists")
		}
		logger.Error("insert customer failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}

	logger.Info("customer registered", zap.String("customerId", customer.ID.Hex()))
	return customer, nil
}

type ProviderInput struct {
	Type                  string
	WorkshopName          string
	OwnerName             string
	CRNumber              string
	VATNumber             string
	FullName              string
	IqamaID               string
	Email                 string
	MobileNumber          string
	Password              string
	Address               string
	Services              []string
	OffersOutdoorServices bool
	Latitude              *float64
	Longitude             *float64
	Logo                  *upload.File
	FrontPhoto            *upload.File
}

// RegisterProvider uploads the logo and front photo before inserting the
// account. A failed upload persists nothing; a failed insert deletes the
// uploaded files.
func (s *Service) RegisterProvider(ctx context.Context, in ProviderInput) (*models.Provider, error) {
	mobile := strings.TrimSpace(in.MobileNumber)
	providerType := strings.ToLower(strings.TrimSpace(in.Type))
	if providerType == "" {
		providerType = models.ProviderTypeOwner
	}
	if mobile == "" || in.Password == "" {
		return nil, apperror.Validation("Missing required fields")
	}
	if !models.IsProviderType(providerType) {
		return nil, apperror.Validationf("Unsupported provider type: %s", providerType)
	}

	taken, err := s.phoneTaken(ctx, mobile)
	if err != nil {
		logFailure("register provider lookup", err)
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("Provider already exists")
	}

	hashed, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	provider := &models.Provider{
		Type:                  providerType,
		Email:                 normalizeEmail(in.Email),
		MobileNumber:          mobile,
		PasswordHash:          hashed,
		Services:              models.StringList(nonNil(in.Services)),
		OffersOutdoorServices: in.OffersOutdoorServices,
		Address:               strings.TrimSpace(in.Address),
		Status:                models.ProviderStatusPending,
		CreatedAt:             s.now().UTC(),
	}
	if providerType == models.ProviderTypeWorkshop {
		provider.WorkshopName = strings.TrimSpace(in.WorkshopName)
		provider.OwnerName = strings.TrimSpace(in.OwnerName)
		provider.CRNumber = strings.TrimSpace(in.CRNumber)
		provider.VATNumber = strings.TrimSpace(in.VATNumber)
	} else {
		provider.FullName = strings.TrimSpace(in.FullName)
		provider.IqamaID = strings.TrimSpace(in.IqamaID)
	}
	if in.Latitude != nil && in.Longitude != nil {
		provider.Location = models.NewGeoPoint(*in.Latitude, *in.Longitude)
	}

	uploaded, err := s.uploadProviderImages(ctx, in, provider)
	if err != nil {
		return nil, err
	}

	if err := s.providers.InsertProvider(ctx, provider); err != nil {
		upload.Rollback(context.WithoutCancel(ctx), s.uploader, uploaded)
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.Conflict("Provider already exists")
		}
		logger.Error("insert provider failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}

	logger.Info("provider registered",
		zap.String("providerId", provider.ID.Hex()),
		zap.String("type", provider.Type))
	return provider, nil
}

func (s *Service) uploadProviderImages(ctx context.Context, in ProviderInput, provider *models.Provider) ([]string, error) {
	files := make([]upload.File, 0, 2)
	if in.Logo != nil {
		files = append(files, *in.Logo)
	}
	if in.FrontPhoto != nil {
		files = append(files, *in.FrontPhoto)
	}
	if len(files) == 0 {
		return nil, nil
	}

	urls, err := upload.UploadAll(ctx, s.uploader, ProviderUploadFolder, files)
	if err != nil {
		logger.Error("provider image upload failed", zap.Error(err))
		return nil, apperror.Upstream("Image upload failed", err)
	}

	next := 0
	if in.Logo != nil {
		provider.LogoURL = urls[next]
		next++
	}
	if in.FrontPhoto != nil {
		provider.FrontPhotoURL = urls[next]
	}
	return urls, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
