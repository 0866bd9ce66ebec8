package account

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"filter-backend/internal/apperror"
	"filter-backend/internal/models"
	"filter-backend/internal/store"
	"filter-backend/internal/store/memstore"
	"filter-backend/internal/upload"
	"filter-backend/internal/upload/uploadtest"
)

const testSecret = "test-secret"

type fixture struct {
	svc      *Service
	store    *memstore.Store
	uploader *uploadtest.Fake
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := memstore.New()
	fake := uploadtest.New()
	svc := NewService(s, s, fake, NewTokenIssuer(testSecret, time.Hour), bcrypt.MinCost)
	return fixture{svc: svc, store: s, uploader: fake}
}

func float(v float64) *float64 { return &v }

func TestRegisterCustomerThenLoginByPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer, err := f.svc.RegisterCustomer(ctx, CustomerInput{Name: "Ali", Phone: "0551234567", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "customer", customer.Type)
	assert.NotEqual(t, "secret1", customer.PasswordHash)

	res, err := f.svc.Login(ctx, LoginInput{Phone: "0551234567", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, customer.ID.Hex(), res.User.ID)
	assert.Equal(t, "Ali", res.User.Name)
	assert.Equal(t, "customer", res.User.Type)
	assert.Equal(t, "0551234567", res.User.Phone)
	assert.Nil(t, res.User.LogoURL)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	token, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, customer.ID.Hex(), claims["userId"])
	assert.Equal(t, "customer", claims["type"])
}

func TestLogin_WrongPasswordAndUnknownAccountLookAlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.RegisterCustomer(ctx, CustomerInput{Name: "Ali", Phone: "0551234567", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := f.svc.Login(ctx, LoginInput{Phone: "0551234567", Password: "nope"})
	_, unknown := f.svc.Login(ctx, LoginInput{Phone: "0500000000", Password: "secret1"})

	for _, err := range []error{wrongPassword, unknown} {
		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindAuth, appErr.Kind)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

func TestLogin_RequiresIdentifierAndPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Login(context.Background(), LoginInput{Password: "x"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.svc.Login(context.Background(), LoginInput{Phone: "0551234567"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestLogin_EmailTakesPrecedenceAndIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.RegisterCustomer(ctx, CustomerInput{Name: "Sara", Phone: "0557000000", Email: "Sara@Example.com", Password: "pw"})
	require.NoError(t, err)

	res, err := f.svc.Login(ctx, LoginInput{Email: " sara@example.COM ", Phone: "0000", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "sara@example.com", res.User.Email)
}

func TestLogin_ProviderRoleSkipsCustomers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	// The same phone in both collections can only come from data written
	// outside the registration path.
	require.NoError(t, f.store.InsertCustomer(ctx, &models.Customer{Name: "Cust", Phone: "0501112233", PasswordHash: string(hash), Type: "customer"}))
	require.NoError(t, f.store.InsertProvider(ctx, &models.Provider{
		Type: models.ProviderTypeOwner, OwnerName: "Saleh", WorkshopName: "AutoPro", MobileNumber: "0501112233",
		PasswordHash: string(hash), LogoURL: "https://img.test/logo.png", Address: "Riyadh",
	}))

	asCustomer, err := f.svc.Login(ctx, LoginInput{Phone: "0501112233", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "customer", asCustomer.User.Type)

	asOwner, err := f.svc.Login(ctx, LoginInput{Phone: "0501112233", Password: "pw", Role: "owner"})
	require.NoError(t, err)
	assert.Equal(t, "owner", asOwner.User.Type)
	assert.Equal(t, "Saleh", asOwner.User.Name)
	assert.Equal(t, "AutoPro", asOwner.User.WorkshopName)
	assert.Equal(t, "0501112233", asOwner.User.Phone)
	require.NotNil(t, asOwner.User.LogoURL)
	assert.Equal(t, "https://img.test/logo.png", *asOwner.User.LogoURL)
}

func TestLogin_OwnerRoleNeedsOwnerType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.RegisterProvider(ctx, ProviderInput{Type: "individual", FullName: "Omar", MobileNumber: "0502223344", Password: "pw"})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, LoginInput{Phone: "0502223344", Password: "pw", Role: "owner"})
	assert.True(t, apperror.Is(err, apperror.KindAuth))

	res, err := f.svc.Login(ctx, LoginInput{Phone: "0502223344", Password: "pw", Role: "freelancer"})
	require.NoError(t, err)
	assert.Equal(t, "Omar", res.User.Name)

	_, err = f.svc.Login(ctx, LoginInput{Email: "omar@example.com", Password: "pw", Role: "owner"})
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestRegisterCustomer_Validation(t *testing.T) {
	f := newFixture(t)
	for _, in := range []CustomerInput{
		{Phone: "0551234567", Password: "pw"},
		{Name: "Ali", Password: "pw"},
		{Name: "Ali", Phone: "0551234567"},
		{Name: "  ", Phone: "0551234567", Password: "pw"},
	} {
		_, err := f.svc.RegisterCustomer(context.Background(), in)
		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr), "%+v", in)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "Missing required fields", appErr.Message)
	}
}

func TestRegisterCustomer_PhoneUniqueAcrossCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.RegisterProvider(ctx, ProviderInput{Type: "workshop", WorkshopName: "QuickFix", MobileNumber: "0503334455", Password: "pw"})
	require.NoError(t, err)

	_, err = f.svc.RegisterCustomer(ctx, CustomerInput{Name: "Ali", Phone: "0503334455", Password: "pw"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = f.svc.RegisterCustomer(ctx, CustomerInput{Name: "Ali", Phone: "0551234567", Password: "pw"})
	require.NoError(t, err)
	_, err = f.svc.RegisterCustomer(ctx, CustomerInput{Name: "Ali again", Phone: "0551234567", Password: "pw"})
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Customer already exists", appErr.Message)
	assert.Equal(t, 400, appErr.HTTPStatus())

	_, err = f.svc.RegisterProvider(ctx, ProviderInput{Type: "individual", MobileNumber: "0551234567", Password: "pw"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestRegisterCustomer_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.RegisterCustomer(ctx, CustomerInput{Name: "A", Phone: "1", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = f.svc.RegisterCustomer(ctx, CustomerInput{Name: "B", Phone: "2", Email: "A@example.com", Password: "pw"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestCustomerJSONNeverCarriesPassword(t *testing.T) {
	f := newFixture(t)
	customer, err := f.svc.RegisterCustomer(context.Background(), CustomerInput{Name: "Ali", Phone: "0551234567", Password: "secret1"})
	require.NoError(t, err)

	raw, err := json.Marshal(customer)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), customer.PasswordHash)
}

func TestRegisterProvider_WorkshopFieldsAndImages(t *testing.T) {
	f := newFixture(t)
	provider, err := f.svc.RegisterProvider(context.Background(), ProviderInput{
		Type:                  "workshop",
		WorkshopName:          "AutoPro Solutions",
		OwnerName:             "Saleh",
		CRNumber:              "CR-1",
		VATNumber:             "VAT-1",
		FullName:              "ignored",
		MobileNumber:          "0504445566",
		Password:              "pw",
		Services:              []string{"Oil change"},
		OffersOutdoorServices: true,
		Latitude:              float(24.7),
		Longitude:             float(46.6),
		Logo:                  &upload.File{Name: "logo.png", Data: []byte("l")},
		FrontPhoto:            &upload.File{Name: "front.jpg", Data: []byte("f")},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProviderStatusPending, provider.Status)
	assert.Equal(t, "AutoPro Solutions", provider.WorkshopName)
	assert.Equal(t, "CR-1", provider.CRNumber)
	assert.Empty(t, provider.FullName)
	assert.Equal(t, models.StringList{"Oil change"}, provider.Services)
	require.NotNil(t, provider.Location)
	assert.Equal(t, []float64{46.6, 24.7}, provider.Location.Coordinates)
	assert.Contains(t, provider.LogoURL, "/providers/")
	assert.Contains(t, provider.LogoURL, "logo.png")
	assert.Contains(t, provider.FrontPhotoURL, "front.jpg")
	assert.Equal(t, 2, f.uploader.Count())
}

func TestRegisterProvider_IndividualDefaults(t *testing.T) {
	f := newFixture(t)
	provider, err := f.svc.RegisterProvider(context.Background(), ProviderInput{
		FullName:     "Omar",
		IqamaID:      "2345",
		WorkshopName: "ignored",
		MobileNumber: "0505556677",
		Password:     "pw",
		Latitude:     float(24.7),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProviderTypeOwner, provider.Type)
	assert.Equal(t, "Omar", provider.FullName)
	assert.Equal(t, "2345", provider.IqamaID)
	assert.Empty(t, provider.WorkshopName)
	assert.Nil(t, provider.Location, "location needs both coordinates")
	assert.NotNil(t, provider.Services)
	assert.Empty(t, provider.LogoURL)
}

func TestRegisterProvider_RejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RegisterProvider(context.Background(), ProviderInput{Type: "admin", MobileNumber: "1", Password: "pw"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRegisterProvider_UploadFailurePersistsNothing(t *testing.T) {
	f := newFixture(t)
	f.uploader.FailOn = "front"
	ctx := context.Background()

	_, err := f.svc.RegisterProvider(ctx, ProviderInput{
		Type: "workshop", MobileNumber: "0506667788", Password: "pw",
		Logo:       &upload.File{Name: "logo.png"},
		FrontPhoto: &upload.File{Name: "front.png"},
	})
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.HTTPStatus())

	_, err = f.store.FindProviderByMobile(ctx, "0506667788")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 0, f.uploader.Count())
}

type failingProviders struct {
	*memstore.Store
}

func (failingProviders) InsertProvider(context.Context, *models.Provider) error {
	return errors.New("write failed")
}

func TestRegisterProvider_InsertFailureRollsBackUploads(t *testing.T) {
	s := memstore.New()
	fake := uploadtest.New()
	svc := NewService(s, failingProviders{s}, fake, NewTokenIssuer(testSecret, time.Hour), bcrypt.MinCost)

	_, err := svc.RegisterProvider(context.Background(), ProviderInput{
		MobileNumber: "0507778899", Password: "pw",
		Logo: &upload.File{Name: "logo.png"},
	})
	assert.True(t, apperror.Is(err, apperror.KindUpstream))
	assert.Equal(t, 0, fake.Count())
	assert.Len(t, fake.DeletedURLs(), 1)
}
