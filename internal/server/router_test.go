package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"filter-backend/internal/account"
	"filter-backend/internal/catalog"
	"filter-backend/internal/metrics"
	"filter-backend/internal/order"
	"filter-backend/internal/otp"
	"filter-backend/internal/ratelimit"
	"filter-backend/internal/store/memstore"
	"filter-backend/internal/upload/uploadtest"
	"filter-backend/internal/workshop"
)

const testSecret = "router-secret"

type harness struct {
	router   *gin.Engine
	uploader *uploadtest.Fake
}

func newHarness(t *testing.T, limiter ratelimit.Limiter) harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memstore.New()
	fake := uploadtest.New()
	tokens := account.NewTokenIssuer(testSecret, time.Hour)
	if limiter == nil {
		limiter = ratelimit.NewMemoryLimiter(1000, 1000)
	}

	router := NewRouter(Deps{
		Accounts:  account.NewService(st, st, fake, tokens, bcrypt.MinCost),
		Catalog:   catalog.NewService(st, fake),
		Orders:    order.NewService(st, st, nil),
		Directory: workshop.NewDirectory(st),
		OTP:       otp.NewService(otp.DefaultCode),
		Store:     st,
		Limiter:   limiter,
		Metrics:   metrics.New(),
		JWTSecret: testSecret,
	})
	return harness{router: router, uploader: fake}
}

func (h harness) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	body := map[string]any{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec.Code, body
}

func (h harness) json(t *testing.T, method, path string, payload any) (int, map[string]any) {
	t.Helper()
	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	return h.do(t, req)
}

func (h harness) multipart(t *testing.T, method, path string, fields map[string]string, files map[string]string) (int, map[string]any) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for name, field := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, _ = part.Write([]byte("image-bytes"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return h.do(t, req)
}

func TestCustomerRegistrationAndLogin(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.json(t, http.MethodPost, "/api/register-customer", map[string]any{
		"name": "Ali", "phone": "0551234567", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	customerID := body["customerId"].(string)
	customer := body["customer"].(map[string]any)
	assert.Equal(t, "Ali", customer["name"])
	assert.Equal(t, "customer", customer["type"])
	assert.NotContains(t, customer, "password")

	status, body = h.json(t, http.MethodPost, "/api/register-customer", map[string]any{
		"name": "Ali again", "phone": "0551234567", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Customer already exists", body["message"])

	status, body = h.json(t, http.MethodPost, "/api/login", map[string]any{
		"phone": "0551234567", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, status, body)
	user := body["user"].(map[string]any)
	assert.Equal(t, customerID, user["id"])
	assert.Equal(t, "Ali", user["name"])
	assert.Equal(t, "customer", user["type"])
	assert.Nil(t, user["logoUrl"])
	token := body["accessToken"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	status, body = h.do(t, req)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, customerID, body["user"].(map[string]any)["id"])

	status, body = h.json(t, http.MethodPost, "/api/login", map[string]any{
		"phone": "0551234567", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["message"])

	status, body = h.json(t, http.MethodPost, "/api/login", map[string]any{"phone": "0551234567"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email or phone and password are required", body["message"])
}

func TestMeRequiresToken(t *testing.T) {
	h := newHarness(t, nil)
	status, body := h.do(t, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
}

func TestProviderRegistrationAndOwnerLogin(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.multipart(t, http.MethodPost, "/api/register", map[string]string{
		"type":         "workshop",
		"workshopName": "Fast Fix",
		"ownerName":    "Omar",
		"mobileNumber": "0559990000",
		"password":     "pw123",
		"services":     `["oil change","brakes"]`,
		"latitude":     "24.71",
		"longitude":    "46.67",
	}, map[string]string{"logo.png": "logo"})
	require.Equal(t, http.StatusCreated, status, body)
	provider := body["provider"].(map[string]any)
	assert.Equal(t, "pending", provider["status"])
	assert.NotContains(t, provider, "password")
	assert.Contains(t, provider["logoUrl"], "https://img.test/providers/")
	assert.Equal(t, 1, h.uploader.Count())

	status, body = h.json(t, http.MethodPost, "/api/login", map[string]any{
		"phone": "0559990000", "password": "pw123", "role": "owner",
	})
	assert.Equal(t, http.StatusUnauthorized, status, body)

	status, body = h.json(t, http.MethodPost, "/api/login", map[string]any{
		"phone": "0559990000", "password": "pw123", "role": "workshop",
	})
	require.Equal(t, http.StatusOK, status, body)
	user := body["user"].(map[string]any)
	assert.Equal(t, "workshop", user["type"])
	assert.Equal(t, "Fast Fix", user["workshopName"])

	status, body = h.json(t, http.MethodPost, "/api/register-customer", map[string]any{
		"name": "Someone", "phone": "0559990000", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Customer already exists", body["message"])

	status, body = h.do(t, httptest.NewRequest(http.MethodGet, "/api/providers", nil))
	require.Equal(t, http.StatusOK, status)
	providers := body["providers"].([]any)
	require.Len(t, providers, 1)
	assert.Equal(t, "Fast Fix", providers[0].(map[string]any)["name"])
}

func TestCatalogLifecycle(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.multipart(t, http.MethodPost, "/api/products", map[string]string{
		"providerId": "P1", "name": "Oil Change", "price": "50", "category": "service",
		"duration": "30", "serviceTypes": `["oil"]`,
	}, nil)
	require.Equal(t, http.StatusCreated, status, body)

	status, body = h.multipart(t, http.MethodPost, "/api/products", map[string]string{
		"providerId": "P1", "name": "Brake Pad", "price": "99.9", "category": "product",
		"stock": "10", "sku": "PRD-000001", "uom": "pcs",
	}, map[string]string{"pad.jpg": "images[]"})
	require.Equal(t, http.StatusCreated, status, body)
	item := body["item"].(map[string]any)
	itemID := item["_id"].(string)
	assert.Equal(t, 99.9, item["price"])
	assert.Nil(t, item["serviceTypes"])
	require.Len(t, item["images"], 1)

	status, body = h.do(t, httptest.NewRequest(http.MethodGet, "/api/products?providerId=P1", nil))
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "Brake Pad", first["name"])
	assert.Equal(t, 10.0, first["stock"])

	status, body = h.json(t, http.MethodPut, "/api/products/"+itemID, map[string]any{"price": 120, "existingImages": []string{}})
	require.Equal(t, http.StatusOK, status, body)
	updated := body["item"].(map[string]any)
	assert.Equal(t, 120.0, updated["price"])
	assert.Empty(t, updated["images"])
	assert.Equal(t, "PRD-000001", updated["sku"])

	status, body = h.do(t, httptest.NewRequest(http.MethodDelete, "/api/products/"+itemID, nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = h.do(t, httptest.NewRequest(http.MethodDelete, "/api/products/"+itemID, nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestCatalogValidationErrors(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.multipart(t, http.MethodPost, "/api/products", map[string]string{
		"providerId": "P1", "name": "Brake Pad", "price": "10", "category": "product", "uom": "pcs",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Invalid input data")
	assert.Contains(t, body["message"], "sku")

	status, body = h.multipart(t, http.MethodPost, "/api/products", map[string]string{
		"providerId": "P1", "name": "Brake Pad", "category": "product", "sku": "PRD-000001", "uom": "pcs",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid input data: price is required", body["message"])

	status, body = h.do(t, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Provider ID required", body["message"])

	status, body = h.json(t, http.MethodPut, "/api/products/not-an-id", map[string]any{"price": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid ID format", body["message"])
	assert.Zero(t, h.uploader.Count())
}

func TestOrders(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.json(t, http.MethodPost, "/api/orders", map[string]any{
		"customerId":     "C1",
		"workshopId":     "695935601369bcdad93f5f81",
		"vehicleDetails": map[string]any{"make": "Toyota", "model": "Camry", "year": 2020},
		"serviceType":    "Oil change",
		"products":       []map[string]any{{"name": "Filter", "quantity": 1, "price": 25}},
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Order placed successfully", body["message"])
	assert.NotEmpty(t, body["orderId"])

	status, body = h.json(t, http.MethodPost, "/api/orders", map[string]any{"customerId": "C1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Required fields are missing", body["message"])

	status, body = h.do(t, httptest.NewRequest(http.MethodGet, "/api/orders?customerId=C1", nil))
	require.Equal(t, http.StatusOK, status)
	orders := body["data"].([]any)
	require.Len(t, orders, 1)
	placed := orders[0].(map[string]any)
	assert.Equal(t, "AutoPro Solutions", placed["workshopName"])
	assert.Equal(t, "pending", placed["status"])
	assert.Equal(t, "2020", placed["vehicleDetails"].(map[string]any)["year"])
}

func TestRecoveryFlow(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.json(t, http.MethodPost, "/api/forgot-password", map[string]any{"phone": "0551234567"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OTP sent successfully to 0551234567", body["message"])

	status, body = h.json(t, http.MethodPost, "/api/forgot-password", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Phone number is required", body["message"])

	status, body = h.json(t, http.MethodPost, "/api/verify-otp", map[string]any{"phone": "0551234567", "otp": "1234"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = h.json(t, http.MethodPost, "/api/verify-otp", map[string]any{"phone": "0551234567", "otp": "0000"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid OTP", body["message"])
}

func TestLoginIsRateLimited(t *testing.T) {
	h := newHarness(t, ratelimit.NewMemoryLimiter(1, 1))

	status, _ := h.json(t, http.MethodPost, "/api/login", map[string]any{"phone": "1", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := h.json(t, http.MethodPost, "/api/login", map[string]any{"phone": "1", "password": "x"})
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, false, body["success"])

	// Other routes keep their own budget.
	status, _ = h.json(t, http.MethodPost, "/api/verify-otp", map[string]any{"phone": "1", "otp": "1234"})
	assert.Equal(t, http.StatusOK, status)
}

func TestDirectoryAndOperationalRoutes(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.do(t, httptest.NewRequest(http.MethodGet, "/api/workshops", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 8)

	status, body = h.do(t, httptest.NewRequest(http.MethodGet, "/api/providers?page=0", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, body = h.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = h.do(t, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", body["message"])

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "filter_http_requests_total")
}
