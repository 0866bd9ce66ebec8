package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// User is the normalized profile returned by login.
type User struct {
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

const (
	DashboardCustomer   = "customer"
	DashboardTechnician = "technician"
	DashboardProvider   = "provider"
)

// Dashboard picks the home screen for the account type.
func (u User) Dashboard() string {
	switch u.Type {
	case "customer":
		return DashboardCustomer
	case "individual":
		return DashboardTechnician
	default:
		return DashboardProvider
	}
}

type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Login authenticates and keeps the access token for later calls.
func (c *Client) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/login", in, &out); err != nil {
		return nil, err
	}
	c.Token = out.AccessToken
	return &out, nil
}

type Me struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var out struct {
		User Me `json:"user"`
	}
	if err := c.getJSON(ctx, "/api/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

type CustomerRegistration struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type Customer struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

func (c *Client) RegisterCustomer(ctx context.Context, in CustomerRegistration) (*Customer, error) {
	var out struct {
		Customer Customer `json:"customer"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/register-customer", in, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

// ProviderRegistration is sent as multipart. LogoPath and FrontPhotoPath
// name local image files.
type ProviderRegistration struct {
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
	LogoPath              string
	FrontPhotoPath        string
}

type Provider struct {
	ID           string   `json:"_id"`
	Type         string   `json:"type"`
	WorkshopName string   `json:"workshopName"`
	FullName     string   `json:"fullName"`
	MobileNumber string   `json:"mobileNumber"`
	Services     []string `json:"services"`
	LogoURL      string   `json:"logoUrl"`
	Status       string   `json:"status"`
}

func (c *Client) RegisterProvider(ctx context.Context, in ProviderRegistration) (*Provider, error) {
	services, err := json.Marshal(nonNilStrings(in.Services))
	if err != nil {
		return nil, err
	}

	form := &multipartForm{}
	for _, kv := range [][2]string{
		{"type", in.Type},
		{"workshopName", in.WorkshopName},
		{"ownerName", in.OwnerName},
		{"crNumber", in.CRNumber},
		{"vatNumber", in.VATNumber},
		{"fullName", in.FullName},
		{"iqamaId", in.IqamaID},
		{"email", in.Email},
		{"mobileNumber", in.MobileNumber},
		{"password", in.Password},
		{"address", in.Address},
	} {
		if kv[1] != "" {
			form.add(kv[0], kv[1])
		}
	}
	form.add("services", string(services))
	form.add("offersOutdoorServices", strconv.FormatBool(in.OffersOutdoorServices))
	if in.Latitude != nil && in.Longitude != nil {
		form.add("latitude", strconv.FormatFloat(*in.Latitude, 'f', -1, 64))
		form.add("longitude", strconv.FormatFloat(*in.Longitude, 'f', -1, 64))
	}
	if in.LogoPath != "" {
		if err := form.addPath("logo", in.LogoPath); err != nil {
			return nil, err
		}
	}
	if in.FrontPhotoPath != "" {
		if err := form.addPath("frontPhoto", in.FrontPhotoPath); err != nil {
			return nil, err
		}
	}

	var out struct {
		Provider Provider `json:"provider"`
	}
	if err := c.sendForm(ctx, http.MethodPost, "/api/register", form, &out); err != nil {
		return nil, err
	}
	return &out.Provider, nil
}

type ProviderSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Address string  `json:"address"`
	LogoURL *string `json:"logoUrl"`
	Rating  float64 `json:"rating"`
}

func (c *Client) Providers(ctx context.Context) ([]ProviderSummary, error) {
	var out struct {
		Providers []ProviderSummary `json:"providers"`
	}
	if err := c.getJSON(ctx, "/api/providers", nil, &out); err != nil {
		return nil, err
	}
	return out.Providers, nil
}

type Workshop struct {
	ID           string   `json:"_id"`
	WorkshopName string   `json:"workshopName"`
	LogoURL      string   `json:"logoUrl"`
	Services     []string `json:"services"`
	Technicians  []string `json:"technicians"`
	Rating       float64  `json:"rating"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
}

func (c *Client) Workshops(ctx context.Context) ([]Workshop, error) {
	var out struct {
		Data []Workshop `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/workshops", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Item is a catalog entry as the server returns it.
type Item struct {
	ID            string    `json:"_id"`
	ProviderID    string    `json:"providerId"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	Images        []string  `json:"images"`
	SubCategory   *string   `json:"subCategory"`
	Stock         *int      `json:"stock"`
	SKU           *string   `json:"sku"`
	UOM           *string   `json:"uom"`
	PurchasePrice *float64  `json:"purchasePrice"`
	Duration      *int      `json:"duration"`
	ServiceTypes  []string  `json:"serviceTypes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (c *Client) ListItems(ctx context.Context, providerID string) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	if err := c.getJSON(ctx, "/api/products", url.Values{"providerId": {providerID}}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

type Vehicle struct {
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	Year        string `json:"year,omitempty"`
	PlateNumber string `json:"plateNumber,omitempty"`
	Color       string `json:"color,omitempty"`
}

type OrderLine struct {
	ItemID   string  `json:"itemId,omitempty"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderRequest struct {
	CustomerID     string      `json:"customerId"`
	WorkshopID     string      `json:"workshopId"`
	TechnicianName string      `json:"technicianName,omitempty"`
	VehicleDetails Vehicle     `json:"vehicleDetails"`
	ServiceType    string      `json:"serviceType"`
	Products       []OrderLine `json:"products"`
	NotSure        bool        `json:"notSure"`
}

type Order struct {
	ID             string      `json:"_id"`
	CustomerID     string      `json:"customerId"`
	WorkshopID     string      `json:"workshopId"`
	WorkshopName   string      `json:"workshopName"`
	WorkshopLogo   *string     `json:"workshopLogo"`
	TechnicianName string      `json:"technicianName"`
	VehicleDetails Vehicle     `json:"vehicleDetails"`
	ServiceType    string      `json:"serviceType"`
	Products       []OrderLine `json:"products"`
	NotSure        bool        `json:"notSure"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// PlaceOrder returns the new order id.
func (c *Client) PlaceOrder(ctx context.Context, in OrderRequest) (string, error) {
	var out struct {
		OrderID string `json:"orderId"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/orders", in, &out); err != nil {
		return "", err
	}
	return out.OrderID, nil
}

func (c *Client) Orders(ctx context.Context, customerID string) ([]Order, error) {
	var out struct {
		Data []Order `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/orders", url.Values{"customerId": {customerID}}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ForgotPassword(ctx context.Context, phone string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/forgot-password", map[string]string{"phone": phone}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/verify-otp", map[string]string{"phone": phone, "otp": otp}, nil)
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
