// Package store declares the persistence contracts shared by the services.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"filter-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// Page limits a listing. A zero Limit returns everything.
type Page struct {
	Skip  int64
	Limit int64
}

type CustomerStore interface {
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	InsertCustomer(ctx context.Context, customer *models.Customer) error
}

type ProviderStore interface {
	FindProviderByID(ctx context.Context, id primitive.ObjectID) (*models.Provider, error)
	FindProviderByMobile(ctx context.Context, mobile string) (*models.Provider, error)
	FindOwnerByMobile(ctx context.Context, mobile string) (*models.Provider, error)
	FindProviderByEmail(ctx context.Context, email string) (*models.Provider, error)
	InsertProvider(ctx context.Context, provider *models.Provider) error
	// ListProviders returns non-rejected providers, newest first.
	ListProviders(ctx context.Context, page Page) ([]models.Provider, error)
}

type CatalogStore interface {
	InsertItem(ctx context.Context, item *models.CatalogItem) error
	FindItemByID(ctx context.Context, id primitive.ObjectID) (*models.CatalogItem, error)
	// ListItemsByProvider returns the provider's items, newest first.
	ListItemsByProvider(ctx context.Context, providerID string) ([]models.CatalogItem, error)
	UpdateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error)
	DeleteItem(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	// ListOrdersByCustomer returns the customer's orders, newest first.
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is everything the HTTP service needs from persistence.
type Store interface {
	CustomerStore
	ProviderStore
	CatalogStore
	OrderStore
	Pinger
}
