package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryProduct = "product"
	CategoryService = "service"
)

const (
	ItemStatusActive   = "active"
	ItemStatusInactive = "inactive"
)

// CatalogItem is the flat product_services document. Fields of the inactive
// category group are stored as null.
type CatalogItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProviderID    string             `bson:"providerId" json:"providerId"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	Category      string             `bson:"category" json:"category"`
	Status        string             `bson:"status" json:"status"`
	Images        []string           `bson:"images" json:"images"`
	SubCategory   *string            `bson:"subCategory" json:"subCategory"`
	Stock         *int               `bson:"stock" json:"stock"`
	SKU           *string            `bson:"sku" json:"sku"`
	UOM           *string            `bson:"uom" json:"uom"`
	PurchasePrice *float64           `bson:"purchasePrice" json:"purchasePrice"`
	Duration      *int               `bson:"duration" json:"duration"`
	ServiceTypes  StringList         `bson:"serviceTypes" json:"serviceTypes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
