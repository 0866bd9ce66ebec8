package catalog

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"filter-backend/internal/models"
)

// Details holds the fields that only exist for one category. It is either
// ProductDetails or ServiceDetails.
type Details interface {
	Category() string
	isDetails()
}

type ProductDetails struct {
	SubCategory   string  `json:"subCategory"`
	Stock         int     `json:"stock" validate:"gte=0"`
	SKU           string  `json:"sku" validate:"required"`
	UOM           string  `json:"uom" validate:"required"`
	PurchasePrice float64 `json:"purchasePrice" validate:"gte=0"`
}

func (ProductDetails) Category() string { return models.CategoryProduct }
func (ProductDetails) isDetails()       {}

type ServiceDetails struct {
	Duration     int      `json:"duration" validate:"gt=0"`
	ServiceTypes []string `json:"serviceTypes" validate:"required,min=1,dive,required"`
}

func (ServiceDetails) Category() string { return models.CategoryService }
func (ServiceDetails) isDetails()       {}

// Item is a catalog entry with its category-specific fields.
type Item struct {
	ID         primitive.ObjectID
	ProviderID string   `json:"providerId" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Price      float64  `json:"price" validate:"gte=0"`
	Status     string   `json:"status" validate:"oneof=active inactive"`
	Images     []string `json:"images" validate:"dive,required"`
	Details    Details  `json:"-" validate:"-"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (it Item) Category() string {
	if it.Details == nil {
		return ""
	}
	return it.Details.Category()
}

func detailsFor(category string) Details {
	switch category {
	case models.CategoryProduct:
		return ProductDetails{}
	case models.CategoryService:
		return ServiceDetails{}
	}
	return nil
}

// FromDocument lifts a stored document into an Item. Documents with an
// unknown category come back with nil Details.
func FromDocument(doc models.CatalogItem) Item {
	item := Item{
		ID:         doc.ID,
		ProviderID: doc.ProviderID,
		Name:       doc.Name,
		Price:      doc.Price,
		Status:     doc.Status,
		Images:     append([]string{}, doc.Images...),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
	switch doc.Category {
	case models.CategoryProduct:
		item.Details = ProductDetails{
			SubCategory:   deref(doc.SubCategory),
			Stock:         deref(doc.Stock),
			SKU:           deref(doc.SKU),
			UOM:           deref(doc.UOM),
			PurchasePrice: deref(doc.PurchasePrice),
		}
	case models.CategoryService:
		item.Details = ServiceDetails{
			Duration:     deref(doc.Duration),
			ServiceTypes: append([]string{}, doc.ServiceTypes...),
		}
	}
	return item
}

// Document flattens the item. The inactive category's fields are null.
func (it Item) Document() models.CatalogItem {
	doc := models.CatalogItem{
		ID:         it.ID,
		ProviderID: it.ProviderID,
		Name:       it.Name,
		Price:      it.Price,
		Category:   it.Category(),
		Status:     it.Status,
		Images:     append([]string{}, it.Images...),
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
	switch d := it.Details.(type) {
	case ProductDetails:
		doc.SubCategory = &d.SubCategory
		doc.Stock = &d.Stock
		doc.SKU = &d.SKU
		doc.UOM = &d.UOM
		doc.PurchasePrice = &d.PurchasePrice
	case ServiceDetails:
		doc.Duration = &d.Duration
		doc.ServiceTypes = append(models.StringList{}, d.ServiceTypes...)
	}
	return doc
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks the common fields and the category invariant. It returns
// one message per problem.
func (it Item) Validate() []string {
	var problems []string
	problems = append(problems, describe(validate.Struct(it))...)

	switch d := it.Details.(type) {
	case ProductDetails:
		problems = append(problems, describe(validate.Struct(d))...)
	case ServiceDetails:
		problems = append(problems, describe(validate.Struct(d))...)
	default:
		problems = append(problems, "category must be one of [service product]")
	}
	return problems
}

func describe(err error) []string {
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must not be empty", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return messages
}
