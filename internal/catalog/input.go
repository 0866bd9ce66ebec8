package catalog

import (
	"strings"

	"filter-backend/internal/models"
	"filter-backend/internal/upload"
)

// Input is a parsed create or update request. Each XxxSet flag records
// whether the client sent the field at all.
type Input struct {
	ProviderID        string
	ProviderIDSet     bool
	Name              string
	NameSet           bool
	Price             float64
	PriceSet          bool
	Category          string
	CategorySet       bool
	Status            string
	StatusSet         bool
	SubCategory       string
	SubCategorySet    bool
	Stock             int
	StockSet          bool
	SKU               string
	SKUSet            bool
	UOM               string
	UOMSet            bool
	PurchasePrice     float64
	PurchasePriceSet  bool
	Duration          int
	DurationSet       bool
	ServiceTypes      []string
	ServiceTypesSet   bool
	ExistingImages    []string
	ExistingImagesSet bool
	Files             []upload.File
}

// applyTo merges the whitelisted fields into item. A category change starts
// the new group from zero values so it has to be supplied in full. Applying
// the same input twice yields the same item.
func (in Input) applyTo(item *Item) {
	if in.NameSet {
		item.Name = strings.TrimSpace(in.Name)
	}
	if in.PriceSet {
		item.Price = in.Price
	}
	if in.StatusSet {
		item.Status = strings.TrimSpace(in.Status)
	}
	if in.CategorySet {
		category := strings.TrimSpace(in.Category)
		if category != item.Category() {
			item.Details = detailsFor(category)
		}
	}

	switch d := item.Details.(type) {
	case ProductDetails:
		if in.SubCategorySet {
			d.SubCategory = strings.TrimSpace(in.SubCategory)
		}
		if in.StockSet {
			d.Stock = in.Stock
		}
		if in.SKUSet {
			d.SKU = strings.TrimSpace(in.SKU)
		}
		if in.UOMSet {
			d.UOM = strings.TrimSpace(in.UOM)
		}
		if in.PurchasePriceSet {
			d.PurchasePrice = in.PurchasePrice
		}
		item.Details = d
	case ServiceDetails:
		if in.DurationSet {
			d.Duration = in.Duration
		}
		if in.ServiceTypesSet {
			d.ServiceTypes = cleanList(in.ServiceTypes)
		}
		item.Details = d
	}
}

func (in Input) hasValidCategory() bool {
	category := strings.TrimSpace(in.Category)
	return category == models.CategoryProduct || category == models.CategoryService
}

func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
