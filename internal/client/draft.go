package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"filter-backend/internal/logger"
)

const (
	CategoryProduct = "product"
	CategoryService = "service"
)

var ErrNoProvider = errors.New("provider ID not found, please log in again")

// ItemDraft is the add/edit form state. Numeric fields hold the raw text the
// user typed. Images are either remote URLs kept from the stored item or
// local file paths to upload.
type ItemDraft struct {
	ID            string
	ProviderID    string
	Name          string
	Price         string
	Category      string
	Status        string
	SubCategory   string
	Stock         string
	SKU           string
	UOM           string
	PurchasePrice string
	Duration      string
	ServiceTypes  []string
	Images        []string
}

// DraftFromItem prepares a stored item for editing.
func DraftFromItem(it Item) ItemDraft {
	d := ItemDraft{
		ID:           it.ID,
		ProviderID:   it.ProviderID,
		Name:         it.Name,
		Price:        strconv.FormatFloat(it.Price, 'f', -1, 64),
		Category:     it.Category,
		Status:       it.Status,
		ServiceTypes: slices.Clone(it.ServiceTypes),
		Images:       slices.Clone(it.Images),
	}
	if it.SubCategory != nil {
		d.SubCategory = *it.SubCategory
	}
	if it.Stock != nil {
		d.Stock = strconv.Itoa(*it.Stock)
	}
	if it.SKU != nil {
		d.SKU = *it.SKU
	}
	if it.UOM != nil {
		d.UOM = *it.UOM
	}
	if it.PurchasePrice != nil {
		d.PurchasePrice = strconv.FormatFloat(*it.PurchasePrice, 'f', -1, 64)
	}
	if it.Duration != nil {
		d.Duration = strconv.Itoa(*it.Duration)
	}
	return d
}

// DraftError lists the form problems the user has to fix.
type DraftError struct {
	Missing []string
	Invalid []string
}

func (e *DraftError) Error() string {
	if len(e.Missing) > 0 {
		return "missing fields: " + strings.Join(e.Missing, ", ")
	}
	return "invalid input: " + strings.Join(e.Invalid, ", ")
}

// Validate runs the form checks. Missing fields are reported before invalid
// ones, matching how the app shows them.
func (d ItemDraft) Validate() error {
	var missing, invalid []string

	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "Product Name")
	}
	if d.Price == "" {
		missing = append(missing, "Price")
	} else if v, err := strconv.ParseFloat(d.Price, 64); err != nil || v < 0 {
		invalid = append(invalid, "Price must be a valid number")
	}

	if d.Category == CategoryProduct {
		if d.SubCategory == "" {
			missing = append(missing, "Category")
		}
		if d.Stock == "" {
			missing = append(missing, "Stock Quantity")
		} else if v, err := strconv.Atoi(d.Stock); err != nil || v < 0 {
			invalid = append(invalid, "Stock Quantity must be a valid integer")
		}
		if d.UOM == "" {
			missing = append(missing, "Unit of Measurement (UOM)")
		}
		if d.SKU == "" {
			missing = append(missing, "SKU")
		}
	} else {
		if len(d.ServiceTypes) == 0 {
			missing = append(missing, "Service Type")
		}
		if d.Duration == "" {
			missing = append(missing, "Duration")
		} else if v, err := strconv.ParseFloat(d.Duration, 64); err != nil || v <= 0 {
			invalid = append(invalid, "Duration must be a valid number (minutes)")
		}
	}

	if len(missing) > 0 {
		return &DraftError{Missing: missing}
	}
	if len(invalid) > 0 {
		return &DraftError{Invalid: invalid}
	}
	return nil
}

// Equal is the shallow comparison used to skip no-op updates.
func (d ItemDraft) Equal(o ItemDraft) bool {
	return d.Name == o.Name &&
		d.Price == o.Price &&
		d.Category == o.Category &&
		d.Status == o.Status &&
		d.SubCategory == o.SubCategory &&
		d.Stock == o.Stock &&
		d.SKU == o.SKU &&
		d.UOM == o.UOM &&
		d.PurchasePrice == o.PurchasePrice &&
		d.Duration == o.Duration &&
		slices.Equal(d.ServiceTypes, o.ServiceTypes) &&
		slices.Equal(d.Images, o.Images)
}

// GenerateSKU returns PRD-nnnnnn for products and SVC-nnnnnn for services.
func GenerateSKU(category string) string {
	prefix := "PRD"
	if category == CategoryService {
		prefix = "SVC"
	}
	return fmt.Sprintf("%s-%06d", prefix, rand.Intn(100000))
}

func isRemote(image string) bool {
	return strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://")
}

func (d ItemDraft) form() (*multipartForm, error) {
	form := &multipartForm{}
	form.add("providerId", d.ProviderID)
	form.add("name", d.Name)
	form.add("price", d.Price)
	form.add("category", valueOr(d.Category, CategoryService))
	form.add("status", valueOr(d.Status, "active"))

	if d.Category == CategoryProduct {
		form.add("subCategory", d.SubCategory)
		form.add("stock", valueOr(d.Stock, "0"))
		form.add("sku", d.SKU)
		form.add("uom", d.UOM)
		form.add("purchasePrice", valueOr(d.PurchasePrice, "0"))
	} else {
		form.add("duration", valueOr(d.Duration, "0"))
		types, err := json.Marshal(nonNilStrings(d.ServiceTypes))
		if err != nil {
			return nil, err
		}
		form.add("serviceTypes", string(types))
	}

	existing := []string{}
	for _, image := range d.Images {
		if isRemote(image) {
			existing = append(existing, image)
			continue
		}
		if err := form.addPath("images", image); err != nil {
			return nil, err
		}
	}
	if d.ID != "" {
		encoded, err := json.Marshal(existing)
		if err != nil {
			return nil, err
		}
		form.add("existingImages", string(encoded))
	}
	return form, nil
}

// SaveItem validates the draft and creates or updates the item. When editing
// and nothing differs from original, no request is sent and saved is false.
func (c *Client) SaveItem(ctx context.Context, draft ItemDraft, original *ItemDraft) (item *Item, saved bool, err error) {
	if err := draft.Validate(); err != nil {
		return nil, false, err
	}
	if draft.ID != "" && original != nil && draft.Equal(*original) {
		logger.Debug("no changes detected, skipping update", zap.String("itemId", draft.ID))
		return nil, false, nil
	}
	if draft.ProviderID == "" {
		return nil, false, ErrNoProvider
	}

	form, err := draft.form()
	if err != nil {
		return nil, false, err
	}

	method, path := http.MethodPost, "/api/products"
	if draft.ID != "" {
		method, path = http.MethodPut, "/api/products/"+url.PathEscape(draft.ID)
	}

	var out struct {
		Item Item `json:"item"`
	}
	if err := c.sendForm(ctx, method, path, form, &out); err != nil {
		return nil, false, err
	}
	return &out.Item, true, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
