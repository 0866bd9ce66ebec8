package client

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() ItemDraft {
	return ItemDraft{
		ProviderID:  "P1",
		Name:        "Brake Pad",
		Price:       "99.9",
		Category:    CategoryProduct,
		SubCategory: "Brake Pads",
		Stock:       "10",
		SKU:         "PRD-000001",
		UOM:         "Piece",
	}
}

func TestItemDraftValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ItemDraft)
		missing []string
		invalid []string
	}{
		{name: "valid product", mutate: func(*ItemDraft) {}},
		{
			name:    "product missing fields",
			mutate:  func(d *ItemDraft) { d.SubCategory, d.Stock, d.UOM, d.SKU = "", "", "", "" },
			missing: []string{"Category", "Stock Quantity", "Unit of Measurement (UOM)", "SKU"},
		},
		{
			name:    "negative price",
			mutate:  func(d *ItemDraft) { d.Price = "-1" },
			invalid: []string{"Price must be a valid number"},
		},
		{
			name:    "fractional stock",
			mutate:  func(d *ItemDraft) { d.Stock = "2.5" },
			invalid: []string{"Stock Quantity must be a valid integer"},
		},
		{
			name: "service with zero duration",
			mutate: func(d *ItemDraft) {
				d.Category = CategoryService
				d.ServiceTypes = []string{"oil"}
				d.Duration = "0"
			},
			invalid: []string{"Duration must be a valid number (minutes)"},
		},
		{
			name:    "missing wins over invalid",
			mutate:  func(d *ItemDraft) { d.Name = ""; d.Price = "abc" },
			missing: []string{"Product Name"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validProduct()
			tc.mutate(&d)
			err := d.Validate()
			if tc.missing == nil && tc.invalid == nil {
				assert.NoError(t, err)
				return
			}
			var draftErr *DraftError
			require.ErrorAs(t, err, &draftErr)
			assert.Equal(t, tc.missing, draftErr.Missing)
			assert.Equal(t, tc.invalid, draftErr.Invalid)
		})
	}
}

func TestItemDraftEqual(t *testing.T) {
	a := validProduct()
	a.Images = []string{"https://img.test/a.png"}
	b := a
	b.Images = []string{"https://img.test/a.png"}
	assert.True(t, a.Equal(b))

	b.SKU = "PRD-999999"
	assert.False(t, a.Equal(b))

	b = a
	b.Images = nil
	assert.False(t, a.Equal(b))

	b = a
	b.ServiceTypes = []string{"x"}
	assert.False(t, a.Equal(b))
}

func TestDraftFromItemRoundTrip(t *testing.T) {
	stock, sku, uom := 10, "PRD-1", "Piece"
	it := Item{ID: "1", Name: "Pad", Price: 99.9, Category: CategoryProduct, Stock: &stock, SKU: &sku, UOM: &uom}
	d := DraftFromItem(it)
	assert.Equal(t, "99.9", d.Price)
	assert.Equal(t, "10", d.Stock)
	assert.Equal(t, "", d.PurchasePrice)
	assert.True(t, d.Equal(DraftFromItem(it)))
}

func TestGenerateSKU(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^PRD-\d{6}$`), GenerateSKU(CategoryProduct))
	assert.Regexp(t, regexp.MustCompile(`^SVC-\d{6}$`), GenerateSKU(CategoryService))
}
