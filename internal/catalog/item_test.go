package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filter-backend/internal/models"
)

func TestDocument_NullsInactiveGroup(t *testing.T) {
	product := Item{ProviderID: "p1", Name: "Pad", Status: "active", Details: ProductDetails{SKU: "S", UOM: "piece", Stock: 2}}
	doc := product.Document()
	assert.Equal(t, models.CategoryProduct, doc.Category)
	require.NotNil(t, doc.Stock)
	assert.Nil(t, doc.Duration)
	assert.Nil(t, doc.ServiceTypes)

	service := Item{ProviderID: "p1", Name: "Oil", Status: "active", Details: ServiceDetails{Duration: 30, ServiceTypes: []string{"Oil"}}}
	doc = service.Document()
	assert.Equal(t, models.CategoryService, doc.Category)
	assert.Nil(t, doc.Stock)
	assert.Nil(t, doc.SKU)
	assert.Nil(t, doc.UOM)
	assert.Nil(t, doc.PurchasePrice)
	assert.Nil(t, doc.SubCategory)
	require.NotNil(t, doc.Duration)
	assert.Equal(t, 30, *doc.Duration)
}

func TestFromDocument_UnknownCategoryFailsValidation(t *testing.T) {
	item := FromDocument(models.CatalogItem{ProviderID: "p1", Name: "Legacy", Category: "bundle", Status: "active"})
	assert.Nil(t, item.Details)
	assert.Contains(t, item.Validate(), "category must be one of [service product]")
}

func TestApplyTo_SameCategoryKeepsDetails(t *testing.T) {
	item := Item{Details: ProductDetails{SKU: "S", UOM: "u", Stock: 4}}
	Input{Category: "product", CategorySet: true, UOM: "box", UOMSet: true}.applyTo(&item)

	d, ok := item.Details.(ProductDetails)
	require.True(t, ok)
	assert.Equal(t, "S", d.SKU)
	assert.Equal(t, "box", d.UOM)
	assert.Equal(t, 4, d.Stock)
}
