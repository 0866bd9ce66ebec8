package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/catalog"
)

// imageFields are the multipart names the mobile client sends images under.
var imageFields = []string{"images", "images[]"}

// parseCatalogInput maps the request into a catalog.Input, marking only the
// fields the client actually sent.
func parseCatalogInput(c *gin.Context) (catalog.Input, error) {
	form, err := readForm(c)
	if err != nil {
		return catalog.Input{}, err
	}

	var in catalog.Input
	in.ProviderID, in.ProviderIDSet = formString(form, "providerId")
	in.Name, in.NameSet = formString(form, "name")
	in.Category, in.CategorySet = formString(form, "category")
	in.Status, in.StatusSet = formString(form, "status")
	in.SubCategory, in.SubCategorySet = formString(form, "subCategory")
	in.SKU, in.SKUSet = formString(form, "sku")
	in.UOM, in.UOMSet = formString(form, "uom")

	if in.Price, in.PriceSet, err = formFloat(form, "price"); err != nil {
		return catalog.Input{}, err
	}
	if in.PurchasePrice, in.PurchasePriceSet, err = formFloat(form, "purchasePrice"); err != nil {
		return catalog.Input{}, err
	}
	if in.Stock, in.StockSet, err = formInt(form, "stock"); err != nil {
		return catalog.Input{}, err
	}
	if in.Duration, in.DurationSet, err = formInt(form, "duration"); err != nil {
		return catalog.Input{}, err
	}
	if in.ServiceTypes, in.ServiceTypesSet, err = formList(form, "serviceTypes"); err != nil {
		return catalog.Input{}, err
	}
	if in.ExistingImages, in.ExistingImagesSet, err = formList(form, "existingImages"); err != nil {
		return catalog.Input{}, err
	}

	if in.Files, err = formFiles(c, imageFields...); err != nil {
		return catalog.Input{}, err
	}
	return in, nil
}

func ListItems(items *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		list, err := items.List(ctx, c.Query("providerId"))
		if err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "items": list})
	}
}

func CreateItem(items *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"

		in, err := parseCatalogInput(c)
		if err != nil {
			respondError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		item, err := items.Create(ctx, in)
		if err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
	}
}

func UpdateItem(items *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/products/:id"

		in, err := parseCatalogInput(c)
		if err != nil {
			respondError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		item, err := items.Update(ctx, c.Param("id"), in)
		if err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
	}
}

func DeleteItem(items *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/products/:id"

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if err := items.Delete(ctx, c.Param("id")); err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted successfully"})
	}
}
