// Package catalog manages a provider's products and services.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"filter-backend/internal/apperror"
	"filter-backend/internal/logger"
	"filter-backend/internal/models"
	"filter-backend/internal/store"
	"filter-backend/internal/upload"
)

const UploadFolder = "products_services"

type Service struct {
	items    store.CatalogStore
	uploader upload.Uploader
	now      func() time.Time
}

func NewService(items store.CatalogStore, uploader upload.Uploader) *Service {
	return &Service{items: items, uploader: uploader, now: time.Now}
}

func invalid(problems []string) *apperror.Error {
	return apperror.Validation("Invalid input data: " + strings.Join(problems, "; "))
}

func (s *Service) Create(ctx context.Context, in Input) (*models.CatalogItem, error) {
	if !in.CategorySet || !in.hasValidCategory() {
		return nil, invalid([]string{"category must be one of [service product]"})
	}
	if !in.PriceSet {
		return nil, invalid([]string{"price is required"})
	}
	if len(in.Files) > upload.MaxFilesPerRequest {
		return nil, apperror.Validation(upload.ErrTooManyFiles.Error())
	}

	item := Item{
		ProviderID: strings.TrimSpace(in.ProviderID),
		Status:     models.ItemStatusActive,
		Images:     []string{},
	}
	in.applyTo(&item)
	if problems := item.Validate(); len(problems) > 0 {
		return nil, invalid(problems)
	}

	uploaded, err := upload.UploadAll(ctx, s.uploader, UploadFolder, in.Files)
	if err != nil {
		logger.Error("catalog image upload failed", zap.Error(err))
		return nil, apperror.Upstream("Image upload failed", err)
	}
	item.Images = uploaded

	now := s.now().UTC()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = now

	doc := item.Document()
	if err := s.items.InsertItem(ctx, &doc); err != nil {
		upload.Rollback(context.WithoutCancel(ctx), s.uploader, uploaded)
		logger.Error("insert catalog item failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}

	logger.Info("catalog item created",
		zap.String("itemId", doc.ID.Hex()),
		zap.String("providerId", doc.ProviderID),
		zap.String("category", doc.Category))
	return &doc, nil
}

func (s *Service) List(ctx context.Context, providerID string) ([]models.CatalogItem, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, apperror.Validation("Provider ID required")
	}
	items, err := s.items.ListItemsByProvider(ctx, providerID)
	if err != nil {
		logger.Error("list catalog items failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}
	return items, nil
}

// Update loads the stored item, merges the patch, re-checks the category
// invariant and persists the result. New files are appended to either the
// client's existingImages list or the stored images.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.CatalogItem, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, apperror.Validation("Invalid ID format")
	}
	if in.CategorySet && !in.hasValidCategory() {
		return nil, invalid([]string{"category must be one of [service product]"})
	}
	if len(in.Files) > upload.MaxFilesPerRequest {
		return nil, apperror.Validation(upload.ErrTooManyFiles.Error())
	}

	existing, err := s.items.FindItemByID(ctx, objectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("Item not found")
	}
	if err != nil {
		logger.Error("load catalog item failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}

	item := FromDocument(*existing)
	in.applyTo(&item)
	if problems := item.Validate(); len(problems) > 0 {
		return nil, invalid(problems)
	}

	if in.ExistingImagesSet {
		item.Images = cleanList(in.ExistingImages)
	}
	uploaded, err := upload.UploadAll(ctx, s.uploader, UploadFolder, in.Files)
	if err != nil {
		logger.Error("catalog image upload failed", zap.Error(err))
		return nil, apperror.Upstream("Image upload failed", err)
	}
	item.Images = append(item.Images, uploaded...)
	item.UpdatedAt = s.now().UTC()

	// TODO: remove images dropped from the list from the image host.
	doc := item.Document()
	updated, err := s.items.UpdateItem(ctx, &doc)
	if err != nil {
		upload.Rollback(context.WithoutCancel(ctx), s.uploader, uploaded)
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("Item not found")
		}
		logger.Error("update catalog item failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}

	logger.Info("catalog item updated", zap.String("itemId", updated.ID.Hex()))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return apperror.Validation("Invalid ID format")
	}
	if err := s.items.DeleteItem(ctx, objectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("Item not found")
		}
		logger.Error("delete catalog item failed", zap.Error(err))
		return apperror.Upstream("Database error", err)
	}
	logger.Info("catalog item deleted", zap.String("itemId", objectID.Hex()))
	return nil
}
