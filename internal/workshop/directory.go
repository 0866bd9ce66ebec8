// Package workshop serves the provider directory and the demo workshops.
package workshop

import (
	"context"

	"go.uber.org/zap"

	"filter-backend/internal/apperror"
	"filter-backend/internal/logger"
	"filter-backend/internal/models"
	"filter-backend/internal/store"
)

// Summary is the directory view of a registered provider.
type Summary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Address string  `json:"address"`
	LogoURL *string `json:"logoUrl"`
	Rating  float64 `json:"rating"`
	Status  string  `json:"status"`
}

type Directory struct {
	providers store.ProviderStore
}

func NewDirectory(providers store.ProviderStore) *Directory {
	return &Directory{providers: providers}
}

func (d *Directory) Workshops() []Workshop {
	return Demo()
}

func (d *Directory) Providers(ctx context.Context, page store.Page) ([]Summary, error) {
	providers, err := d.providers.ListProviders(ctx, page)
	if err != nil {
		logger.Error("list providers failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}

	summaries := make([]Summary, 0, len(providers))
	for _, p := range providers {
		var logo *string
		if p.LogoURL != "" {
			url := p.LogoURL
			logo = &url
		}
		summaries = append(summaries, Summary{
			ID:      p.ID.Hex(),
			Name:    models.FirstNonEmpty(p.WorkshopName, p.DisplayName()),
			Type:    p.Type,
			Address: p.Address,
			LogoURL: logo,
			Rating:  p.Rating,
			Status:  p.Status,
		})
	}
	return summaries, nil
}
