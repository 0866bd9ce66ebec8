// Package order places customer orders against registered providers or the
// demo workshops.
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"filter-backend/internal/apperror"
	"filter-backend/internal/events"
	"filter-backend/internal/logger"
	"filter-backend/internal/models"
	"filter-backend/internal/store"
	"filter-backend/internal/workshop"
)

const UnknownWorkshopName = "Unknown Workshop"

type Service struct {
	orders    store.OrderStore
	providers store.ProviderStore
	publisher events.Publisher
	now       func() time.Time
}

func NewService(orders store.OrderStore, providers store.ProviderStore, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{orders: orders, providers: providers, publisher: publisher, now: time.Now}
}

type CreateInput struct {
	CustomerID     string
	WorkshopID     string
	TechnicianName string
	VehicleDetails models.VehicleDetails
	ServiceType    string
	Products       []models.OrderProduct
	NotSure        bool
}

// CreatedEvent is published on events.SubjectOrderCreated.
type CreatedEvent struct {
	OrderID      string    `json:"orderId"`
	CustomerID   string    `json:"customerId"`
	WorkshopID   string    `json:"workshopId"`
	WorkshopName string    `json:"workshopName"`
	ServiceType  string    `json:"serviceType"`
	CreatedAt    time.Time `json:"createdAt"`
}

type snapshot struct {
	name         string
	logo         *string
	technicianID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Order, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	workshopID := strings.TrimSpace(in.WorkshopID)
	serviceType := strings.TrimSpace(in.ServiceType)
	if customerID == "" || workshopID == "" || serviceType == "" || in.VehicleDetails.IsZero() {
		return nil, apperror.Validation("Required fields are missing")
	}

	snap, err := s.resolveWorkshop(ctx, workshopID, in.TechnicianName)
	if err != nil {
		return nil, err
	}

	products := in.Products
	if products == nil {
		products = []models.OrderProduct{}
	}

	order := &models.Order{
		CustomerID:     customerID,
		WorkshopID:     workshopID,
		WorkshopName:   snap.name,
		WorkshopLogo:   snap.logo,
		TechnicianName: strings.TrimSpace(in.TechnicianName),
		TechnicianID:   snap.technicianID,
		VehicleDetails: in.VehicleDetails,
		ServiceType:    serviceType,
		Products:       products,
		NotSure:        in.NotSure,
		Status:         models.OrderStatusPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.orders.InsertOrder(ctx, order); err != nil {
		logger.Error("insert order failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}

	event := CreatedEvent{
		OrderID:      order.ID.Hex(),
		CustomerID:   order.CustomerID,
		WorkshopID:   order.WorkshopID,
		WorkshopName: order.WorkshopName,
		ServiceType:  order.ServiceType,
		CreatedAt:    order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, events.SubjectOrderCreated, event); err != nil {
		logger.Warn("publish order created failed", zap.String("orderId", event.OrderID), zap.Error(err))
	}

	logger.Info("order placed",
		zap.String("orderId", order.ID.Hex()),
		zap.String("customerId", customerID),
		zap.String("workshopId", workshopID))
	return order, nil
}

// resolveWorkshop snapshots the workshop name and logo. Registered providers
// win over the demo list; an unknown id still produces an order.
func (s *Service) resolveWorkshop(ctx context.Context, workshopID, technicianName string) (snapshot, error) {
	if objectID, err := primitive.ObjectIDFromHex(workshopID); err == nil {
		provider, err := s.providers.FindProviderByID(ctx, objectID)
		switch {
		case err == nil:
			snap := snapshot{name: models.FirstNonEmpty(provider.WorkshopName, provider.DisplayName(), UnknownWorkshopName)}
			if provider.LogoURL != "" {
				logo := provider.LogoURL
				snap.logo = &logo
			}
			if employee, ok := provider.EmployeeByName(technicianName); ok {
				snap.technicianID = employee.ID
			}
			return snap, nil
		case !errors.Is(err, store.ErrNotFound):
			logger.Error("workshop lookup failed", zap.Error(err))
			return snapshot{}, apperror.Upstream("Database error", err)
		}
	}

	if demo, ok := workshop.FindDemo(workshopID); ok {
		logo := demo.LogoURL
		return snapshot{name: demo.WorkshopName, logo: &logo}, nil
	}

	logger.Warn("order for unknown workshop", zap.String("workshopId", workshopID))
	return snapshot{name: UnknownWorkshopName}, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, apperror.Validation("customerId is required")
	}
	orders, err := s.orders.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		logger.Error("list orders failed", zap.Error(err))
		return nil, apperror.Upstream("Database error", err)
	}
	return orders, nil
}
