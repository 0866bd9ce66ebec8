package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/models"
	"filter-backend/internal/order"
)

type CreateOrderRequest struct {
	CustomerID     string                `json:"customerId"`
	WorkshopID     string                `json:"workshopId"`
	TechnicianName string                `json:"technicianName"`
	VehicleDetails models.VehicleDetails `json:"vehicleDetails"`
	ServiceType    string                `json:"serviceType"`
	Products       []models.OrderProduct `json:"products"`
	NotSure        bool                  `json:"notSure"`
}

func CreateOrder(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		created, err := orders.Create(ctx, order.CreateInput{
			CustomerID:     req.CustomerID,
			WorkshopID:     req.WorkshopID,
			TechnicianName: req.TechnicianName,
			VehicleDetails: req.VehicleDetails,
			ServiceType:    req.ServiceType,
			Products:       req.Products,
			NotSure:        req.NotSure,
		})
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully",
			"orderId": created.ID.Hex(),
		})
	}
}

func ListOrders(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		list, err := orders.ListByCustomer(ctx, c.Query("customerId"))
		if err != nil {
			respondError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
	}
}
