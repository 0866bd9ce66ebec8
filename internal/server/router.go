// Package server assembles the HTTP route table.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/account"
	"filter-backend/internal/catalog"
	"filter-backend/internal/handlers"
	"filter-backend/internal/metrics"
	"filter-backend/internal/middleware"
	"filter-backend/internal/order"
	"filter-backend/internal/otp"
	"filter-backend/internal/ratelimit"
	"filter-backend/internal/store"
	"filter-backend/internal/upload"
	"filter-backend/internal/workshop"
)

type Deps struct {
	Accounts  *account.Service
	Catalog   *catalog.Service
	Orders    *order.Service
	Directory *workshop.Directory
	OTP       *otp.Service
	Store     store.Pinger
	Limiter   ratelimit.Limiter
	Metrics   *metrics.HTTPMetrics
	JWTSecret string
	// UploadDir is served under /uploads when images are kept on disk.
	UploadDir string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20

	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.AccessLog())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", d.Metrics.Handler())
	}
	if d.UploadDir != "" {
		r.Static(upload.URLPrefix, d.UploadDir)
	}

	r.GET("/healthz", handlers.Health(d.Store))

	throttled := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if d.Limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.RateLimit(d.Limiter), h}
	}

	api := r.Group("/api")
	{
		api.POST("/register-customer", handlers.RegisterCustomer(d.Accounts))
		api.POST("/register", handlers.RegisterProvider(d.Accounts))
		api.POST("/login", throttled(handlers.Login(d.Accounts))...)
		api.GET("/me", middleware.UserAuth(d.JWTSecret), handlers.Me())

		api.POST("/forgot-password", throttled(handlers.ForgotPassword(d.OTP))...)
		api.POST("/verify-otp", throttled(handlers.VerifyOTP(d.OTP))...)

		api.GET("/providers", handlers.ListProviders(d.Directory))
		api.GET("/workshops", handlers.ListWorkshops(d.Directory))

		api.GET("/products", handlers.ListItems(d.Catalog))
		api.POST("/products", handlers.CreateItem(d.Catalog))
		api.PUT("/products/:id", handlers.UpdateItem(d.Catalog))
		api.DELETE("/products/:id", handlers.DeleteItem(d.Catalog))

		api.POST("/orders", handlers.CreateOrder(d.Orders))
		api.GET("/orders", handlers.ListOrders(d.Orders))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})
	return r
}
