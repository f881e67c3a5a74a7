package api

import (
	"net/http"

	"propane-delivery/internal/api/middleware"
	"propane-delivery/internal/modules/drivers"
	"propane-delivery/internal/modules/orders"
	"propane-delivery/internal/modules/pricing"
	"propane-delivery/internal/modules/users"
	"propane-delivery/internal/modules/zones"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	userHandler *users.Handler,
	orderHandler *orders.Handler,
	driverHandler *drivers.Handler,
	zoneHandler *zones.Handler,
	priceHandler *pricing.Handler,
	jwtSecret string,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)
	adminRequired := middleware.AdminRequired()
	driverRequired := middleware.DriverRequired()

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to Propane Delivery!"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", userHandler.Signup)
		authGroup.POST("/login", userHandler.Login)
		authGroup.GET("/google", userHandler.GoogleLogin)
		authGroup.GET("/google/callback", userHandler.GoogleCallback)
	}

	// Serviceability probe: anonymous, so the landing page can answer
	// "do you deliver here?" before signup.
	e.POST("/zones/check", zoneHandler.CheckLocation)
	e.GET("/prices", priceHandler.ListPrices)

	// --- User (Customer) Routes ---
	profileGroup := e.Group("/profile", authMiddleware)
	{
		profileGroup.GET("", userHandler.GetMyProfile)
		profileGroup.PUT("", userHandler.UpdateMyProfile)
		profileGroup.PUT("/location", userHandler.UpdateMyLocation)
	}

	// --- Order Routes ---
	orderGroup := e.Group("/orders", authMiddleware)
	{
		orderGroup.POST("", orderHandler.CreateOrder)
		orderGroup.GET("", orderHandler.ListMyOrders)
		orderGroup.GET("/:orderId", orderHandler.GetOrderDetails)
		orderGroup.PUT("/:orderId/cancel", orderHandler.CancelOrder)
	}

	// --- Driver Routes ---
	driverGroup := e.Group("/driver", authMiddleware, driverRequired)
	{
		driverGroup.GET("/profile", driverHandler.GetMyProfile)
		driverGroup.PUT("/status", driverHandler.UpdateMyStatus)
		driverGroup.PUT("/location", driverHandler.UpdateMyLocation)
		driverGroup.GET("/queue", orderHandler.DriverQueue)
		driverGroup.POST("/orders/:orderId/claim", orderHandler.ClaimOrder)
		driverGroup.PUT("/orders/:orderId/status", orderHandler.DriverUpdateStatus)
	}

	// --- Admin Routes ---
	adminGroup := e.Group("/admin", authMiddleware, adminRequired)
	{
		// Zone Management
		adminGroup.POST("/zones", zoneHandler.CreateZone)
		adminGroup.POST("/zones/template", zoneHandler.CreateZoneFromTemplate)
		adminGroup.GET("/zones", zoneHandler.ListZones)
		adminGroup.GET("/zones/:zoneId", zoneHandler.GetZone)
		adminGroup.PUT("/zones/:zoneId", zoneHandler.UpdateZone)
		adminGroup.DELETE("/zones/:zoneId", zoneHandler.DeleteZone)

		// Driver Management
		adminGroup.POST("/drivers", driverHandler.CreateDriver)
		adminGroup.GET("/drivers", driverHandler.ListDrivers)
		adminGroup.PUT("/drivers/:driverId/zone", driverHandler.AssignZone)
		adminGroup.PUT("/drivers/:driverId/suspend", driverHandler.Suspend)

		// Order Management
		adminGroup.GET("/orders", orderHandler.ListAllOrders)
		adminGroup.POST("/orders/:orderId/assign", orderHandler.AdminAssignOrder)
		adminGroup.PUT("/orders/:orderId/status", orderHandler.AdminUpdateStatus)

		// Pricing Management
		adminGroup.POST("/prices", priceHandler.CreatePrice)
		adminGroup.PUT("/prices/:priceId", priceHandler.UpdatePrice)
		adminGroup.DELETE("/prices/:priceId", priceHandler.DeletePrice)

		// User Management
		adminGroup.GET("/users", userHandler.ListUsers)
	}
}
