package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/instanthaul/haul-platform/internal/service"
	"github.com/instanthaul/haul-platform/internal/storage"
)

// Server is the thin HTTP surface over the storage port and the booking
// workflow. Each route maps to exactly one port or workflow operation;
// no business rules live here beyond transition checks on the generic
// PATCH routes.
type Server struct {
	store   storage.Storage
	booking *service.BookingService
}

func New(store storage.Storage, booking *service.BookingService) *Server {
	return &Server{store: store, booking: booking}
}

// Router builds the echo instance with all routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// Users
	e.GET("/users/:id", s.getUser)
	e.POST("/users", s.createUser)

	// Service providers
	e.GET("/providers", s.listProviders)
	e.GET("/providers/available", s.listAvailableProviders)
	e.POST("/providers", s.createProvider)
	e.PATCH("/providers/:id/availability", s.updateProviderAvailability)

	// Service categories and pricing
	e.GET("/categories", s.listCategories)
	e.GET("/categories/:id", s.getCategory)
	e.GET("/categories/:id/pricing", s.listCategoryPricing)
	e.GET("/pricing-items", s.listPricingItems)
	e.POST("/pricing-items", s.createPricingItem)

	// Service requests
	e.GET("/requests/:id", s.getRequest)
	e.GET("/requests/user/:userId", s.listUserRequests)
	e.POST("/requests", s.createRequest)
	e.PATCH("/requests/:id", s.patchRequest)

	// Orders
	e.GET("/orders/:id", s.getOrder)
	e.GET("/orders/user/:userId", s.listUserOrders)
	e.GET("/orders/user/:userId/active", s.getUserActiveOrder)
	e.GET("/orders/provider/:providerId", s.listProviderOrders)
	e.POST("/orders", s.createOrder)
	e.PATCH("/orders/:id", s.patchOrder)

	// Booking workflow
	e.POST("/haul/requests/:id/quote", s.quoteRequest)
	e.POST("/haul/requests/:id/assign", s.assignProvider)
	e.POST("/haul/requests/:id/cancel", s.cancelRequest)
	e.POST("/haul/orders/:id/start", s.startOrder)
	e.POST("/haul/orders/:id/complete", s.completeOrder)
	e.POST("/haul/orders/:id/cancel", s.cancelOrder)
	e.POST("/haul/orders/:id/review", s.reviewOrder)

	// Audit
	e.GET("/events", s.listEvents)

	return e
}

// pathID parses a decimal integer path segment.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// respondErr maps core failures onto HTTP statuses: not found -> 404,
// conflicts and rejected transitions -> 409, validation -> 400,
// anything else (store I/O) -> 500 unchanged in the logs.
func respondErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.String(http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrConflict):
		return c.String(http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrProviderUnavailable):
		return c.String(http.StatusConflict, err.Error())
	case storage.IsValidation(err):
		return c.String(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
