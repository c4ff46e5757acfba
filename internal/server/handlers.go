package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/instanthaul/haul-platform/internal/lifecycle"
	"github.com/instanthaul/haul-platform/internal/model"
	"github.com/instanthaul/haul-platform/internal/storage"
)

// Users

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := s.store.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) createUser(c echo.Context) error {
	var user model.User
	if err := c.Bind(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := s.store.CreateUser(c.Request().Context(), &user); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Service providers

func (s *Server) listProviders(c echo.Context) error {
	providers, err := s.store.ListServiceProviders(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, providers)
}

func (s *Server) listAvailableProviders(c echo.Context) error {
	providers, err := s.store.ListAvailableServiceProviders(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, providers)
}

func (s *Server) createProvider(c echo.Context) error {
	var provider model.ServiceProvider
	if err := c.Bind(&provider); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := s.store.CreateServiceProvider(c.Request().Context(), &provider); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, provider)
}

func (s *Server) updateProviderAvailability(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := s.store.UpdateServiceProviderAvailability(c.Request().Context(), id, body.IsAvailable); err != nil {
		return respondErr(c, err)
	}
	return c.String(http.StatusOK, "availability updated")
}

// Service categories and pricing

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.store.ListServiceCategories(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) getCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := s.store.GetServiceCategory(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (s *Server) listCategoryPricing(c echo.Context) error {
	categoryID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := s.store.ListPricingItemsByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) listPricingItems(c echo.Context) error {
	items, err := s.store.ListPricingItems(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) createPricingItem(c echo.Context) error {
	var item model.PricingItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := s.store.CreatePricingItem(c.Request().Context(), &item); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Service requests

func (s *Server) getRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	request, err := s.store.GetServiceRequest(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

func (s *Server) listUserRequests(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	requests, err := s.store.ListUserServiceRequests(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (s *Server) createRequest(c echo.Context) error {
	var body struct {
		UserID          int64    `json:"userId"`
		CategoryID      int64    `json:"categoryId"`
		ItemDescription string   `json:"itemDescription"`
		Details         string   `json:"details"`
		Photos          []string `json:"photos"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	request, err := s.booking.SubmitRequest(
		c.Request().Context(),
		body.UserID, body.CategoryID,
		body.ItemDescription, body.Details,
		body.Photos,
	)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, request)
}

// requestPatchBody is the JSON shape of a sparse request update.
// Absent fields are left untouched.
type requestPatchBody struct {
	Status          *model.RequestStatus `json:"status"`
	ItemDescription *string              `json:"itemDescription"`
	Details         *string              `json:"details"`
	Photos          *[]string            `json:"photos"`
	BaseFee         *decimal.Decimal     `json:"baseFee"`
	ItemsFee        *decimal.Decimal     `json:"itemsFee"`
	TotalCost       *decimal.Decimal     `json:"totalCost"`
	ProviderID      *int64               `json:"providerId"`
}

func (s *Server) patchRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body requestPatchBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ctx := c.Request().Context()
	if body.Status != nil {
		current, err := s.store.GetServiceRequest(ctx, id)
		if err != nil {
			return respondErr(c, err)
		}
		if !lifecycle.CanTransitionRequest(current.Status, *body.Status) {
			return c.String(http.StatusConflict, "invalid status transition")
		}
	}

	updated, err := s.store.UpdateServiceRequest(ctx, id, storage.ServiceRequestPatch{
		Status:          body.Status,
		ItemDescription: body.ItemDescription,
		Details:         body.Details,
		Photos:          body.Photos,
		BaseFee:         body.BaseFee,
		ItemsFee:        body.ItemsFee,
		TotalCost:       body.TotalCost,
		ProviderID:      body.ProviderID,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Orders

func (s *Server) getOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := s.store.GetOrder(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) listUserOrders(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	orders, err := s.store.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) getUserActiveOrder(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	order, err := s.store.GetUserActiveOrder(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) listProviderOrders(c echo.Context) error {
	providerID, err := pathID(c, "providerId")
	if err != nil {
		return err
	}
	orders, err := s.store.ListProviderOrders(c.Request().Context(), providerID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) createOrder(c echo.Context) error {
	var order model.Order
	if err := c.Bind(&order); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := s.store.CreateOrder(c.Request().Context(), &order); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

type orderPatchBody struct {
	Status        *model.OrderStatus   `json:"status"`
	PaymentStatus *model.PaymentStatus `json:"paymentStatus"`
	Rating        *int                 `json:"rating"`
	Review        *string              `json:"review"`
}

func (s *Server) patchOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body orderPatchBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ctx := c.Request().Context()
	if body.Status != nil || body.PaymentStatus != nil {
		current, err := s.store.GetOrder(ctx, id)
		if err != nil {
			return respondErr(c, err)
		}
		if body.Status != nil && !lifecycle.CanTransitionOrder(current.Status, *body.Status) {
			return c.String(http.StatusConflict, "invalid status transition")
		}
		if body.PaymentStatus != nil && !lifecycle.CanTransitionPayment(current.PaymentStatus, *body.PaymentStatus) {
			return c.String(http.StatusConflict, "invalid payment transition")
		}
	}

	updated, err := s.store.UpdateOrder(ctx, id, storage.OrderPatch{
		Status:        body.Status,
		PaymentStatus: body.PaymentStatus,
		Rating:        body.Rating,
		Review:        body.Review,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Booking workflow

func (s *Server) quoteRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		ItemIDs []int64 `json:"itemIds"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	request, err := s.booking.QuoteRequest(c.Request().Context(), id, body.ItemIDs)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

func (s *Server) assignProvider(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		ProviderID int64 `json:"providerId"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	order, err := s.booking.AssignProvider(c.Request().Context(), id, body.ProviderID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (s *Server) cancelRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	request, err := s.booking.CancelRequest(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

func (s *Server) startOrder(c echo.Context) error {
	return s.orderAction(c, s.booking.StartOrder)
}

func (s *Server) completeOrder(c echo.Context) error {
	return s.orderAction(c, s.booking.CompleteOrder)
}

func (s *Server) cancelOrder(c echo.Context) error {
	return s.orderAction(c, s.booking.CancelOrder)
}

func (s *Server) orderAction(c echo.Context, action func(context.Context, int64) (*model.Order, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := action(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) reviewOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	order, err := s.booking.ReviewOrder(c.Request().Context(), id, body.Rating, body.Review)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Audit

func (s *Server) listEvents(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	events, err := s.store.ListEvents(c.Request().Context(), limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
