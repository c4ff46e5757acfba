package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instanthaul/haul-platform/internal/model"
	"github.com/instanthaul/haul-platform/internal/service"
	"github.com/instanthaul/haul-platform/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := storage.NewMemoryStorage()
	return New(store, service.NewBookingService(store)).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestReadRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]model.ServiceCategory](t, rec)
	require.Len(t, categories, 6)
	assert.Equal(t, "Furniture Removal", categories[0].Name)

	rec = do(t, h, http.MethodGet, "/categories/1/pricing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]model.PricingItem](t, rec)
	require.Len(t, items, 4)
	assert.Equal(t, "Couch/Sofa (3-seater)", items[0].ServiceDescription)

	rec = do(t, h, http.MethodGet, "/providers/available", "")
	require.Equal(t, http.StatusOK, rec.Code)
	providers := decode[[]model.ServiceProvider](t, rec)
	assert.Len(t, providers, 2)
}

func TestErrorMapping(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/users/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// testuser already owns test@example.com.
	rec = do(t, h, http.MethodPost, "/users",
		`{"username":"dupe","email":"test@example.com","password":"x","address":"1 Elm St"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/requests",
		`{"userId":1,"categoryId":1,"itemDescription":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkflowRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/requests",
		`{"userId":1,"categoryId":1,"itemDescription":"Old couch","details":"curbside"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	request := decode[model.ServiceRequest](t, rec)
	assert.Equal(t, model.RequestStatusPending, request.Status)

	rec = do(t, h, http.MethodPost, "/haul/requests/1/quote", `{"itemIds":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	quoted := decode[model.ServiceRequest](t, rec)
	require.True(t, quoted.TotalCost.Valid)
	// 85.00 base + 85.00 couch + 60.00 recliner
	assert.True(t, quoted.TotalCost.Decimal.Equal(decimal.RequireFromString("230.00")))

	rec = do(t, h, http.MethodPost, "/haul/requests/1/assign", `{"providerId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[model.Order](t, rec)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)

	rec = do(t, h, http.MethodGet, "/orders/user/1/active", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Confirmed orders cannot jump straight to completed.
	rec = do(t, h, http.MethodPost, "/haul/orders/1/complete", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = do(t, h, http.MethodPatch, "/orders/1", `{"status":"completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/haul/orders/1/start", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/haul/orders/1/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	done := decode[model.Order](t, rec)
	assert.Equal(t, model.OrderStatusCompleted, done.Status)

	rec = do(t, h, http.MethodPost, "/haul/orders/1/review", `{"rating":5,"review":"great"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	reviewed := decode[model.Order](t, rec)
	require.NotNil(t, reviewed.Rating)
	assert.Equal(t, 5, *reviewed.Rating)

	rec = do(t, h, http.MethodGet, "/orders/user/1/active", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[[]model.Event](t, rec)
	assert.NotEmpty(t, events)
}
