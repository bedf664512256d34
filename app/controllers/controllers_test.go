package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/middleware"
)

// Input handling is covered here without touching a store: these requests are
// rejected before any service call. Business behavior is tested at the
// service layer.

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, pattern, url, body string, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		ctx := middleware.WithUser(req.Context(), primitive.NewObjectID().Hex(), "user")
		req = req.WithContext(ctx)
	}

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCartAddRequiresAuth(t *testing.T) {
	ctl := NewCartController(services.NewCartService(nil, nil))

	rec, env := doJSON(t, ctl.Add, http.MethodPost, "/api/cart/items", "/api/cart/items",
		`{"productId":"abc","quantity":1}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, env.Status)
}

func TestCartAddValidatesQuantity(t *testing.T) {
	ctl := NewCartController(services.NewCartService(nil, nil))

	rec, env := doJSON(t, ctl.Add, http.MethodPost, "/api/cart/items", "/api/cart/items",
		`{"productId":"68b1c2d3e4f5a6b7c8d9e0f1","quantity":0}`, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "quantity")
}

func TestCartAddRejectsMalformedBody(t *testing.T) {
	ctl := NewCartController(services.NewCartService(nil, nil))

	rec, _ := doJSON(t, ctl.Add, http.MethodPost, "/api/cart/items", "/api/cart/items",
		`{"productId":`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewStoreValidatesRatingRange(t *testing.T) {
	ctl := NewReviewController(services.NewReviewService(nil, nil, nil), services.NewAuthService(nil))

	rec, env := doJSON(t, ctl.Store, http.MethodPost,
		"/api/products/{id}/reviews",
		"/api/products/68b1c2d3e4f5a6b7c8d9e0f1/reviews",
		`{"rating":6}`, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "rating")
}

func TestRegisterValidatesEmailAndPassword(t *testing.T) {
	ctl := NewAuthController(services.NewAuthService(nil))

	rec, env := doJSON(t, ctl.Register, http.MethodPost, "/api/auth/register", "/api/auth/register",
		`{"name":"A","email":"not-an-email","password":"123"}`, false)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestWishlistAddRequiresProductID(t *testing.T) {
	ctl := NewWishlistController(services.NewWishlistService(nil, nil))

	rec, env := doJSON(t, ctl.Add, http.MethodPost, "/api/wishlist/items", "/api/wishlist/items",
		`{}`, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "productId")
}

func TestWorkoutLogRequiresExercises(t *testing.T) {
	ctl := NewFitnessController(services.NewFitnessService(nil, nil))

	rec, env := doJSON(t, ctl.LogWorkout, http.MethodPost, "/api/fitness/workouts", "/api/fitness/workouts",
		`{"date":"2026-08-30","workoutType":"Push","durationMin":45,"exercises":[]}`, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "exercises")
}

func TestCheckoutRequiresAddressEmail(t *testing.T) {
	ctl := NewOrderController(services.NewOrderService(nil, nil, nil, nil))

	body := `{"paymentMethod":"UPI","shippingAddress":{"fullName":"Asha Verma",` +
		`"address":"12 MG Road","city":"Pune","state":"MH","pincode":"411001",` +
		`"country":"India","phone":"9999999999"}}`
	rec, env := doJSON(t, ctl.Checkout, http.MethodPost, "/api/orders", "/api/orders", body, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "email")
}

func TestOrderShowRejectsMalformedID(t *testing.T) {
	ctl := NewOrderController(services.NewOrderService(nil, nil, nil, nil))

	rec, _ := doJSON(t, ctl.Show, http.MethodGet, "/api/orders/{id}", "/api/orders/not-hex",
		"", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
