package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/api/handlers"
	"github.com/karanbedi/storefront-platform/internal/api/middleware"
	appErrors "github.com/karanbedi/storefront-platform/internal/errors"
	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newCartRequest builds a request carrying the resolved shopper identity,
// matching what the identity middleware injects in production.
func newCartRequest(method, target string, identity models.Identity, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	return req.WithContext(middleware.WithIdentity(req.Context(), identity))
}

func cartView(lines ...models.CartLine) *models.CartView {
	view := &models.CartView{ID: uuid.New(), Items: lines}
	for _, line := range lines {
		view.Subtotal += line.UnitPrice * float64(line.Quantity)
	}

	return view
}

func TestGetCartHandler(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success - Guest Cart", func(t *testing.T) {
		// Arrange
		identity := models.GuestIdentity("guest-token")
		view := cartView(models.CartLine{ID: uuid.New(), Quantity: 2, UnitPrice: 49.99})

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodGet, "/api/v1/cart", identity, nil)

		mockCartService.On("GetCart", mock.Anything, identity).Return(view, nil).Once()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)
		assert.True(t, envelope.Success)

		var got models.CartView
		require.NoError(t, json.Unmarshal(envelope.Data, &got))
		assert.Equal(t, view.ID, got.ID)
		assert.InDelta(t, 99.98, got.Subtotal, 0.001)

		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - No Identity In Context", func(t *testing.T) {
		// Arrange
		mockCartService := new(mocks.CartService)
		cartHandler := handlers.NewCartHandler(mockCartService)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, envelope.Error.Code)

		mockCartService.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	})
}

func TestAddItemHandler(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		identity := models.UserIdentity(uuid.New())
		variantID := uuid.New()
		view := cartView(models.CartLine{ID: uuid.New(), VariantID: variantID, Quantity: 1, UnitPrice: 79.99})

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPost, "/api/v1/cart/items", identity, models.AddCartItemRequest{
			VariantID: variantID,
			Quantity:  1,
		})

		mockCartService.On("AddItem", mock.Anything, identity, mock.MatchedBy(func(r *models.AddCartItemRequest) bool {
			return r.VariantID == variantID && r.Quantity == 1
		})).Return(view, nil).Once()

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Quantity", func(t *testing.T) {
		// Arrange
		mockCartService := new(mocks.CartService)
		cartHandler := handlers.NewCartHandler(mockCartService)

		identity := models.UserIdentity(uuid.New())

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPost, "/api/v1/cart/items", identity, map[string]any{
			"variant_id": uuid.New().String(),
			"quantity":   0,
		})

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Malformed Body", func(t *testing.T) {
		// Arrange
		identity := models.UserIdentity(uuid.New())

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("{not json"))
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateItemHandler(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	mux := http.NewServeMux()
	mux.Handle("PATCH /api/v1/cart/items/{id}", cartHandler.UpdateItem())

	t.Run("Success - Quantity Change", func(t *testing.T) {
		// Arrange
		identity := models.GuestIdentity("guest-token")
		itemID := uuid.New()
		view := cartView(models.CartLine{ID: itemID, Quantity: 3, UnitPrice: 25})

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPatch, "/api/v1/cart/items/"+itemID.String(), identity, map[string]any{
			"quantity": 3,
		})

		mockCartService.On("UpdateItem", mock.Anything, identity, itemID, mock.MatchedBy(func(r *models.UpdateCartItemRequest) bool {
			return r.Quantity != nil && *r.Quantity == 3 && r.VariantID == nil
		})).Return(view, nil).Once()

		// Act
		mux.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Item", func(t *testing.T) {
		// Arrange
		identity := models.GuestIdentity("guest-token")
		itemID := uuid.New()

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPatch, "/api/v1/cart/items/"+itemID.String(), identity, map[string]any{
			"quantity": 2,
		})

		mockCartService.On("UpdateItem", mock.Anything, identity, itemID, mock.Anything).
			Return(nil, appErrors.NotFoundError("Cart item not found")).Once()

		// Act
		mux.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - Malformed Item Id", func(t *testing.T) {
		// Arrange
		identity := models.GuestIdentity("guest-token")

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPatch, "/api/v1/cart/items/not-a-uuid", identity, map[string]any{
			"quantity": 2,
		})

		// Act
		mux.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRemoveItemHandler(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	mux := http.NewServeMux()
	mux.Handle("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())

	t.Run("Success", func(t *testing.T) {
		// Arrange
		identity := models.UserIdentity(uuid.New())
		itemID := uuid.New()

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodDelete, "/api/v1/cart/items/"+itemID.String(), identity, nil)

		mockCartService.On("RemoveItem", mock.Anything, identity, itemID).Return(cartView(), nil).Once()

		// Act
		mux.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCartService.AssertExpectations(t)
	})
}

func TestClearCartHandler(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		identity := models.UserIdentity(uuid.New())

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodDelete, "/api/v1/cart", identity, nil)

		mockCartService.On("ClearCart", mock.Anything, identity).Return(cartView(), nil).Once()

		// Act
		cartHandler.ClearCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)

		var got models.CartView
		require.NoError(t, json.Unmarshal(envelope.Data, &got))
		assert.Empty(t, got.Items)

		mockCartService.AssertExpectations(t)
	})
}

func TestMergeCartHandler(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success - Merged", func(t *testing.T) {
		// Arrange
		identity := models.UserIdentity(uuid.New())
		identity.GuestToken = "guest-token"

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPost, "/api/v1/cart/merge", identity, nil)

		mockCartService.On("MergeGuestCart", mock.Anything, identity, mock.Anything).
			Return(&models.MergeResult{Merged: true}, nil).Once()

		// Act
		cartHandler.MergeCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)

		var got models.MergeResult
		require.NoError(t, json.Unmarshal(envelope.Data, &got))
		assert.True(t, got.Merged)

		mockCartService.AssertExpectations(t)
	})

	t.Run("Success - Explicit Guest Token In Body", func(t *testing.T) {
		// Arrange
		identity := models.UserIdentity(uuid.New())
		token := "stale-device-token"

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPost, "/api/v1/cart/merge", identity, models.MergeCartRequest{
			GuestToken: &token,
		})

		mockCartService.On("MergeGuestCart", mock.Anything, identity, mock.MatchedBy(func(r *models.MergeCartRequest) bool {
			return r.GuestToken != nil && *r.GuestToken == token
		})).Return(&models.MergeResult{Merged: true}, nil).Once()

		// Act
		cartHandler.MergeCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Noop - Nothing To Merge", func(t *testing.T) {
		// Arrange
		identity := models.GuestIdentity("guest-token")

		rr := httptest.NewRecorder()
		req := newCartRequest(http.MethodPost, "/api/v1/cart/merge", identity, nil)

		mockCartService.On("MergeGuestCart", mock.Anything, identity, mock.Anything).
			Return(&models.MergeResult{Merged: false}, nil).Once()

		// Act
		cartHandler.MergeCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)

		var got models.MergeResult
		require.NoError(t, json.Unmarshal(envelope.Data, &got))
		assert.False(t, got.Merged)
	})
}
