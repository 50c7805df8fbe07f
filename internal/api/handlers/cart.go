package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/api/middleware"
	"github.com/karanbedi/storefront-platform/internal/errors"
	"github.com/karanbedi/storefront-platform/internal/models"
	service "github.com/karanbedi/storefront-platform/internal/services"
	"github.com/karanbedi/storefront-platform/internal/utils"
	"github.com/karanbedi/storefront-platform/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("No shopper identity"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), identity)
		if err != nil {
			logger.Error("Failed to fetch cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("No shopper identity"))
			return
		}

		var req models.AddCartItemRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, errors.ValidationError(err.Error()))
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to add cart item", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item added", slog.String("variantId", req.VariantID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("No shopper identity"))
			return
		}

		itemID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid cart item id"))
			return
		}

		var req models.UpdateCartItemRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, errors.ValidationError(err.Error()))
			return
		}

		cart, err := h.cartService.UpdateItem(r.Context(), identity, itemID, &req)
		if err != nil {
			logger.Error("Failed to update cart item", slog.String("error", err.Error()), slog.String("itemId", itemID.String()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("No shopper identity"))
			return
		}

		itemID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid cart item id"))
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), identity, itemID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("error", err.Error()), slog.String("itemId", itemID.String()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("No shopper identity"))
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), identity)
		if err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// MergeCart handles POST /api/v1/cart/merge after sign-in. The body is
// optional: identity usually carries both sides of the merge already.
func (h *CartHandler) MergeCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("No shopper identity"))
			return
		}

		req := models.MergeCartRequest{}
		if r.ContentLength > 0 {
			if err := utils.DecodeJSONBody(r, &req); err != nil {
				response.Error(w, errors.BadRequestError(err.Error()))
				return
			}
		}

		result, err := h.cartService.MergeGuestCart(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to merge carts", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if result.Merged {
			logger.Info("Guest cart merged")
		}

		response.Success(w, http.StatusOK, result)
	}
}
