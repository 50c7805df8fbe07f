package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/api/middleware"
	"github.com/karanbedi/storefront-platform/internal/errors"
	"github.com/karanbedi/storefront-platform/internal/queryparams"
	service "github.com/karanbedi/storefront-platform/internal/services"
	"github.com/karanbedi/storefront-platform/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /api/v1/products with the full filter query
// grammar: multi-value filters, price bounds, sort and pagination.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filters := queryparams.DecodeFilters(r.URL.Query())

		result, err := h.productService.ListProducts(r.Context(), filters)
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product id"))
			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Error("Failed to fetch product", slog.String("error", err.Error()), slog.String("productId", id.String()))
			response.Error(w, err)
			return
		}

		if product == nil {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) GetReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product id"))
			return
		}

		reviews, err := h.productService.GetReviews(r.Context(), id)
		if err != nil {
			logger.Error("Failed to fetch reviews", slog.String("error", err.Error()), slog.String("productId", id.String()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

func (h *ProductHandler) GetRecommendations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product id"))
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		recommendations, err := h.productService.GetRecommendations(r.Context(), id, limit)
		if err != nil {
			logger.Error("Failed to fetch recommendations", slog.String("error", err.Error()), slog.String("productId", id.String()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, recommendations)
	}
}

func (h *ProductHandler) GetFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		catalog, err := h.productService.GetFilterCatalog(r.Context())
		if err != nil {
			logger.Error("Failed to fetch filter catalog", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, catalog)
	}
}
