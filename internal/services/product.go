package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/cache"
	"github.com/karanbedi/storefront-platform/internal/config"
	"github.com/karanbedi/storefront-platform/internal/errors"
	"github.com/karanbedi/storefront-platform/internal/models"
	repository "github.com/karanbedi/storefront-platform/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

const (
	reviewsLimit = 10

	defaultRecommendations = 6
	maxRecommendations     = 12
)

type ProductService interface {
	ListProducts(ctx context.Context, filters models.ProductListFilters) (*models.ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error)
	GetRecommendations(ctx context.Context, productID uuid.UUID, limit int) ([]models.RecommendedProduct, error)
	GetReviews(ctx context.Context, productID uuid.UUID) ([]models.ReviewEntry, error)
	GetFilterCatalog(ctx context.Context) (*models.FilterCatalog, error)
}

type productService struct {
	repo       repository.ProductRepository
	reviewRepo repository.ReviewRepository
	cache      cache.Cache
	cacheCfg   *config.CacheConfig
	sanitizer  *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, reviewRepo repository.ReviewRepository, cache cache.Cache, cacheCfg *config.CacheConfig) ProductService {
	return &productService{
		repo:       repo,
		reviewRepo: reviewRepo,
		cache:      cache,
		cacheCfg:   cacheCfg,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (s *productService) ListProducts(ctx context.Context, filters models.ProductListFilters) (*models.ProductListResult, error) {

	filters.Search = strings.TrimSpace(filters.Search)

	if filters.Page < 1 {
		filters.Page = 1
	}

	if filters.Limit < 1 {
		filters.Limit = models.DefaultPageSize
	} else if filters.Limit > models.MaxPageSize {
		filters.Limit = models.MaxPageSize
	}

	items, total, err := s.repo.ListProducts(ctx, filters)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	totalPages := (total + filters.Limit - 1) / filters.Limit

	return &models.ProductListResult{
		Products:   items,
		TotalCount: total,
		Page:       filters.Page,
		PageSize:   filters.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetProduct returns the derived detail view for a published product, or
// (nil, nil) when the product does not exist or is unpublished.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.ProductDetail

	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		slog.Warn("Product cache read failed", slog.String("error", err.Error()))
	}

	if found {
		return &cached, nil
	}

	agg, err := s.repo.GetProductAggregate(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if agg == nil {
		return nil, nil
	}

	detail := buildDetail(agg)

	if err := s.cache.Set(ctx, cacheKey, detail, s.cacheCfg.ProductViewTTL); err != nil {
		slog.Warn("Product cache write failed", slog.String("error", err.Error()))
	}

	return detail, nil
}

// buildDetail derives the display fields from the raw aggregate. Price is the
// minimum effective price across variants; CompareAtPrice is the minimum base
// price, surfaced only when a sale price exists somewhere to compare against.
func buildDetail(agg *models.ProductAggregate) *models.ProductDetail {

	head := agg.Head

	detail := &models.ProductDetail{
		ID:            head.ID,
		Name:          head.Name,
		Description:   head.Description,
		IsPublished:   head.IsPublished,
		CreatedAt:     head.CreatedAt,
		UpdatedAt:     head.UpdatedAt,
		BrandID:       head.BrandID,
		BrandName:     head.BrandName,
		CategoryID:    head.CategoryID,
		CategoryName:  head.CategoryName,
		GenderID:      head.GenderID,
		GenderLabel:   head.GenderLabel,
		Variants:      agg.Variants,
		Images:        agg.Images,
		ImagesByColor: map[string][]string{},
	}

	var hasSale bool

	for i := range agg.Variants {
		v := &agg.Variants[i]

		effective := v.EffectivePrice()
		if detail.Price == nil || effective < *detail.Price {
			p := effective
			detail.Price = &p
		}

		if detail.CompareAtPrice == nil || v.Price < *detail.CompareAtPrice {
			base := v.Price
			detail.CompareAtPrice = &base
		}

		if v.SalePrice != nil {
			hasSale = true
		}
	}

	if !hasSale {
		detail.CompareAtPrice = nil
	}

	colorByVariant := make(map[uuid.UUID]string, len(agg.Variants))
	for _, v := range agg.Variants {
		colorByVariant[v.ID] = v.ColorID.String()
	}

	seen := map[string]map[string]bool{}

	for _, img := range agg.Images {

		group := "default"
		if img.VariantID != nil {
			if color, ok := colorByVariant[*img.VariantID]; ok {
				group = color
			}
		}

		if seen[group] == nil {
			seen[group] = map[string]bool{}
		}
		if seen[group][img.URL] {
			continue
		}
		seen[group][img.URL] = true

		detail.ImagesByColor[group] = append(detail.ImagesByColor[group], img.URL)
	}

	sizeSeen := map[string]bool{}
	for _, v := range agg.Variants {
		if v.SizeName == nil || *v.SizeName == "" || sizeSeen[*v.SizeName] {
			continue
		}
		sizeSeen[*v.SizeName] = true
		detail.Sizes = append(detail.Sizes, *v.SizeName)
	}

	return detail
}

// GetRecommendations over-fetches candidates and drops the ones without a
// display image, so the storefront never renders an empty tile.
func (s *productService) GetRecommendations(ctx context.Context, productID uuid.UUID, limit int) ([]models.RecommendedProduct, error) {

	if limit < 1 {
		limit = defaultRecommendations
	} else if limit > maxRecommendations {
		limit = maxRecommendations
	}

	candidates, err := s.repo.ListRecommendationCandidates(ctx, productID, limit*2)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch recommendations").WithError(err)
	}

	recommendations := make([]models.RecommendedProduct, 0, limit)

	for _, c := range candidates {
		if c.ImageSrc == nil {
			continue
		}

		recommendations = append(recommendations, models.RecommendedProduct{
			ID:       c.ID,
			Title:    c.Title,
			Price:    c.Price,
			ImageSrc: *c.ImageSrc,
		})

		if len(recommendations) == limit {
			break
		}
	}

	return recommendations, nil
}

// GetReviews returns the newest reviews with all user-generated text passed
// through the HTML sanitizer.
func (s *productService) GetReviews(ctx context.Context, productID uuid.UUID) ([]models.ReviewEntry, error) {

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID, reviewsLimit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	for i := range reviews {
		reviews[i].Author = s.sanitizer.Sanitize(reviews[i].Author)
		reviews[i].Title = s.sanitizer.Sanitize(reviews[i].Title)
		reviews[i].Content = s.sanitizer.Sanitize(reviews[i].Content)
	}

	return reviews, nil
}

func (s *productService) GetFilterCatalog(ctx context.Context) (*models.FilterCatalog, error) {

	var cached models.FilterCatalog

	found, err := s.cache.Get(ctx, cache.FiltersKey, &cached)
	if err != nil {
		slog.Warn("Filter catalog cache read failed", slog.String("error", err.Error()))
	}

	if found {
		return &cached, nil
	}

	catalog, err := s.repo.GetFilterCatalog(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch filter catalog").WithError(err)
	}

	if err := s.cache.Set(ctx, cache.FiltersKey, catalog, 0); err != nil {
		slog.Warn("Filter catalog cache write failed", slog.String("error", err.Error()))
	}

	return catalog, nil
}
