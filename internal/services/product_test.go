package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	cachemocks "github.com/karanbedi/storefront-platform/internal/cache/mocks"
	"github.com/karanbedi/storefront-platform/internal/config"
	appErrors "github.com/karanbedi/storefront-platform/internal/errors"
	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/repositories/mocks"
	service "github.com/karanbedi/storefront-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixture struct {
	repo       *mocks.ProductRepository
	reviewRepo *mocks.ReviewRepository
	cache      *cachemocks.Cache
	service    service.ProductService
}

func newProductServiceFixture() *productServiceFixture {
	repo := new(mocks.ProductRepository)
	reviewRepo := new(mocks.ReviewRepository)
	cacheMock := new(cachemocks.Cache)

	cacheCfg := &config.CacheConfig{DefaultTTL: 5 * time.Minute, ProductViewTTL: 10 * time.Minute}

	return &productServiceFixture{
		repo:       repo,
		reviewRepo: reviewRepo,
		cache:      cacheMock,
		service:    service.NewProductService(repo, reviewRepo, cacheMock, cacheCfg),
	}
}

func (f *productServiceFixture) expectCacheMiss() {
	f.cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Computes Total Pages", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()

		items := []models.ProductListItem{{ID: uuid.New(), Title: "Trail Jacket"}}

		f.repo.On("ListProducts", mock.Anything, mock.MatchedBy(func(fl models.ProductListFilters) bool {
			return fl.Page == 2 && fl.Limit == 24
		})).Return(items, 49, nil).Once()

		// Act
		result, err := f.service.ListProducts(ctx, models.ProductListFilters{Page: 2, Limit: 24})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 49, result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
		assert.Equal(t, 2, result.Page)
		assert.Len(t, result.Products, 1)
		f.repo.AssertExpectations(t)
	})

	t.Run("Success - Clamps Page And Limit", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()

		f.repo.On("ListProducts", mock.Anything, mock.MatchedBy(func(fl models.ProductListFilters) bool {
			return fl.Page == 1 && fl.Limit == models.MaxPageSize && fl.Search == "boots"
		})).Return([]models.ProductListItem{}, 0, nil).Once()

		// Act
		result, err := f.service.ListProducts(ctx, models.ProductListFilters{Page: -3, Limit: 500, Search: "  boots  "})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, models.MaxPageSize, result.PageSize)
		f.repo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()

		f.repo.On("ListProducts", mock.Anything, mock.Anything).
			Return(nil, 0, appErrors.DatabaseError("connection refused")).Once()

		// Act
		result, err := f.service.ListProducts(ctx, models.ProductListFilters{})

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Derives Prices And Image Groups", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()
		blackColor := uuid.New()
		blueColor := uuid.New()
		blackVariant := uuid.New()
		blueVariant := uuid.New()

		agg := &models.ProductAggregate{
			Head: models.ProductHead{ID: productID, Name: "Trail Jacket", IsPublished: true},
			Variants: []models.VariantDetail{
				{ID: blackVariant, Price: 99.99, SalePrice: floatPtr(79.99), ColorID: blackColor, SizeName: strPtr("M")},
				{ID: blueVariant, Price: 89.99, ColorID: blueColor, SizeName: strPtr("L")},
				{ID: uuid.New(), Price: 99.99, ColorID: blackColor, SizeName: strPtr("M")},
			},
			Images: []models.ProductImage{
				{ProductID: productID, VariantID: &blackVariant, URL: "black-1.jpg"},
				{ProductID: productID, VariantID: &blackVariant, URL: "black-1.jpg"},
				{ProductID: productID, VariantID: &blueVariant, URL: "blue-1.jpg"},
				{ProductID: productID, URL: "hero.jpg"},
			},
		}

		f.expectCacheMiss()
		f.repo.On("GetProductAggregate", mock.Anything, productID).Return(agg, nil).Once()

		// Act
		detail, err := f.service.GetProduct(ctx, productID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, detail)

		// cheapest effective price wins; compare-at is the lowest base price
		require.NotNil(t, detail.Price)
		assert.Equal(t, 79.99, *detail.Price)
		require.NotNil(t, detail.CompareAtPrice)
		assert.Equal(t, 89.99, *detail.CompareAtPrice)

		assert.Equal(t, []string{"black-1.jpg"}, detail.ImagesByColor[blackColor.String()])
		assert.Equal(t, []string{"blue-1.jpg"}, detail.ImagesByColor[blueColor.String()])
		assert.Equal(t, []string{"hero.jpg"}, detail.ImagesByColor["default"])

		assert.Equal(t, []string{"M", "L"}, detail.Sizes)
		f.repo.AssertExpectations(t)
	})

	t.Run("Success - No Sale Price Means No Compare At", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()

		agg := &models.ProductAggregate{
			Head: models.ProductHead{ID: productID, Name: "Basic Tee", IsPublished: true},
			Variants: []models.VariantDetail{
				{ID: uuid.New(), Price: 19.99, ColorID: uuid.New()},
			},
		}

		f.expectCacheMiss()
		f.repo.On("GetProductAggregate", mock.Anything, productID).Return(agg, nil).Once()

		// Act
		detail, err := f.service.GetProduct(ctx, productID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, detail.Price)
		assert.Equal(t, 19.99, *detail.Price)
		assert.Nil(t, detail.CompareAtPrice)
	})

	t.Run("Success - Missing Product Returns Nil", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()

		f.cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		f.repo.On("GetProductAggregate", mock.Anything, productID).Return(nil, nil).Once()

		// Act
		detail, err := f.service.GetProduct(ctx, productID)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, detail)
	})
}

func TestGetRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Skips Candidates Without Images", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()

		candidates := []models.RecommendationCandidate{
			{ID: uuid.New(), Title: "With Image", Price: floatPtr(50), ImageSrc: strPtr("a.jpg")},
			{ID: uuid.New(), Title: "No Image", Price: floatPtr(40)},
			{ID: uuid.New(), Title: "Also Imaged", Price: floatPtr(30), ImageSrc: strPtr("b.jpg")},
		}

		f.repo.On("ListRecommendationCandidates", mock.Anything, productID, 12).Return(candidates, nil).Once()

		// Act
		recs, err := f.service.GetRecommendations(ctx, productID, 6)

		// Assert
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "With Image", recs[0].Title)
		assert.Equal(t, "a.jpg", recs[0].ImageSrc)
		assert.Equal(t, "Also Imaged", recs[1].Title)
		f.repo.AssertExpectations(t)
	})

	t.Run("Success - Truncates To Limit", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()

		var candidates []models.RecommendationCandidate
		for i := 0; i < 4; i++ {
			candidates = append(candidates, models.RecommendationCandidate{
				ID: uuid.New(), Title: "Candidate", ImageSrc: strPtr("img.jpg"),
			})
		}

		f.repo.On("ListRecommendationCandidates", mock.Anything, productID, 4).Return(candidates, nil).Once()

		// Act
		recs, err := f.service.GetRecommendations(ctx, productID, 2)

		// Assert
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("Success - Defaults Limit", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()

		f.repo.On("ListRecommendationCandidates", mock.Anything, productID, 12).
			Return([]models.RecommendationCandidate{}, nil).Once()

		// Act
		recs, err := f.service.GetRecommendations(ctx, productID, 0)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, recs)
		f.repo.AssertExpectations(t)
	})
}

func TestGetReviews(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Sanitizes User Generated Text", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()

		reviews := []models.ReviewEntry{
			{ID: uuid.New(), Author: "Priya", Rating: 5, Title: "Great <script>alert(1)</script>", Content: "Fits <b>well</b>."},
		}

		f.reviewRepo.On("ListByProduct", mock.Anything, productID, 10).Return(reviews, nil).Once()

		// Act
		got, err := f.service.GetReviews(ctx, productID)

		// Assert
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.NotContains(t, got[0].Title, "<script>")
		assert.NotContains(t, got[0].Content, "<b>")
		assert.Contains(t, got[0].Content, "well")
		f.reviewRepo.AssertExpectations(t)
	})

	t.Run("Success - Empty List", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()
		productID := uuid.New()

		f.reviewRepo.On("ListByProduct", mock.Anything, productID, 10).Return([]models.ReviewEntry{}, nil).Once()

		// Act
		got, err := f.service.GetReviews(ctx, productID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestGetFilterCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Cache Miss Falls Through To Repository", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()

		catalog := &models.FilterCatalog{
			Genders: []models.Gender{{ID: uuid.New(), Label: "Men", Slug: "men"}},
		}

		f.expectCacheMiss()
		f.repo.On("GetFilterCatalog", mock.Anything).Return(catalog, nil).Once()

		// Act
		got, err := f.service.GetFilterCatalog(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, got.Genders, 1)
		assert.Equal(t, "men", got.Genders[0].Slug)
		f.repo.AssertExpectations(t)
	})

	t.Run("Success - Cache Hit", func(t *testing.T) {
		// Arrange
		f := newProductServiceFixture()

		f.cache.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				catalog := args.Get(2).(*models.FilterCatalog)
				catalog.Colors = []models.Color{{ID: uuid.New(), Name: "Black", Slug: "black"}}
			}).Return(true, nil).Once()

		// Act
		got, err := f.service.GetFilterCatalog(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, got.Colors, 1)
		f.repo.AssertNotCalled(t, "GetFilterCatalog", mock.Anything)
	})
}
