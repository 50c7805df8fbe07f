package models

import (
	"time"

	"github.com/google/uuid"
)

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ProductImage struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	URL       string     `json:"url"`
	SortOrder int        `json:"sort_order"`
	IsPrimary bool       `json:"is_primary"`
}

type SortBy string

const (
	SortLatest    SortBy = "latest"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 60
)

// ProductListFilters is the decoded, typed representation of catalog
// browsing constraints. Gender/color/size filter by slug, brand/category
// by id, matching the query parameters the storefront emits.
type ProductListFilters struct {
	Search      string
	BrandIDs    []string
	CategoryIDs []string
	GenderSlugs []string
	ColorSlugs  []string
	SizeSlugs   []string
	PriceMin    *float64
	PriceMax    *float64
	SortBy      SortBy
	Page        int
	Limit       int
}

type ProductListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Price       *float64  `json:"price"`
	ImageSrc    *string   `json:"image_src"`
	ColorsCount int       `json:"colors_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductListResult struct {
	Products   []ProductListItem `json:"products"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type VariantDetail struct {
	ID         uuid.UUID  `json:"id"`
	SKU        string     `json:"sku"`
	Price      float64    `json:"price"`
	SalePrice  *float64   `json:"sale_price,omitempty"`
	ColorID    uuid.UUID  `json:"color_id"`
	ColorName  *string    `json:"color_name"`
	ColorHex   *string    `json:"color_hex,omitempty"`
	SizeID     uuid.UUID  `json:"size_id"`
	SizeName   *string    `json:"size_name"`
	InStock    int        `json:"in_stock"`
	Weight     float64    `json:"weight"`
	Dimensions Dimensions `json:"dimensions"`
}

// EffectivePrice is the sale price when set, otherwise the base price.
func (v *VariantDetail) EffectivePrice() float64 {
	if v.SalePrice != nil {
		return *v.SalePrice
	}

	return v.Price
}

type ProductDetail struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	BrandID      uuid.UUID `json:"brand_id"`
	BrandName    *string   `json:"brand_name"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName *string   `json:"category_name"`
	GenderID     uuid.UUID `json:"gender_id"`
	GenderLabel  *string   `json:"gender_label"`

	// Price is the minimum effective price across variants. CompareAtPrice
	// is the minimum base price, present only when at least one variant
	// carries a sale price.
	Price          *float64 `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price,omitempty"`

	Variants []VariantDetail `json:"variants"`
	Images   []ProductImage  `json:"images"`

	// ImagesByColor groups deduplicated image URLs by the color id of the
	// variant each image is tagged with; untagged images land in "default".
	ImagesByColor map[string][]string `json:"images_by_color"`

	// Sizes is the distinct, non-empty size names across variants.
	Sizes []string `json:"sizes"`
}

// ProductHead is the product row with its lookup names resolved, before any
// price/image computation.
type ProductHead struct {
	ID           uuid.UUID
	Name         string
	Description  string
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	BrandID      uuid.UUID
	BrandName    *string
	CategoryID   uuid.UUID
	CategoryName *string
	GenderID     uuid.UUID
	GenderLabel  *string
}

// ProductAggregate is the raw single-fetch of a product with all variants
// and images; the product service derives the detail view from it.
type ProductAggregate struct {
	Head     ProductHead
	Variants []VariantDetail
	Images   []ProductImage
}

// RecommendationCandidate is a same-category/brand/gender product with its
// display image attached when one exists; candidates without an image are
// skipped rather than shown with a placeholder.
type RecommendationCandidate struct {
	ID       uuid.UUID
	Title    string
	Price    *float64
	ImageSrc *string
}

type RecommendedProduct struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Price    *float64  `json:"price"`
	ImageSrc string    `json:"image_src"`
}
