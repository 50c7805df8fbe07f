package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/utils"
	"github.com/lib/pq"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, filters models.ProductListFilters) ([]models.ProductListItem, int, error)
	GetProductAggregate(ctx context.Context, id uuid.UUID) (*models.ProductAggregate, error)
	ListRecommendationCandidates(ctx context.Context, productID uuid.UUID, fetchLimit int) ([]models.RecommendationCandidate, error)
	GetFilterCatalog(ctx context.Context) (*models.FilterCatalog, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

// effective price of a variant: sale price when set, else base price.
const priceExpr = `COALESCE(pv.sale_price, pv.price)`

const listJoins = `
		FROM products p
		LEFT JOIN product_variants pv ON pv.product_id = p.id
		LEFT JOIN genders g ON g.id = p.gender_id
		LEFT JOIN colors c ON c.id = pv.color_id
		LEFT JOIN sizes s ON s.id = pv.size_id`

// buildListPredicates renders the WHERE clause shared by the page query and
// the distinct count query. Predicates apply per variant row before grouping,
// so a product qualifies when any of its variants matches.
func buildListPredicates(filters models.ProductListFilters) (string, []any) {
	clauses := []string{"p.is_published = TRUE"}

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Search != "" {
		pattern := arg("%" + filters.Search + "%")
		clauses = append(clauses, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", pattern, pattern))
	}

	if len(filters.BrandIDs) > 0 {
		clauses = append(clauses, fmt.Sprintf("p.brand_id = ANY(%s::uuid[])", arg(pq.Array(filters.BrandIDs))))
	}

	if len(filters.CategoryIDs) > 0 {
		clauses = append(clauses, fmt.Sprintf("p.category_id = ANY(%s::uuid[])", arg(pq.Array(filters.CategoryIDs))))
	}

	if len(filters.GenderSlugs) > 0 {
		clauses = append(clauses, fmt.Sprintf("g.slug = ANY(%s)", arg(pq.Array(filters.GenderSlugs))))
	}

	if len(filters.ColorSlugs) > 0 {
		clauses = append(clauses, fmt.Sprintf("c.slug = ANY(%s)", arg(pq.Array(filters.ColorSlugs))))
	}

	if len(filters.SizeSlugs) > 0 {
		clauses = append(clauses, fmt.Sprintf("s.slug = ANY(%s)", arg(pq.Array(filters.SizeSlugs))))
	}

	if filters.PriceMin != nil {
		clauses = append(clauses, fmt.Sprintf("%s >= %s", priceExpr, arg(*filters.PriceMin)))
	}

	if filters.PriceMax != nil {
		clauses = append(clauses, fmt.Sprintf("%s <= %s", priceExpr, arg(*filters.PriceMax)))
	}

	return strings.Join(clauses, " AND "), args
}

// orderClause is deterministic for every sort mode: created_at plus id as a
// stable tie-break keeps pagination stable across calls.
func orderClause(sortBy models.SortBy) string {
	switch sortBy {
	case models.SortPriceAsc:
		return fmt.Sprintf("ORDER BY MIN(%s) ASC, p.created_at DESC, p.id ASC", priceExpr)
	case models.SortPriceDesc:
		return fmt.Sprintf("ORDER BY MIN(%s) DESC, p.created_at DESC, p.id ASC", priceExpr)
	default:
		return "ORDER BY p.created_at DESC, p.id ASC"
	}
}

func (r *productRepository) ListProducts(ctx context.Context, filters models.ProductListFilters) ([]models.ProductListItem, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := buildListPredicates(filters)

	var total int

	countQuery := `SELECT COUNT(DISTINCT p.id)` + listJoins + ` WHERE ` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	offset := (filters.Page - 1) * filters.Limit

	pageArgs := append(args, filters.Limit, offset)
	pageQuery := fmt.Sprintf(`
		SELECT p.id, p.name, p.created_at, g.label,
			MIN(%s) AS min_price,
			COUNT(DISTINCT pv.color_id) AS colors_count`+listJoins+`
		WHERE %s
		GROUP BY p.id, p.name, p.created_at, g.label
		%s
		LIMIT $%d OFFSET $%d`,
		priceExpr, where, orderClause(filters.SortBy), len(args)+1, len(args)+2)

	rows, err := r.DB.QueryContext(dbCtx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}

	defer rows.Close()

	var items []models.ProductListItem
	var ids []string

	for rows.Next() {
		var item models.ProductListItem
		var genderLabel sql.NullString
		var minPrice sql.NullFloat64

		if err := rows.Scan(&item.ID, &item.Title, &item.CreatedAt, &genderLabel, &minPrice, &item.ColorsCount); err != nil {
			return nil, 0, err
		}

		if genderLabel.Valid {
			item.Subtitle = genderLabel.String
		}
		if minPrice.Valid {
			price := minPrice.Float64
			item.Price = &price
		}

		items = append(items, item)
		ids = append(ids, item.ID.String())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		images, err := r.primaryImages(dbCtx, ids)
		if err != nil {
			return nil, 0, err
		}

		for i := range items {
			if url, ok := images[items[i].ID]; ok {
				u := url
				items[i].ImageSrc = &u
			}
		}
	}

	return items, total, nil
}

// primaryImages picks one display image per product: primary-flagged first,
// then lowest sort order.
func (r *productRepository) primaryImages(ctx context.Context, productIDs []string) (map[uuid.UUID]string, error) {
	query := `
		SELECT DISTINCT ON (product_id) product_id, url
		FROM product_images
		WHERE product_id = ANY($1::uuid[])
		ORDER BY product_id, is_primary DESC, sort_order ASC`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("querying product images: %w", err)
	}

	defer rows.Close()

	images := make(map[uuid.UUID]string)

	for rows.Next() {
		var id uuid.UUID
		var url string

		if err := rows.Scan(&id, &url); err != nil {
			return nil, err
		}

		images[id] = url
	}

	return images, rows.Err()
}

// GetProductAggregate fetches a published product with all of its variants
// and images. Returns (nil, nil) when the product is missing or unpublished.
func (r *productRepository) GetProductAggregate(ctx context.Context, id uuid.UUID) (*models.ProductAggregate, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	headQuery := `
		SELECT p.id, p.name, p.description, p.is_published, p.created_at, p.updated_at,
			p.brand_id, b.name, p.category_id, cat.name, p.gender_id, g.label
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		LEFT JOIN categories cat ON cat.id = p.category_id
		LEFT JOIN genders g ON g.id = p.gender_id
		WHERE p.id = $1 AND p.is_published = TRUE`

	var head models.ProductHead
	var brandName, categoryName, genderLabel sql.NullString

	err := r.DB.QueryRowContext(dbCtx, headQuery, id).Scan(
		&head.ID, &head.Name, &head.Description, &head.IsPublished, &head.CreatedAt, &head.UpdatedAt,
		&head.BrandID, &brandName, &head.CategoryID, &categoryName, &head.GenderID, &genderLabel,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying product: %w", err)
	}

	head.BrandName = nullString(brandName)
	head.CategoryName = nullString(categoryName)
	head.GenderLabel = nullString(genderLabel)

	variants, err := r.listVariants(dbCtx, id)
	if err != nil {
		return nil, err
	}

	images, err := r.listImages(dbCtx, id)
	if err != nil {
		return nil, err
	}

	return &models.ProductAggregate{
		Head:     head,
		Variants: variants,
		Images:   images,
	}, nil
}

func (r *productRepository) listVariants(ctx context.Context, productID uuid.UUID) ([]models.VariantDetail, error) {
	query := `
		SELECT pv.id, pv.sku, pv.price, pv.sale_price,
			pv.color_id, c.name, c.hex_code, pv.size_id, s.name,
			pv.in_stock, pv.weight, pv.dimensions
		FROM product_variants pv
		LEFT JOIN colors c ON c.id = pv.color_id
		LEFT JOIN sizes s ON s.id = pv.size_id
		WHERE pv.product_id = $1
		ORDER BY pv.created_at ASC, pv.id ASC`

	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}

	defer rows.Close()

	var variants []models.VariantDetail

	for rows.Next() {
		var v models.VariantDetail
		var salePrice sql.NullFloat64
		var colorName, colorHex, sizeName sql.NullString
		var dimensions []byte

		if err := rows.Scan(&v.ID, &v.SKU, &v.Price, &salePrice,
			&v.ColorID, &colorName, &colorHex, &v.SizeID, &sizeName,
			&v.InStock, &v.Weight, &dimensions); err != nil {
			return nil, err
		}

		if salePrice.Valid {
			sp := salePrice.Float64
			v.SalePrice = &sp
		}
		v.ColorName = nullString(colorName)
		v.ColorHex = nullString(colorHex)
		v.SizeName = nullString(sizeName)
		v.Dimensions = decodeDimensions(dimensions)

		variants = append(variants, v)
	}

	return variants, rows.Err()
}

func (r *productRepository) listImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	query := `
		SELECT id, product_id, variant_id, url, sort_order, is_primary
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, sort_order ASC`

	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying images: %w", err)
	}

	defer rows.Close()

	var images []models.ProductImage

	for rows.Next() {
		var img models.ProductImage
		var variantID uuid.NullUUID

		if err := rows.Scan(&img.ID, &img.ProductID, &variantID, &img.URL, &img.SortOrder, &img.IsPrimary); err != nil {
			return nil, err
		}

		if variantID.Valid {
			id := variantID.UUID
			img.VariantID = &id
		}

		images = append(images, img)
	}

	return images, rows.Err()
}

// ListRecommendationCandidates returns published products that share the
// source product's category, brand, and gender, newest first, with their
// display image attached when one exists. Callers over-fetch and skip
// image-less candidates.
func (r *productRepository) ListRecommendationCandidates(ctx context.Context, productID uuid.UUID, fetchLimit int) ([]models.RecommendationCandidate, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var categoryID, brandID, genderID uuid.UUID

	seedQuery := `SELECT category_id, brand_id, gender_id FROM products WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, seedQuery, productID).Scan(&categoryID, &brandID, &genderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying source product: %w", err)
	}

	candidateQuery := fmt.Sprintf(`
		SELECT p.id, p.name, MIN(%s) AS min_price
		FROM products p
		LEFT JOIN product_variants pv ON pv.product_id = p.id
		WHERE p.is_published = TRUE
			AND p.category_id = $1 AND p.brand_id = $2 AND p.gender_id = $3
			AND p.id <> $4
		GROUP BY p.id, p.name, p.created_at
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $5`, priceExpr)

	rows, err := r.DB.QueryContext(dbCtx, candidateQuery, categoryID, brandID, genderID, productID, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("querying recommendation candidates: %w", err)
	}

	defer rows.Close()

	var candidates []models.RecommendationCandidate
	var ids []string

	for rows.Next() {
		var c models.RecommendationCandidate
		var minPrice sql.NullFloat64

		if err := rows.Scan(&c.ID, &c.Title, &minPrice); err != nil {
			return nil, err
		}

		if minPrice.Valid {
			price := minPrice.Float64
			c.Price = &price
		}

		candidates = append(candidates, c)
		ids = append(ids, c.ID.String())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		images, err := r.primaryImages(dbCtx, ids)
		if err != nil {
			return nil, err
		}

		for i := range candidates {
			if url, ok := images[candidates[i].ID]; ok {
				u := url
				candidates[i].ImageSrc = &u
			}
		}
	}

	return candidates, nil
}

func (r *productRepository) GetFilterCatalog(ctx context.Context) (*models.FilterCatalog, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	catalog := &models.FilterCatalog{}

	brandRows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, slug, logo_url FROM brands ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying brands: %w", err)
	}
	defer brandRows.Close()

	for brandRows.Next() {
		var b models.Brand
		var logoURL sql.NullString
		if err := brandRows.Scan(&b.ID, &b.Name, &b.Slug, &logoURL); err != nil {
			return nil, err
		}
		b.LogoURL = nullString(logoURL)
		catalog.Brands = append(catalog.Brands, b)
	}
	if err := brandRows.Err(); err != nil {
		return nil, err
	}

	categoryRows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, slug, parent_id FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var c models.Category
		var parentID uuid.NullUUID
		if err := categoryRows.Scan(&c.ID, &c.Name, &c.Slug, &parentID); err != nil {
			return nil, err
		}
		if parentID.Valid {
			id := parentID.UUID
			c.ParentID = &id
		}
		catalog.Categories = append(catalog.Categories, c)
	}
	if err := categoryRows.Err(); err != nil {
		return nil, err
	}

	genderRows, err := r.DB.QueryContext(dbCtx, `SELECT id, label, slug FROM genders ORDER BY label ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying genders: %w", err)
	}
	defer genderRows.Close()

	for genderRows.Next() {
		var g models.Gender
		if err := genderRows.Scan(&g.ID, &g.Label, &g.Slug); err != nil {
			return nil, err
		}
		catalog.Genders = append(catalog.Genders, g)
	}
	if err := genderRows.Err(); err != nil {
		return nil, err
	}

	colorRows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, slug, hex_code FROM colors ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying colors: %w", err)
	}
	defer colorRows.Close()

	for colorRows.Next() {
		var c models.Color
		if err := colorRows.Scan(&c.ID, &c.Name, &c.Slug, &c.HexCode); err != nil {
			return nil, err
		}
		catalog.Colors = append(catalog.Colors, c)
	}
	if err := colorRows.Err(); err != nil {
		return nil, err
	}

	sizeRows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, slug, sort_order FROM sizes ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying sizes: %w", err)
	}
	defer sizeRows.Close()

	for sizeRows.Next() {
		var s models.Size
		if err := sizeRows.Scan(&s.ID, &s.Name, &s.Slug, &s.SortOrder); err != nil {
			return nil, err
		}
		catalog.Sizes = append(catalog.Sizes, s)
	}
	if err := sizeRows.Err(); err != nil {
		return nil, err
	}

	return catalog, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}

	v := s.String
	return &v
}

func decodeDimensions(raw []byte) models.Dimensions {
	var d models.Dimensions
	if len(raw) == 0 {
		return d
	}

	// dimensions is a JSONB column; malformed payloads degrade to zero values.
	_ = json.Unmarshal(raw, &d)

	return d
}
