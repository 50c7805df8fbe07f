package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/utils"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartByGuestID(ctx context.Context, guestID string) (*models.Cart, error)
	CreateUserCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	CreateGuestCart(ctx context.Context, guestID string) (*models.Cart, error)
	ListLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error)
	FindItemByVariant(ctx context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error)
	UpsertItem(ctx context.Context, cartID, variantID uuid.UUID, quantity int) error
	SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	AddItemQuantity(ctx context.Context, itemID uuid.UUID, delta int) error
	RepointItemVariant(ctx context.Context, itemID, variantID uuid.UUID, quantity *int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	MergeCarts(ctx context.Context, guestCartID, userCartID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT id, user_id, guest_id, created_at, updated_at FROM carts WHERE user_id = $1`, userID)
}

func (r *cartRepository) GetCartByGuestID(ctx context.Context, guestID string) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT id, user_id, guest_id, created_at, updated_at FROM carts WHERE guest_id = $1`, guestID)
}

// getCart returns (nil, nil) when no cart exists for the owner.
func (r *cartRepository) getCart(ctx context.Context, query string, owner any) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	var userID uuid.NullUUID
	var guestID sql.NullString

	err := r.DB.QueryRowContext(dbCtx, query, owner).Scan(&cart.ID, &userID, &guestID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying cart: %w", err)
	}

	if userID.Valid {
		id := userID.UUID
		cart.UserID = &id
	}
	if guestID.Valid {
		g := guestID.String
		cart.GuestID = &g
	}

	return cart, nil
}

// CreateUserCart inserts the user's cart. A concurrent insert losing the race
// on the one-cart-per-user index is recovered by re-reading the winner's row.
func (r *cartRepository) CreateUserCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (user_id)
		VALUES ($1)
		RETURNING id, user_id, guest_id, created_at, updated_at`

	cart, err := r.scanInsertedCart(dbCtx, query, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return r.GetCartByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("creating user cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) CreateGuestCart(ctx context.Context, guestID string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (guest_id)
		VALUES ($1)
		RETURNING id, user_id, guest_id, created_at, updated_at`

	cart, err := r.scanInsertedCart(dbCtx, query, guestID)
	if err != nil {
		if isUniqueViolation(err) {
			return r.GetCartByGuestID(ctx, guestID)
		}
		return nil, fmt.Errorf("creating guest cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) scanInsertedCart(ctx context.Context, query string, owner any) (*models.Cart, error) {
	cart := &models.Cart{}

	var userID uuid.NullUUID
	var guestID sql.NullString

	err := r.DB.QueryRowContext(ctx, query, owner).Scan(&cart.ID, &userID, &guestID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		id := userID.UUID
		cart.UserID = &id
	}
	if guestID.Valid {
		g := guestID.String
		cart.GuestID = &g
	}

	return cart, nil
}

// ListLines returns the denormalized view rows for a cart. The display image
// is resolved per line inside the query (variant-tagged image first, else the
// product-level image with no variant tag), so a variant with several images
// never fans out into duplicate lines.
func (r *cartRepository) ListLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.id, ci.cart_id, p.id, p.name, pv.id,
			c.name, c.hex_code, s.name, ci.quantity,
			COALESCE(pv.sale_price, pv.price) AS unit_price,
			COALESCE(vi.url, pi.url) AS image_url
		FROM cart_items ci
		JOIN product_variants pv ON pv.id = ci.product_variant_id
		JOIN products p ON p.id = pv.product_id
		LEFT JOIN colors c ON c.id = pv.color_id
		LEFT JOIN sizes s ON s.id = pv.size_id
		LEFT JOIN LATERAL (
			SELECT url FROM product_images
			WHERE variant_id = pv.id
			ORDER BY is_primary DESC, sort_order ASC
			LIMIT 1
		) vi ON TRUE
		LEFT JOIN LATERAL (
			SELECT url FROM product_images
			WHERE product_id = p.id AND variant_id IS NULL
			ORDER BY is_primary DESC, sort_order ASC
			LIMIT 1
		) pi ON TRUE
		WHERE ci.cart_id = $1
		ORDER BY ci.id ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("querying cart lines: %w", err)
	}

	defer rows.Close()

	var lines []models.CartLine

	for rows.Next() {
		var line models.CartLine
		var colorName, colorHex, sizeName, imageURL sql.NullString

		if err := rows.Scan(&line.ID, &line.CartID, &line.ProductID, &line.ProductName, &line.VariantID,
			&colorName, &colorHex, &sizeName, &line.Quantity, &line.UnitPrice, &imageURL); err != nil {
			return nil, err
		}

		line.ColorName = nullString(colorName)
		line.ColorHex = nullString(colorHex)
		line.SizeName = nullString(sizeName)
		line.ImageURL = nullString(imageURL)

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// GetItem returns (nil, nil) when the item does not exist.
func (r *cartRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, cart_id, product_variant_id, quantity FROM cart_items WHERE id = $1`

	item := &models.CartItem{}

	err := r.DB.QueryRowContext(dbCtx, query, itemID).Scan(&item.ID, &item.CartID, &item.ProductVariantID, &item.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) FindItemByVariant(ctx context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, cart_id, product_variant_id, quantity FROM cart_items WHERE cart_id = $1 AND product_variant_id = $2`

	item := &models.CartItem{}

	err := r.DB.QueryRowContext(dbCtx, query, cartID, variantID).Scan(&item.ID, &item.CartID, &item.ProductVariantID, &item.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying cart item by variant: %w", err)
	}

	return item, nil
}

// UpsertItem inserts a line item or, when the variant is already in the cart,
// increments its quantity atomically at the store. No read-modify-write.
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, variantID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, product_variant_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	if _, err := r.DB.ExecContext(dbCtx, query, cartID, variantID, quantity); err != nil {
		return fmt.Errorf("upserting cart item: %w", err)
	}

	return r.touchCartByItemOwner(dbCtx, cartID)
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE cart_items SET quantity = GREATEST(1, $1) WHERE id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, quantity, itemID); err != nil {
		return fmt.Errorf("setting cart item quantity: %w", err)
	}

	return nil
}

func (r *cartRepository) AddItemQuantity(ctx context.Context, itemID uuid.UUID, delta int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE cart_items SET quantity = GREATEST(1, quantity + $1) WHERE id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, delta, itemID); err != nil {
		return fmt.Errorf("adjusting cart item quantity: %w", err)
	}

	return nil
}

// RepointItemVariant changes which variant a line item references, optionally
// setting a new quantity. Callers must have ruled out a conflicting line for
// the target variant first.
func (r *cartRepository) RepointItemVariant(ctx context.Context, itemID, variantID uuid.UUID, quantity *int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET product_variant_id = $1,
			quantity = CASE WHEN $2::int IS NULL THEN quantity ELSE GREATEST(1, $2::int) END
		WHERE id = $3`

	var qty sql.NullInt64
	if quantity != nil {
		qty = sql.NullInt64{Int64: int64(*quantity), Valid: true}
	}

	if _, err := r.DB.ExecContext(dbCtx, query, variantID, qty, itemID); err != nil {
		return fmt.Errorf("repointing cart item variant: %w", err)
	}

	return nil
}

// DeleteItem is idempotent: deleting an absent row is not an error.
func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("deleting cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clearing cart items: %w", err)
	}

	return nil
}

// MergeCarts moves every guest line into the user cart and deletes the guest
// cart, in one transaction. Quantities of shared variants are added together
// via the (cart_id, variant) uniqueness constraint; on any failure the guest
// cart and its items remain exactly as before the attempt.
func (r *cartRepository) MergeCarts(ctx context.Context, guestCartID, userCartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("beginning merge transaction: %w", err)
	}

	defer tx.Rollback()

	mergeQuery := `
		INSERT INTO cart_items (cart_id, product_variant_id, quantity)
		SELECT $1, product_variant_id, quantity
		FROM cart_items
		WHERE cart_id = $2
		ON CONFLICT (cart_id, product_variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	if _, err := tx.ExecContext(dbCtx, mergeQuery, userCartID, guestCartID); err != nil {
		return fmt.Errorf("merging cart items: %w", err)
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, guestCartID); err != nil {
		return fmt.Errorf("removing guest cart items: %w", err)
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, guestCartID); err != nil {
		return fmt.Errorf("removing guest cart: %w", err)
	}

	if _, err := tx.ExecContext(dbCtx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, userCartID); err != nil {
		return fmt.Errorf("touching user cart: %w", err)
	}

	return tx.Commit()
}

func (r *cartRepository) touchCartByItemOwner(ctx context.Context, cartID uuid.UUID) error {
	if _, err := r.DB.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("touching cart: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	return false
}
