package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is owned by exactly one of UserID or GuestID. The data layer keeps at
// most one cart per owner via partial unique indexes.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	GuestID   *string    `json:"guest_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is unique per (cart, variant); adding an existing variant
// increments quantity instead of inserting a second row.
type CartItem struct {
	ID               uuid.UUID `json:"id"`
	CartID           uuid.UUID `json:"cart_id"`
	ProductVariantID uuid.UUID `json:"product_variant_id"`
	Quantity         int       `json:"quantity"`
}

type OwnerKind string

const (
	OwnerUser  OwnerKind = "user"
	OwnerGuest OwnerKind = "guest"
)

// CartLine is a denormalized view row for one cart item, with the unit price
// already coalesced across sale/base price and a single display image URL.
type CartLine struct {
	ID          uuid.UUID `json:"id"`
	CartID      uuid.UUID `json:"cart_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	VariantID   uuid.UUID `json:"variant_id"`
	ColorName   *string   `json:"color_name"`
	ColorHex    *string   `json:"color_hex,omitempty"`
	SizeName    *string   `json:"size_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	ImageURL    *string   `json:"image_url"`
}

type CartView struct {
	ID       uuid.UUID  `json:"id"`
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

type AddCartItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity  *int       `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
}

type MergeCartRequest struct {
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	GuestToken *string    `json:"guest_token,omitempty"`
}

// Merge no-op reasons, reported so callers can tell "sign in first" apart
// from "nothing to merge".
const (
	MergeReasonNoUser      = "no-user"
	MergeReasonNoGuestCart = "no-guest-cart"
)

type MergeResult struct {
	Merged bool   `json:"merged"`
	Reason string `json:"reason,omitempty"`
}

// Guest session row backing the anonymous-cart cookie token.
type Guest struct {
	ID           uuid.UUID `json:"id"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
