package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/karanbedi/storefront-platform/internal/cache"
	"github.com/karanbedi/storefront-platform/internal/config"
	"github.com/karanbedi/storefront-platform/internal/errors"
	"github.com/karanbedi/storefront-platform/internal/models"
	repository "github.com/karanbedi/storefront-platform/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, identity models.Identity) (*models.CartView, error)
	AddItem(ctx context.Context, identity models.Identity, req *models.AddCartItemRequest) (*models.CartView, error)
	UpdateItem(ctx context.Context, identity models.Identity, itemID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, identity models.Identity, itemID uuid.UUID) (*models.CartView, error)
	ClearCart(ctx context.Context, identity models.Identity) (*models.CartView, error)
	MergeGuestCart(ctx context.Context, identity models.Identity, req *models.MergeCartRequest) (*models.MergeResult, error)
}

type cartService struct {
	repo      repository.CartRepository
	guestRepo repository.GuestRepository
	cache     cache.Cache
	cacheCfg  *config.CacheConfig
	guestCfg  *config.GuestSession
}

func NewCartService(repo repository.CartRepository, guestRepo repository.GuestRepository, cache cache.Cache, cacheCfg *config.CacheConfig, guestCfg *config.GuestSession) CartService {
	return &cartService{
		repo:      repo,
		guestRepo: guestRepo,
		cache:     cache,
		cacheCfg:  cacheCfg,
		guestCfg:  guestCfg,
	}
}

// resolveCart returns the identity's cart, creating it on first use. For
// guests the session row is refreshed first so the cart's foreign token
// always references a live session.
func (s *cartService) resolveCart(ctx context.Context, identity models.Identity) (*models.Cart, error) {

	if identity.IsUser() {

		cart, err := s.repo.GetCartByUserID(ctx, identity.UserID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		if cart == nil {
			cart, err = s.repo.CreateUserCart(ctx, identity.UserID)
			if err != nil {
				return nil, errors.DatabaseError("Failed to create cart").WithError(err)
			}
		}

		return cart, nil
	}

	if identity.GuestToken == "" {
		return nil, errors.UnauthorizedError("No shopper identity")
	}

	guest, err := s.guestRepo.FindByToken(ctx, identity.GuestToken)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch guest session").WithError(err)
	}

	if guest == nil {
		if _, err := s.guestRepo.Create(ctx, identity.GuestToken, time.Now().Add(s.guestCfg.TTL)); err != nil {
			return nil, errors.DatabaseError("Failed to create guest session").WithError(err)
		}
	}

	cart, err := s.repo.GetCartByGuestID(ctx, identity.GuestToken)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if cart == nil {
		cart, err = s.repo.CreateGuestCart(ctx, identity.GuestToken)
		if err != nil {
			return nil, errors.DatabaseError("Failed to create cart").WithError(err)
		}
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, identity models.Identity) (*models.CartView, error) {

	cart, err := s.resolveCart(ctx, identity)
	if err != nil {
		return nil, err
	}

	cacheKey := cache.Key(cache.CartKeyPrefix, cart.ID.String())

	var cached models.CartView

	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		slog.Warn("Cart cache read failed", slog.String("error", err.Error()))
	}

	if found {
		return &cached, nil
	}

	view, err := s.buildView(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, view, s.cacheCfg.CartViewTTL); err != nil {
		slog.Warn("Cart cache write failed", slog.String("error", err.Error()))
	}

	return view, nil
}

func (s *cartService) AddItem(ctx context.Context, identity models.Identity, req *models.AddCartItemRequest) (*models.CartView, error) {

	cart, err := s.resolveCart(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpsertItem(ctx, cart.ID, req.VariantID, req.Quantity); err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.refreshView(ctx, cart.ID)
}

// UpdateItem changes a line's quantity, its variant, or both. When the target
// variant already has its own line in the cart, the two lines are merged:
// quantities add up and the updated line is removed.
func (s *cartService) UpdateItem(ctx context.Context, identity models.Identity, itemID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartView, error) {

	if req.Quantity == nil && req.VariantID == nil {
		return nil, errors.BadRequestError("Nothing to update")
	}

	cart, err := s.resolveCart(ctx, identity)
	if err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}

	if req.VariantID != nil && *req.VariantID != item.ProductVariantID {

		target, err := s.repo.FindItemByVariant(ctx, cart.ID, *req.VariantID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch cart item").WithError(err)
		}

		if target != nil {

			delta := item.Quantity
			if req.Quantity != nil {
				delta = *req.Quantity
			}

			if err := s.repo.AddItemQuantity(ctx, target.ID, delta); err != nil {
				return nil, errors.DatabaseError("Failed to merge cart lines").WithError(err)
			}

			if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
				return nil, errors.DatabaseError("Failed to merge cart lines").WithError(err)
			}

			return s.refreshView(ctx, cart.ID)
		}

		if err := s.repo.RepointItemVariant(ctx, item.ID, *req.VariantID, req.Quantity); err != nil {
			return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
		}

		return s.refreshView(ctx, cart.ID)
	}

	if req.Quantity != nil {
		if err := s.repo.SetItemQuantity(ctx, item.ID, *req.Quantity); err != nil {
			return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
		}
	}

	return s.refreshView(ctx, cart.ID)
}

// RemoveItem deletes a line from the caller's cart. Removing a line that is
// already gone is not an error: the recomputed view is returned either way.
func (s *cartService) RemoveItem(ctx context.Context, identity models.Identity, itemID uuid.UUID) (*models.CartView, error) {

	cart, err := s.resolveCart(ctx, identity)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart item").WithError(err)
	}

	if item == nil {
		return s.refreshView(ctx, cart.ID)
	}

	if item.CartID != cart.ID {
		return nil, errors.NotFoundError("Cart item not found")
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, errors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.refreshView(ctx, cart.ID)
}

func (s *cartService) ClearCart(ctx context.Context, identity models.Identity) (*models.CartView, error) {

	cart, err := s.resolveCart(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return s.refreshView(ctx, cart.ID)
}

// MergeGuestCart folds a guest cart into the user's cart after sign-in.
// No-ops return Merged=false without error, with a reason telling a missing
// user apart from a missing guest cart.
func (s *cartService) MergeGuestCart(ctx context.Context, identity models.Identity, req *models.MergeCartRequest) (*models.MergeResult, error) {

	userID := identity.UserID
	if !identity.IsUser() {
		if req.UserID == nil {
			return &models.MergeResult{Merged: false, Reason: models.MergeReasonNoUser}, nil
		}
		userID = *req.UserID
	}

	guestToken := identity.GuestToken
	if req.GuestToken != nil {
		guestToken = *req.GuestToken
	}

	if guestToken == "" {
		return &models.MergeResult{Merged: false, Reason: models.MergeReasonNoGuestCart}, nil
	}

	guestCart, err := s.repo.GetCartByGuestID(ctx, guestToken)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch guest cart").WithError(err)
	}

	if guestCart == nil {
		return &models.MergeResult{Merged: false, Reason: models.MergeReasonNoGuestCart}, nil
	}

	userCart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if userCart == nil {
		userCart, err = s.repo.CreateUserCart(ctx, userID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to create cart").WithError(err)
		}
	}

	if err := s.repo.MergeCarts(ctx, guestCart.ID, userCart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to merge carts").WithError(err)
	}

	if err := s.guestRepo.DeleteByToken(ctx, guestToken); err != nil {
		slog.Warn("Failed to delete guest session after merge", slog.String("error", err.Error()))
	}

	s.invalidate(ctx, guestCart.ID)
	s.invalidate(ctx, userCart.ID)

	return &models.MergeResult{Merged: true}, nil
}

// ownedItem fetches an item and verifies it belongs to the caller's cart, so
// one shopper can never address another cart's line by guessing ids.
func (s *cartService) ownedItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart item").WithError(err)
	}

	if item == nil || item.CartID != cartID {
		return nil, errors.NotFoundError("Cart item not found")
	}

	return item, nil
}

func (s *cartService) buildView(ctx context.Context, cartID uuid.UUID) (*models.CartView, error) {

	lines, err := s.repo.ListLines(ctx, cartID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart items").WithError(err)
	}

	view := &models.CartView{
		ID:    cartID,
		Items: lines,
	}

	for _, line := range lines {
		view.Subtotal += line.UnitPrice * float64(line.Quantity)
	}

	return view, nil
}

// refreshView rebuilds the cart view after a mutation and replaces the cached
// copy, so readers never see a stale cart for longer than one request.
func (s *cartService) refreshView(ctx context.Context, cartID uuid.UUID) (*models.CartView, error) {

	view, err := s.buildView(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cacheKey := cache.Key(cache.CartKeyPrefix, cartID.String())

	if err := s.cache.Set(ctx, cacheKey, view, s.cacheCfg.CartViewTTL); err != nil {
		slog.Warn("Cart cache write failed", slog.String("error", err.Error()))
	}

	return view, nil
}

func (s *cartService) invalidate(ctx context.Context, cartID uuid.UUID) {
	if err := s.cache.Delete(ctx, cache.Key(cache.CartKeyPrefix, cartID.String())); err != nil {
		slog.Warn("Cart cache invalidation failed", slog.String("error", err.Error()))
	}
}
