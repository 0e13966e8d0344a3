package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"go.uber.org/zap"
)

// CartService orchestrates the active cart for a scope: adding and removing
// products, quantity changes, and coupon application. Every mutation
// recomputes the order total before the repository persists order and items
// in one transaction.
type CartService struct {
	orderRepo   store.OrderRepository
	productRepo catalog.ProductRepository
	couponRepo  store.CouponRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	orderRepo store.OrderRepository,
	productRepo catalog.ProductRepository,
	couponRepo store.CouponRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		logger:      logger,
	}
}

// Get returns the active cart for a scope, creating an empty one when absent
func (s *CartService) Get(ctx context.Context, scope store.ScopeKey) (*CartResponse, error) {
	order, err := s.orderRepo.FindOrCreateUnordered(ctx, scope)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(order), nil
}

// ItemCount reports how many units sit in the scope's active cart without
// creating one. Scopes with no cart count as zero.
func (s *CartService) ItemCount(ctx context.Context, scope store.ScopeKey) (int, error) {
	order, err := s.orderRepo.FindUnorderedByScope(ctx, scope)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return order.ItemCount(), nil
}

// AddItem adds one unit of a product to the scope's cart. Adding a product
// already in the cart bumps its quantity instead of adding a row.
func (s *CartService) AddItem(ctx context.Context, scope store.ScopeKey, req AddToCartRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, req.ProductSlug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}

	order, err := s.orderRepo.FindOrCreateUnordered(ctx, scope)
	if err != nil {
		return nil, err
	}

	item, err := order.AddProduct(product.ID, product.Name, product.Slug, product.Price, product.DiscountPrice)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Debug("cart item added",
		zap.String("scope", scope.Key()),
		zap.String("product_slug", product.Slug),
		zap.Int("quantity", item.Quantity))

	return ToCartResponse(order), nil
}

// UpdateItemQuantity sets a cart line's quantity
func (s *CartService) UpdateItemQuantity(ctx context.Context, scope store.ScopeKey, itemID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	order, err := s.orderRepo.FindUnorderedByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return ToCartResponse(order), nil
}

// RemoveItem drops a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, scope store.ScopeKey, itemID uuid.UUID) (*CartResponse, error) {
	order, err := s.orderRepo.FindUnorderedByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return ToCartResponse(order), nil
}

// ApplyCoupon applies a coupon code to the scope's cart
func (s *CartService) ApplyCoupon(ctx context.Context, scope store.ScopeKey, req ApplyCouponRequest) (*CartResponse, error) {
	order, err := s.orderRepo.FindUnorderedByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	coupon, err := s.couponRepo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, shared.ErrCouponInvalid
	}

	if err := order.ApplyCoupon(coupon, time.Now()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("coupon applied",
		zap.String("scope", scope.Key()),
		zap.String("code", coupon.Code))

	return ToCartResponse(order), nil
}

// SetCheckoutDetails records contact and shipping info on the active cart
func (s *CartService) SetCheckoutDetails(ctx context.Context, scope store.ScopeKey, req CheckoutDetailsRequest) (*CartResponse, error) {
	order, err := s.orderRepo.FindUnorderedByScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	if order.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	order.SetContact(req.Email, req.PhoneNumber, req.CustomerName)
	shippingName := req.ShippingName
	if shippingName == "" {
		shippingName = req.CustomerName
	}
	order.SetShippingAddress(shippingName, req.AddressLine1, req.AddressLine2, req.City, req.State, req.Country, req.PostalCode)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return ToCartResponse(order), nil
}

// PurgeAbandoned deletes empty carts that have not been touched for the
// given duration. Run periodically from the server's background ticker.
func (s *CartService) PurgeAbandoned(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	purged, err := s.orderRepo.PurgeAbandoned(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.logger.Info("purged abandoned carts", zap.Int64("count", purged))
	}
	return purged, nil
}
