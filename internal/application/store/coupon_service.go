package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
)

// CouponService manages coupon administration. Redemption happens through
// CartService.ApplyCoupon.
type CouponService struct {
	couponRepo store.CouponRepository
	orderRepo  store.OrderRepository
}

// NewCouponService creates a new CouponService
func NewCouponService(couponRepo store.CouponRepository, orderRepo store.OrderRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo, orderRepo: orderRepo}
}

// Create registers a new coupon, pending approval
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Coupon code already exists")
	}

	coupon, err := store.NewCoupon(code, req.Description, req.Discount, req.ExpirationDate)
	if err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	return ToCouponResponse(coupon), nil
}

// Approve marks a coupon redeemable
func (s *CouponService) Approve(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	coupon.Approve()
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	return ToCouponResponse(coupon), nil
}

// List returns a page of coupons (admin)
func (s *CouponService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CouponResponse], error) {
	coupons, err := s.couponRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CouponResponse, 0, len(coupons.Items))
	for idx := range coupons.Items {
		responses = append(responses, *ToCouponResponse(&coupons.Items[idx]))
	}

	page := shared.NewPaginated(responses, coupons.Total, coupons.Page, coupons.PageSize)
	return &page, nil
}

// Delete removes a coupon. Open carts holding it lose the discount and
// get their totals recomputed; placed orders keep their recorded totals.
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.couponRepo.FindByID(ctx, id); err != nil {
		return err
	}

	carts, err := s.orderRepo.FindUnorderedByCoupon(ctx, id)
	if err != nil {
		return err
	}
	for i := range carts {
		carts[i].DetachCoupon()
		if err := s.orderRepo.Save(ctx, &carts[i]); err != nil {
			return err
		}
	}

	return s.couponRepo.Delete(ctx, id)
}
