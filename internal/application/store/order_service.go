package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"go.uber.org/zap"
)

// OrderService handles placed orders: history, fulfillment transitions,
// and refund requests.
type OrderService struct {
	orderRepo  store.OrderRepository
	refundRepo store.RefundRepository
	returnRepo store.ReturnRepository
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo store.OrderRepository, refundRepo store.RefundRepository, returnRepo store.ReturnRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		refundRepo: refundRepo,
		returnRepo: returnRepo,
		logger:     logger,
	}
}

// GetByNumber returns a placed order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// History lists a user's placed orders, newest first
func (s *OrderService) History(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindPlacedByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders.Items))
	for idx := range orders.Items {
		responses = append(responses, *ToOrderResponse(&orders.Items[idx]))
	}

	page := shared.NewPaginated(responses, orders.Total, orders.Page, orders.PageSize)
	return &page, nil
}

// Confirm moves a placed order from pending to confirmed
func (s *OrderService) Confirm(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	return s.transition(ctx, orderNumber, store.OrderStatusConfirmed)
}

// Ship marks a confirmed order shipped and records the tracking number
func (s *OrderService) Ship(ctx context.Context, orderNumber, trackingNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if err := order.SetTrackingNumber(trackingNumber); err != nil {
		return nil, err
	}
	if err := order.TransitionTo(store.OrderStatusShipped); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order shipped",
		zap.String("order_number", order.OrderNumber),
		zap.String("tracking_number", trackingNumber))

	return ToOrderResponse(order), nil
}

// MarkDelivered marks a shipped order delivered
func (s *OrderService) MarkDelivered(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	return s.transition(ctx, orderNumber, store.OrderStatusDelivered)
}

// MarkReturned marks an order returned and records why. The return record
// is written after the transition succeeds.
func (s *OrderService) MarkReturned(ctx context.Context, orderNumber, reason, notes string) (*OrderResponse, error) {
	resp, err := s.transition(ctx, orderNumber, store.OrderStatusReturned)
	if err != nil {
		return nil, err
	}

	ret, err := store.NewReturn(resp.ID, reason, notes)
	if err != nil {
		return nil, err
	}
	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *OrderService) transition(ctx context.Context, orderNumber string, target store.OrderStatus) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", target.String()))

	return ToOrderResponse(order), nil
}

// RequestRefund files a refund request against a placed order. The refund
// amount cannot exceed the order total.
func (s *OrderService) RequestRefund(ctx context.Context, req RequestRefundRequest) (*RefundResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	if !order.Ordered {
		return nil, shared.ErrInvalidState
	}
	if req.Amount.GreaterThan(order.Total) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount cannot exceed the order total")
	}

	refund, err := store.NewRefund(order.ID, req.Amount, req.Reason, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.refundRepo.Save(ctx, refund); err != nil {
		return nil, err
	}

	s.logger.Info("refund requested",
		zap.String("order_number", order.OrderNumber),
		zap.String("amount", req.Amount.StringFixed(2)))

	return ToRefundResponse(refund), nil
}

// ResolveRefund accepts or rejects a pending refund request
func (s *OrderService) ResolveRefund(ctx context.Context, refundID uuid.UUID, accept bool) (*RefundResponse, error) {
	refund, err := s.refundRepo.FindByID(ctx, refundID)
	if err != nil {
		return nil, err
	}

	if accept {
		err = refund.Accept()
	} else {
		err = refund.Reject()
	}
	if err != nil {
		return nil, err
	}

	if err := s.refundRepo.Save(ctx, refund); err != nil {
		return nil, err
	}
	return ToRefundResponse(refund), nil
}
