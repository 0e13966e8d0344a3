package store

import (
	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RefundStatus tracks the processing state of a refund request
type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "PENDING"
	RefundStatusAccepted RefundStatus = "ACCEPTED"
	RefundStatusRejected RefundStatus = "REJECTED"
)

// Refund is a customer request to get money back for a placed order
type Refund struct {
	shared.BaseAggregateRoot
	OrderID uuid.UUID
	Amount  decimal.Decimal
	Reason  string
	Email   string
	Status  RefundStatus
}

// NewRefund creates a pending refund request for an order
func NewRefund(orderID uuid.UUID, amount decimal.Decimal, reason, email string) (*Refund, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Refund reason cannot be empty")
	}

	return &Refund{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Amount:            amount,
		Reason:            reason,
		Email:             email,
		Status:            RefundStatusPending,
	}, nil
}

// Accept marks the refund as granted
func (r *Refund) Accept() error {
	if r.Status != RefundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending refunds can be accepted")
	}
	r.Status = RefundStatusAccepted
	r.Touch()
	return nil
}

// Reject marks the refund as denied
func (r *Refund) Reject() error {
	if r.Status != RefundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending refunds can be rejected")
	}
	r.Status = RefundStatusRejected
	r.Touch()
	return nil
}
