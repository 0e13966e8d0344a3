package store

import (
	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
)

// Return records that a placed order came back, and why. Returns are
// append-only; the order itself carries the RETURNED status.
type Return struct {
	shared.BaseAggregateRoot
	OrderID uuid.UUID
	Reason  string
	Notes   string
}

// NewReturn creates a return record for an order
func NewReturn(orderID uuid.UUID, reason, notes string) (*Return, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Return reason cannot be empty")
	}

	return &Return{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Reason:            reason,
		Notes:             notes,
	}, nil
}
