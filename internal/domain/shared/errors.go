package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Detail carries diagnostic context such as an upstream HTTP status
	// and response body for external-service failures. Logged and exposed
	// to operators, never rendered to customers.
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewExternalServiceError creates a domain error carrying upstream diagnostics
func NewExternalServiceError(code, message, detail string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Detail:  detail,
	}
}

// Common domain errors
var (
	ErrNotFound       = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists  = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput   = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState   = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrOrderFinalized = NewDomainError("ORDER_FINALIZED", "Order has already been placed and cannot be modified")
	ErrEmptyCart      = NewDomainError("EMPTY_CART", "Cart has no items")
	ErrCouponInvalid  = NewDomainError("COUPON_INVALID", "Coupon is unknown, not approved, or expired")
	ErrUnauthorized   = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
)
