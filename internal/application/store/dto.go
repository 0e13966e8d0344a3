package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/shopspring/decimal"
)

// AddToCartRequest adds one unit of a product to the active cart
type AddToCartRequest struct {
	ProductSlug string `json:"product_slug" binding:"required"`
}

// UpdateCartItemRequest replaces a cart line's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=10"`
}

// ApplyCouponRequest applies a coupon code to the active cart
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CheckoutDetailsRequest captures contact and shipping info before payment
type CheckoutDetailsRequest struct {
	Email        string `json:"email" binding:"required,email"`
	PhoneNumber  string `json:"phone_number"`
	CustomerName string `json:"customer_name" binding:"required"`
	ShippingName string `json:"shipping_name"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state"`
	Country      string `json:"country" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
}

// CreateReviewRequest submits a product review
type CreateReviewRequest struct {
	ProductSlug string `json:"product_slug" binding:"required"`
	AuthorName  string `json:"author_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Content     string `json:"content" binding:"max=2000"`
}

// CreateCouponRequest creates a coupon (admin)
type CreateCouponRequest struct {
	Code           string          `json:"code" binding:"required,max=50"`
	Description    string          `json:"description"`
	Discount       decimal.Decimal `json:"discount" binding:"required"`
	ExpirationDate time.Time       `json:"expiration_date" binding:"required"`
}

// RequestRefundRequest asks for money back on a placed order
type RequestRefundRequest struct {
	OrderNumber string          `json:"order_number" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Reason      string          `json:"reason" binding:"required,max=1000"`
	Email       string          `json:"email" binding:"required,email"`
}

// CartItemResponse is the API representation of a cart line
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	FinalPrice  decimal.Decimal `json:"final_price"`
}

// CartResponse is the API representation of the active cart
type CartResponse struct {
	ID             uuid.UUID          `json:"id"`
	Items          []CartItemResponse `json:"items"`
	ItemCount      int                `json:"item_count"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	CouponDiscount decimal.Decimal    `json:"coupon_discount"`
	Shipping       decimal.Decimal    `json:"shipping"`
	Tax            decimal.Decimal    `json:"tax"`
	Total          decimal.Decimal    `json:"total"`
}

// OrderResponse is the API representation of a placed order
type OrderResponse struct {
	ID             uuid.UUID          `json:"id"`
	OrderNumber    string             `json:"order_number"`
	Status         string             `json:"status"`
	PaymentStatus  string             `json:"payment_status,omitempty"`
	Email          string             `json:"email,omitempty"`
	CustomerName   string             `json:"customer_name,omitempty"`
	Items          []CartItemResponse `json:"items"`
	Total          decimal.Decimal    `json:"total"`
	TrackingNumber *string            `json:"tracking_number,omitempty"`
	OrderedAt      *time.Time         `json:"ordered_at,omitempty"`
}

// CouponResponse is the API representation of a coupon
type CouponResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Description    string          `json:"description,omitempty"`
	Discount       decimal.Decimal `json:"discount"`
	ExpirationDate time.Time       `json:"expiration_date"`
	IsApproved     bool            `json:"is_approved"`
}

// ReviewResponse is the API representation of a review
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RefundResponse is the API representation of a refund request
type RefundResponse struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToCartItemResponse converts a domain cart line to its API representation
func ToCartItemResponse(item *store.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		ProductSlug: item.ProductSlug,
		UnitPrice:   item.EffectiveUnitPrice(),
		Quantity:    item.Quantity,
		FinalPrice:  item.FinalPrice(),
	}
}

// ToCartResponse converts an unordered order to its cart representation
func ToCartResponse(order *store.Order) *CartResponse {
	items := make([]CartItemResponse, 0, len(order.Items))
	for idx := range order.Items {
		items = append(items, ToCartItemResponse(&order.Items[idx]))
	}

	return &CartResponse{
		ID:             order.ID,
		Items:          items,
		ItemCount:      order.ItemCount(),
		Subtotal:       order.Subtotal(),
		CouponDiscount: order.CouponDiscount,
		Shipping:       order.AmountShipping,
		Tax:            order.AmountTax,
		Total:          order.Total,
	}
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(order *store.Order) *OrderResponse {
	items := make([]CartItemResponse, 0, len(order.Items))
	for idx := range order.Items {
		items = append(items, ToCartItemResponse(&order.Items[idx]))
	}

	return &OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         order.Status.String(),
		PaymentStatus:  order.PaymentStatus,
		Email:          order.Email,
		CustomerName:   order.CustomerName,
		Items:          items,
		Total:          order.Total,
		TrackingNumber: order.TrackingNumber,
		OrderedAt:      order.OrderedAt,
	}
}

// ToCouponResponse converts a domain coupon to its API representation
func ToCouponResponse(coupon *store.Coupon) *CouponResponse {
	return &CouponResponse{
		ID:             coupon.ID,
		Code:           coupon.Code,
		Description:    coupon.Description,
		Discount:       coupon.Discount,
		ExpirationDate: coupon.ExpirationDate,
		IsApproved:     coupon.IsApproved,
	}
}

// ToReviewResponse converts a domain review to its API representation
func ToReviewResponse(review *store.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         review.ID,
		ProductID:  review.ProductID,
		AuthorName: review.AuthorName,
		Rating:     review.Rating,
		Content:    review.Content,
		CreatedAt:  review.CreatedAt,
	}
}

// ToRefundResponse converts a domain refund to its API representation
func ToRefundResponse(refund *store.Refund) *RefundResponse {
	return &RefundResponse{
		ID:        refund.ID,
		OrderID:   refund.OrderID,
		Amount:    refund.Amount,
		Reason:    refund.Reason,
		Status:    string(refund.Status),
		CreatedAt: refund.CreatedAt,
	}
}
