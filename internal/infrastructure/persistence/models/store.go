package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
// The partial unique index on scope_key (where ordered = false) is what
// guarantees a single active cart per scope; see the migrations.
type OrderModel struct {
	AggregateModel
	OrderNumber       string            `gorm:"type:varchar(20);index"`
	ScopeKey          string            `gorm:"type:varchar(100);not null;index"`
	UserID            *uuid.UUID        `gorm:"type:uuid;index"`
	SessionKey        string            `gorm:"type:varchar(64);index"`
	Email             string            `gorm:"type:varchar(254)"`
	PhoneNumber       string            `gorm:"type:varchar(30)"`
	CustomerName      string            `gorm:"type:varchar(200)"`
	ShippingName      string            `gorm:"type:varchar(200)"`
	AddressLine1      string            `gorm:"type:varchar(255)"`
	AddressLine2      string            `gorm:"type:varchar(255)"`
	City              string            `gorm:"type:varchar(100)"`
	State             string            `gorm:"type:varchar(100)"`
	Country           string            `gorm:"type:varchar(100)"`
	PostalCode        string            `gorm:"type:varchar(20)"`
	Items             []CartItemModel   `gorm:"foreignKey:OrderID;references:ID"`
	Total             decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0"`
	AmountDiscount    decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0"`
	AmountShipping    decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0"`
	AmountTax         decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0"`
	Status            store.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentStatus     string            `gorm:"type:varchar(30)"`
	Ordered           bool              `gorm:"not null;default:false;index"`
	OrderedAt         *time.Time        `gorm:"index"`
	TrackingNumber    *string           `gorm:"type:varchar(100)"`
	CouponID          *uuid.UUID        `gorm:"type:uuid;index"`
	CouponDiscount    decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0"`
	CheckoutSessionID *string           `gorm:"type:varchar(255);uniqueIndex"`
	IPAddress         string            `gorm:"type:varchar(45)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *store.Order {
	order := &store.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OrderNumber:       m.OrderNumber,
		ScopeKey:          m.ScopeKey,
		UserID:            m.UserID,
		SessionKey:        m.SessionKey,
		Email:             m.Email,
		PhoneNumber:       m.PhoneNumber,
		CustomerName:      m.CustomerName,
		ShippingName:      m.ShippingName,
		AddressLine1:      m.AddressLine1,
		AddressLine2:      m.AddressLine2,
		City:              m.City,
		State:             m.State,
		Country:           m.Country,
		PostalCode:        m.PostalCode,
		Total:             m.Total,
		AmountDiscount:    m.AmountDiscount,
		AmountShipping:    m.AmountShipping,
		AmountTax:         m.AmountTax,
		Status:            m.Status,
		PaymentStatus:     m.PaymentStatus,
		Ordered:           m.Ordered,
		OrderedAt:         m.OrderedAt,
		TrackingNumber:    m.TrackingNumber,
		CouponID:          m.CouponID,
		CouponDiscount:    m.CouponDiscount,
		CheckoutSessionID: m.CheckoutSessionID,
		IPAddress:         m.IPAddress,
		Items:             make([]store.CartItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *store.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.ScopeKey = o.ScopeKey
	m.UserID = o.UserID
	m.SessionKey = o.SessionKey
	m.Email = o.Email
	m.PhoneNumber = o.PhoneNumber
	m.CustomerName = o.CustomerName
	m.ShippingName = o.ShippingName
	m.AddressLine1 = o.AddressLine1
	m.AddressLine2 = o.AddressLine2
	m.City = o.City
	m.State = o.State
	m.Country = o.Country
	m.PostalCode = o.PostalCode
	m.Total = o.Total
	m.AmountDiscount = o.AmountDiscount
	m.AmountShipping = o.AmountShipping
	m.AmountTax = o.AmountTax
	m.Status = o.Status
	m.PaymentStatus = o.PaymentStatus
	m.Ordered = o.Ordered
	m.OrderedAt = o.OrderedAt
	m.TrackingNumber = o.TrackingNumber
	m.CouponID = o.CouponID
	m.CouponDiscount = o.CouponDiscount
	m.CheckoutSessionID = o.CheckoutSessionID
	m.IPAddress = o.IPAddress
	m.Items = make([]CartItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *CartItemModelFromDomain(&item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *store.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// CartItemModel is the persistence model for a cart line
type CartItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName       string          `gorm:"type:varchar(100);not null"`
	ProductSlug       string          `gorm:"type:varchar(100);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitDiscountPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Quantity          int             `gorm:"not null;default:1"`
	Ordered           bool            `gorm:"not null;default:false;index"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem
func (m *CartItemModel) ToDomain() *store.CartItem {
	return &store.CartItem{
		ID:                m.ID,
		OrderID:           m.OrderID,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		ProductSlug:       m.ProductSlug,
		UnitPrice:         m.UnitPrice,
		UnitDiscountPrice: m.UnitDiscountPrice,
		Quantity:          m.Quantity,
		Ordered:           m.Ordered,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// CartItemModelFromDomain creates a persistence model from a domain CartItem
func CartItemModelFromDomain(i *store.CartItem) *CartItemModel {
	return &CartItemModel{
		ID:                i.ID,
		OrderID:           i.OrderID,
		ProductID:         i.ProductID,
		ProductName:       i.ProductName,
		ProductSlug:       i.ProductSlug,
		UnitPrice:         i.UnitPrice,
		UnitDiscountPrice: i.UnitDiscountPrice,
		Quantity:          i.Quantity,
		Ordered:           i.Ordered,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// CouponModel is the persistence model for a coupon
type CouponModel struct {
	AggregateModel
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description    string          `gorm:"type:varchar(255)"`
	Discount       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ExpirationDate time.Time       `gorm:"not null;index"`
	IsApproved     bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon
func (m *CouponModel) ToDomain() *store.Coupon {
	return &store.Coupon{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Code:           m.Code,
		Description:    m.Description,
		Discount:       m.Discount,
		ExpirationDate: m.ExpirationDate,
		IsApproved:     m.IsApproved,
	}
}

// CouponModelFromDomain creates a persistence model from a domain Coupon
func CouponModelFromDomain(c *store.Coupon) *CouponModel {
	m := &CouponModel{}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Description = c.Description
	m.Discount = c.Discount
	m.ExpirationDate = c.ExpirationDate
	m.IsApproved = c.IsApproved
	return m
}

// ReviewModel is the persistence model for a product review
type ReviewModel struct {
	AggregateModel
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	AuthorName string     `gorm:"type:varchar(100);not null"`
	Email      string     `gorm:"type:varchar(254)"`
	Rating     int        `gorm:"not null"`
	Content    string     `gorm:"type:text"`
	IsApproved bool       `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *store.Review {
	return &store.Review{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		AuthorName: m.AuthorName,
		Email:      m.Email,
		Rating:     m.Rating,
		Content:    m.Content,
		IsApproved: m.IsApproved,
	}
}

// ReviewModelFromDomain creates a persistence model from a domain Review
func ReviewModelFromDomain(r *store.Review) *ReviewModel {
	m := &ReviewModel{}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ProductID = r.ProductID
	m.UserID = r.UserID
	m.AuthorName = r.AuthorName
	m.Email = r.Email
	m.Rating = r.Rating
	m.Content = r.Content
	m.IsApproved = r.IsApproved
	return m
}

// RefundModel is the persistence model for a refund request
type RefundModel struct {
	AggregateModel
	OrderID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Amount  decimal.Decimal    `gorm:"type:decimal(10,2);not null"`
	Reason  string             `gorm:"type:varchar(1000);not null"`
	Email   string             `gorm:"type:varchar(254)"`
	Status  store.RefundStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
}

// TableName returns the table name for GORM
func (RefundModel) TableName() string {
	return "refunds"
}

// ToDomain converts the persistence model to a domain Refund
func (m *RefundModel) ToDomain() *store.Refund {
	return &store.Refund{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OrderID: m.OrderID,
		Amount:  m.Amount,
		Reason:  m.Reason,
		Email:   m.Email,
		Status:  m.Status,
	}
}

// RefundModelFromDomain creates a persistence model from a domain Refund
func RefundModelFromDomain(r *store.Refund) *RefundModel {
	m := &RefundModel{}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.OrderID = r.OrderID
	m.Amount = r.Amount
	m.Reason = r.Reason
	m.Email = r.Email
	m.Status = r.Status
	return m
}

// ReturnModel is the persistence model for a return record
type ReturnModel struct {
	AggregateModel
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason  string    `gorm:"type:varchar(255);not null"`
	Notes   string    `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for GORM
func (ReturnModel) TableName() string {
	return "returns"
}

// ToDomain converts the persistence model to a domain Return
func (m *ReturnModel) ToDomain() *store.Return {
	return &store.Return{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OrderID: m.OrderID,
		Reason:  m.Reason,
		Notes:   m.Notes,
	}
}

// ReturnModelFromDomain creates a persistence model from a domain Return
func ReturnModelFromDomain(r *store.Return) *ReturnModel {
	m := &ReturnModel{}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.OrderID = r.OrderID
	m.Reason = r.Reason
	m.Notes = r.Notes
	return m
}
