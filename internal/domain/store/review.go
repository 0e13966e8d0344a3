package store

import (
	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer rating for a product. Reviews are hidden from the
// storefront until approved.
type Review struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID
	UserID     *uuid.UUID
	AuthorName string
	Email      string
	Rating     int
	Content    string
	IsApproved bool
}

// NewReview creates a review for a product. Reviews publish immediately;
// editing one pulls it back for moderation.
func NewReview(productID uuid.UUID, userID *uuid.UUID, authorName, email string, rating int, content string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if authorName == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author name cannot be empty")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		AuthorName:        authorName,
		Email:             email,
		Rating:            rating,
		Content:           content,
		IsApproved:        true,
	}, nil
}

// Approve publishes the review to the storefront
func (r *Review) Approve() {
	r.IsApproved = true
	r.Touch()
}

// UpdateContent replaces the review body and rating, resetting approval
func (r *Review) UpdateContent(rating int, content string) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	r.Rating = rating
	r.Content = content
	r.IsApproved = false
	r.Touch()
	return nil
}
