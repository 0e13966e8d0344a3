package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
)

// ReviewService handles product review submission and listing
type ReviewService struct {
	reviewRepo  store.ReviewRepository
	productRepo catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo store.ReviewRepository, productRepo catalog.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Create submits a review for a product. New reviews publish immediately;
// moderation can pull them via Delete, and edits reset approval.
func (s *ReviewService) Create(ctx context.Context, userID *uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, req.ProductSlug)
	if err != nil {
		return nil, err
	}

	review, err := store.NewReview(product.ID, userID, req.AuthorName, req.Email, req.Rating, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	return ToReviewResponse(review), nil
}

// ListForProduct returns approved reviews for a product
func (s *ReviewService) ListForProduct(ctx context.Context, productSlug string, filter shared.Filter) (*shared.Paginated[ReviewResponse], error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindApprovedByProduct(ctx, product.ID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(reviews.Items))
	for idx := range reviews.Items {
		responses = append(responses, *ToReviewResponse(&reviews.Items[idx]))
	}

	page := shared.NewPaginated(responses, reviews.Total, reviews.Page, reviews.PageSize)
	return &page, nil
}

// Approve publishes a review (admin)
func (s *ReviewService) Approve(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	review.Approve()
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	return ToReviewResponse(review), nil
}

// Delete removes a review (admin)
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reviewRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, id)
}
