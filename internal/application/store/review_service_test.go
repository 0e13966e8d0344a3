package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewServiceCreate(t *testing.T) {
	ctx := context.Background()

	product, err := catalog.NewProduct("Blue Mug", decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("publishes immediately", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo)

		productRepo.On("FindBySlug", ctx, product.Slug).Return(product, nil)
		reviewRepo.On("Save", ctx, mock.MatchedBy(func(r *store.Review) bool {
			return r.ProductID == product.ID && r.IsApproved
		})).Return(nil)

		resp, err := service.Create(ctx, &userID, CreateReviewRequest{
			ProductSlug: product.Slug,
			AuthorName:  "Alex",
			Rating:      5,
			Content:     "keeps coffee hot",
		})
		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ProductID)
		assert.Equal(t, 5, resp.Rating)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo)

		productRepo.On("FindBySlug", ctx, "gone").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, &userID, CreateReviewRequest{
			ProductSlug: "gone",
			AuthorName:  "Alex",
			Rating:      4,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		reviewRepo.AssertNotCalled(t, "Save")
	})

	t.Run("out-of-range rating", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo)

		productRepo.On("FindBySlug", ctx, product.Slug).Return(product, nil)

		_, err := service.Create(ctx, &userID, CreateReviewRequest{
			ProductSlug: product.Slug,
			AuthorName:  "Alex",
			Rating:      9,
		})
		assert.Error(t, err)
		reviewRepo.AssertNotCalled(t, "Save")
	})
}

func TestReviewServiceListForProduct(t *testing.T) {
	ctx := context.Background()

	product, err := catalog.NewProduct("Blue Mug", decimal.RequireFromString("19.99"))
	require.NoError(t, err)

	review, err := store.NewReview(product.ID, nil, "Alex", "", 4, "solid")
	require.NoError(t, err)

	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	service := NewReviewService(reviewRepo, productRepo)

	page := shared.NewPaginated([]store.Review{*review}, 1, 1, 20)
	productRepo.On("FindBySlug", ctx, product.Slug).Return(product, nil)
	reviewRepo.On("FindApprovedByProduct", ctx, product.ID, mock.AnythingOfType("shared.Filter")).Return(&page, nil)

	resp, err := service.ListForProduct(ctx, product.Slug, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Alex", resp.Items[0].AuthorName)
	assert.Equal(t, int64(1), resp.Total)
}
