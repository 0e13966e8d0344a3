package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.Product, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategorySlug(ctx context.Context, categorySlug string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categorySlug, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with discount", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		productRepo.On("FindBySlug", ctx, "blue-mug").Return(nil, shared.ErrNotFound)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		discount := decimal.RequireFromString("8.00")
		resp, err := service.Create(ctx, CreateProductRequest{
			Name:          "Blue Mug",
			Price:         decimal.RequireFromString("19.99"),
			DiscountPrice: &discount,
		})

		require.NoError(t, err)
		assert.Equal(t, "blue-mug", resp.Slug)
		assert.True(t, resp.OnSale)
		assert.Equal(t, "8.00", resp.EffectivePrice.StringFixed(2))
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		existing, err := catalog.NewProduct("Blue Mug", decimal.RequireFromString("19.99"))
		require.NoError(t, err)
		productRepo.On("FindBySlug", ctx, "blue-mug").Return(existing, nil)

		_, err = service.Create(ctx, CreateProductRequest{
			Name:  "Blue Mug",
			Price: decimal.RequireFromString("19.99"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		productRepo.On("FindBySlug", ctx, "blue-mug").Return(nil, shared.ErrNotFound)
		categoryRepo.On("FindBySlug", ctx, "mugs").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:          "Blue Mug",
			Price:         decimal.RequireFromString("19.99"),
			CategorySlugs: []string{"mugs"},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})
}

func TestProductServiceGetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("hides inactive products", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockCategoryRepository))

		product, err := catalog.NewProduct("Blue Mug", decimal.RequireFromString("19.99"))
		require.NoError(t, err)
		product.Deactivate()
		productRepo.On("FindBySlug", ctx, "blue-mug").Return(product, nil)

		_, err = service.GetBySlug(ctx, "blue-mug")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductServiceSearch(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	service := NewProductService(productRepo, new(MockCategoryRepository))

	// blank queries never hit the repository
	results, err := service.Search(ctx, "   ", shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, results)
	productRepo.AssertNotCalled(t, "Search")
}

func TestCategoryServiceGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns existing category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)

		existing, err := catalog.NewCategory("Mugs", "")
		require.NoError(t, err)
		categoryRepo.On("FindByName", ctx, "Mugs").Return(existing, nil)

		category, err := service.GetOrCreate(ctx, "Mugs")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, category.ID)
		categoryRepo.AssertNotCalled(t, "Save")
	})

	t.Run("creates missing category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)

		categoryRepo.On("FindByName", ctx, "Mugs").Return(nil, shared.ErrNotFound)
		categoryRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		category, err := service.GetOrCreate(ctx, "Mugs")
		require.NoError(t, err)
		assert.Equal(t, "mugs", category.Slug)
		categoryRepo.AssertExpectations(t)
	})
}
