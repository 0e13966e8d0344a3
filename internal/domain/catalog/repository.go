package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByExternalID(ctx context.Context, externalID string) (*Product, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindFeatured(ctx context.Context) ([]Product, error)
	FindByCategorySlug(ctx context.Context, categorySlug string, filter shared.Filter) ([]Product, error)
	Search(ctx context.Context, query string, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	CountActive(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
