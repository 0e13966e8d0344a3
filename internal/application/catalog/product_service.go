package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	slug := catalog.Slugify(req.Name)
	existing, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this name already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	product.Vendor = req.Vendor
	product.Description = req.Description
	if req.DiscountPrice != nil {
		if err := product.SetPricing(req.Price, *req.DiscountPrice); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured {
		product.SetFeatured(true)
	}

	for _, categorySlug := range req.CategorySlugs {
		category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found: "+categorySlug)
			}
			return nil, err
		}
		product.AddCategory(*category)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Update modifies an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		product.Description = *req.Description
		product.Touch()
	}
	if req.Price != nil || req.DiscountPrice != nil {
		price := product.Price
		discount := product.DiscountPrice
		if req.Price != nil {
			price = *req.Price
		}
		if req.DiscountPrice != nil {
			discount = *req.DiscountPrice
		}
		if err := product.SetPricing(price, discount); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}
	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetBySlug returns an active product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// List returns a page of active products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, *ToProductResponse(&products[idx]))
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListFeatured returns the featured products for the storefront landing page
func (s *ProductService) ListFeatured(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, *ToProductResponse(&products[idx]))
	}
	return responses, nil
}

// ListByCategory returns active products belonging to a category
func (s *ProductService) ListByCategory(ctx context.Context, categorySlug string, filter shared.Filter) ([]ProductResponse, error) {
	if _, err := s.categoryRepo.FindBySlug(ctx, categorySlug); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindByCategorySlug(ctx, categorySlug, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, *ToProductResponse(&products[idx]))
	}
	return responses, nil
}

// Search returns active products matching a free-text query against name
// and vendor. A blank query yields an empty result rather than the full
// catalog.
func (s *ProductService) Search(ctx context.Context, query string, filter shared.Filter) ([]ProductResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []ProductResponse{}, nil
	}

	products, err := s.productRepo.Search(ctx, query, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, *ToProductResponse(&products[idx]))
	}
	return responses, nil
}

// SetSale puts a product on sale at the given discount price
func (s *ProductService) SetSale(ctx context.Context, id uuid.UUID, discountPrice decimal.Decimal) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetPricing(product.Price, discountPrice); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}
