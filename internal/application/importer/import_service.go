package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const fetchAttempts = 3

// Report summarizes one import run
type Report struct {
	PagesImported   int `json:"pages_imported"`
	ProductsCreated int `json:"products_created"`
	ProductsUpdated int `json:"products_updated"`
}

// Service pulls the upstream catalog page by page and upserts it into the
// local one. Each page is committed in its own transaction, so a failing
// page aborts the run without losing the pages before it, and a rerun
// converges on the same state.
type Service struct {
	source CatalogSource
	scope  TransactionScope
	logger *zap.Logger
}

// NewService creates a new import Service
func NewService(source CatalogSource, scope TransactionScope, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		scope:  scope,
		logger: logger,
	}
}

// Run imports the full upstream catalog. It stops at the first page that
// cannot be fetched (after bounded retries) or persisted, returning the
// report for the pages that did land.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	for page := 1; ; page++ {
		products, err := s.fetchWithRetry(ctx, page)
		if err != nil {
			return report, err
		}
		if len(products) == 0 {
			break
		}

		err = s.scope.Execute(ctx, func(repos CatalogRepositories) error {
			for idx := range products {
				created, err := s.upsertProduct(ctx, repos, &products[idx])
				if err != nil {
					return fmt.Errorf("product %s: %w", products[idx].ExternalID, err)
				}
				if created {
					report.ProductsCreated++
				} else {
					report.ProductsUpdated++
				}
			}
			return nil
		})
		if err != nil {
			return report, shared.NewExternalServiceError("IMPORT_FAILED",
				fmt.Sprintf("Import aborted at page %d", page), err.Error())
		}

		report.PagesImported++
		s.logger.Info("catalog page imported",
			zap.Int("page", page),
			zap.Int("products", len(products)))
	}

	s.logger.Info("catalog import finished",
		zap.Int("pages", report.PagesImported),
		zap.Int("created", report.ProductsCreated),
		zap.Int("updated", report.ProductsUpdated))

	return report, nil
}

func (s *Service) fetchWithRetry(ctx context.Context, page int) ([]SourceProduct, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		products, err := s.source.FetchPage(ctx, page)
		if err == nil {
			return products, nil
		}
		lastErr = err

		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code != "EXTERNAL_SERVICE" {
			break
		}

		s.logger.Warn("catalog page fetch failed",
			zap.Int("page", page),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, lastErr
}

// upsertProduct creates or refreshes one product from its upstream shape.
// Returns true when the product was newly created.
func (s *Service) upsertProduct(ctx context.Context, repos CatalogRepositories, src *SourceProduct) (bool, error) {
	listPrice, discountPrice := resolvePricing(src)

	product, err := repos.ProductRepo().FindByExternalID(ctx, src.ExternalID)
	created := false
	switch {
	case err == nil:
		if product.Name != src.Title {
			if err := product.Rename(src.Title); err != nil {
				return false, err
			}
		}
		if err := product.SetPricing(listPrice, discountPrice); err != nil {
			return false, err
		}
		product.Vendor = src.Vendor
		product.Description = src.BodyHTML
		product.Touch()
	case errors.Is(err, shared.ErrNotFound):
		product, err = catalog.NewProduct(src.Title, listPrice)
		if err != nil {
			return false, err
		}
		externalID := src.ExternalID
		product.ExternalID = &externalID
		product.Vendor = src.Vendor
		product.Description = src.BodyHTML
		if err := product.SetPricing(listPrice, discountPrice); err != nil {
			return false, err
		}
		created = true
	default:
		return false, err
	}

	// Each comma-separated upstream tag becomes (or reuses) a category.
	for _, tag := range strings.Split(src.Tags, ",") {
		name := strings.TrimSpace(tag)
		if name == "" {
			continue
		}
		category, err := s.categoryFor(ctx, repos, name)
		if err != nil {
			return false, err
		}
		product.AddCategory(*category)
	}

	s.mergeVariants(product, src)
	s.mergeImages(product, src)

	if err := repos.ProductRepo().Save(ctx, product); err != nil {
		return false, err
	}
	return created, nil
}

func (s *Service) categoryFor(ctx context.Context, repos CatalogRepositories, name string) (*catalog.Category, error) {
	category, err := repos.CategoryRepo().FindByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	category, err = catalog.NewCategory(name, "")
	if err != nil {
		return nil, err
	}
	if err := repos.CategoryRepo().Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) mergeVariants(product *catalog.Product, src *SourceProduct) {
	for _, sv := range src.Variants {
		price := parsePrice(sv.Price)
		compareAt := parsePrice(sv.CompareAtPrice)

		if existing := product.VariantByExternalID(sv.ExternalID); existing != nil {
			existing.Title = sv.Title
			existing.Price = price
			existing.CompareAtPrice = compareAt
			existing.InventoryQuantity = sv.InventoryQuantity
			existing.Touch()
			continue
		}

		product.Variants = append(product.Variants, catalog.ProductVariant{
			BaseEntity:        shared.NewBaseEntity(),
			ProductID:         product.ID,
			ExternalVariantID: sv.ExternalID,
			Title:             sv.Title,
			Price:             price,
			CompareAtPrice:    compareAt,
			InventoryQuantity: sv.InventoryQuantity,
		})
	}
}

func (s *Service) mergeImages(product *catalog.Product, src *SourceProduct) {
	for _, si := range src.Images {
		if len(si.ExternalVariantIDs) == 0 {
			if !productHasImage(product, si.Src, nil) {
				product.Images = append(product.Images, catalog.ProductImage{
					BaseEntity: shared.NewBaseEntity(),
					ProductID:  product.ID,
					ImageURL:   si.Src,
				})
			}
			continue
		}

		for _, externalVariantID := range si.ExternalVariantIDs {
			variant := product.VariantByExternalID(externalVariantID)
			if variant == nil {
				continue
			}
			variantID := variant.ID
			if !productHasImage(product, si.Src, &variantID) {
				product.Images = append(product.Images, catalog.ProductImage{
					BaseEntity: shared.NewBaseEntity(),
					ProductID:  product.ID,
					ImageURL:   si.Src,
					VariantID:  &variantID,
				})
			}
		}
	}
}

// resolvePricing maps upstream variant pricing onto list and discount
// price. When the first variant carries a compare-at price above its
// selling price, the compare-at price becomes the list price and the
// selling price the discount.
func resolvePricing(src *SourceProduct) (decimal.Decimal, decimal.Decimal) {
	if len(src.Variants) == 0 {
		return decimal.Zero, decimal.Zero
	}

	price := parsePrice(src.Variants[0].Price)
	compareAt := parsePrice(src.Variants[0].CompareAtPrice)
	if compareAt.GreaterThan(price) {
		return compareAt, price
	}
	return price, decimal.Zero
}

func productHasImage(product *catalog.Product, url string, variantID *uuid.UUID) bool {
	for idx := range product.Images {
		img := &product.Images[idx]
		if img.ImageURL != url {
			continue
		}
		if variantID == nil && img.VariantID == nil {
			return true
		}
		if variantID != nil && img.VariantID != nil && *variantID == *img.VariantID {
			return true
		}
	}
	return false
}

func parsePrice(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return price
}
