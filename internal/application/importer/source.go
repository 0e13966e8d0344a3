package importer

import "context"

// SourceProduct is a product as delivered by the upstream shop platform
type SourceProduct struct {
	ExternalID string
	Title      string
	BodyHTML   string
	Vendor     string
	// Tags is the upstream comma-separated tag string; each tag maps to
	// a catalog category.
	Tags     string
	Variants []SourceVariant
	Images   []SourceImage
}

// SourceVariant is an upstream product variant
type SourceVariant struct {
	ExternalID        string
	Title             string
	Price             string
	CompareAtPrice    string
	InventoryQuantity int
}

// SourceImage is an upstream product image, optionally tied to variants
type SourceImage struct {
	Src                string
	ExternalVariantIDs []string
}

// CatalogSource is the outbound port to the upstream shop platform.
// FetchPage returns one page of products; an empty slice means the
// catalog is exhausted.
type CatalogSource interface {
	FetchPage(ctx context.Context, page int) ([]SourceProduct, error)
}
