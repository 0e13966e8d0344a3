package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/michealzs/storemicroservice/internal/application/importer"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/infrastructure/config"
)

// maxShopifyResponseSize limits the response body size to prevent memory exhaustion
const maxShopifyResponseSize = 10 * 1024 * 1024 // 10MB max response

// ShopifyAdapter implements importer.CatalogSource against the Shopify
// Admin API. Authentication is a shop-scoped access token sent as a
// request header.
type ShopifyAdapter struct {
	config     *config.ShopifyConfig
	httpClient *http.Client
}

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(cfg *config.ShopifyConfig) *ShopifyAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ShopifyAdapter{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchPage fetches one page of products from the upstream catalog.
// Transport failures and upstream 5xx responses come back as retryable
// EXTERNAL_SERVICE errors; 4xx responses are credential or request
// problems that retrying cannot fix, so they come back as IMPORT_FAILED.
func (a *ShopifyAdapter) FetchPage(ctx context.Context, page int) ([]importer.SourceProduct, error) {
	url := a.config.ProductsURL(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, shared.NewExternalServiceError("EXTERNAL_SERVICE",
			"Upstream catalog is unreachable", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShopifyResponseSize))
	if err != nil {
		return nil, shared.NewExternalServiceError("EXTERNAL_SERVICE",
			"Failed to read upstream response", err.Error())
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, shared.NewExternalServiceError("EXTERNAL_SERVICE",
			"Upstream catalog returned a server error",
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)))
	case resp.StatusCode >= 400:
		return nil, shared.NewExternalServiceError("IMPORT_FAILED",
			"Upstream catalog rejected the request",
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)))
	}

	var payload shopifyProductsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, shared.NewExternalServiceError("IMPORT_FAILED",
			"Upstream catalog returned malformed JSON", err.Error())
	}

	products := make([]importer.SourceProduct, len(payload.Products))
	for i, p := range payload.Products {
		products[i] = convertShopifyProduct(p)
	}
	return products, nil
}

// convertShopifyProduct maps an Admin API product onto the importer's
// source model. Numeric upstream IDs become strings so the catalog never
// depends on the platform's ID format.
func convertShopifyProduct(p shopifyProduct) importer.SourceProduct {
	product := importer.SourceProduct{
		ExternalID: strconv.FormatInt(p.ID, 10),
		Title:      p.Title,
		BodyHTML:   p.BodyHTML,
		Vendor:     p.Vendor,
		Tags:       p.Tags,
		Variants:   make([]importer.SourceVariant, len(p.Variants)),
		Images:     make([]importer.SourceImage, len(p.Images)),
	}
	for i, v := range p.Variants {
		product.Variants[i] = importer.SourceVariant{
			ExternalID:        strconv.FormatInt(v.ID, 10),
			Title:             v.Title,
			Price:             v.Price,
			CompareAtPrice:    v.CompareAtPrice,
			InventoryQuantity: v.InventoryQuantity,
		}
	}
	for i, img := range p.Images {
		variantIDs := make([]string, len(img.VariantIDs))
		for j, id := range img.VariantIDs {
			variantIDs[j] = strconv.FormatInt(id, 10)
		}
		product.Images[i] = importer.SourceImage{
			Src:                img.Src,
			ExternalVariantIDs: variantIDs,
		}
	}
	return product
}

var _ importer.CatalogSource = (*ShopifyAdapter)(nil)
