package ecommerce

// shopifyProductsResponse is the envelope of the Admin API products endpoint
type shopifyProductsResponse struct {
	Products []shopifyProduct `json:"products"`
}

// shopifyProduct mirrors the Admin API product payload
type shopifyProduct struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	BodyHTML string           `json:"body_html"`
	Vendor   string           `json:"vendor"`
	Tags     string           `json:"tags"`
	Variants []shopifyVariant `json:"variants"`
	Images   []shopifyImage   `json:"images"`
}

// shopifyVariant mirrors the Admin API variant payload. Prices arrive as
// decimal strings.
type shopifyVariant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	CompareAtPrice    string `json:"compare_at_price"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// shopifyImage mirrors the Admin API image payload
type shopifyImage struct {
	ID         int64   `json:"id"`
	Src        string  `json:"src"`
	VariantIDs []int64 `json:"variant_ids"`
}
