package dto

// CreateNamedRequest payload for products and firms.
type CreateNamedRequest struct {
	Name string `json:"name"`
}

// LinkFirmProductRequest payload.
type LinkFirmProductRequest struct {
	ProductID int64 `json:"product_id"`
}

// ProductResponse represents a catalog product.
type ProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FirmResponse represents a catalog firm.
type FirmResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FirmProductResponse represents a firm↔product link.
type FirmProductResponse struct {
	ID        int64 `json:"id"`
	FirmID    int64 `json:"firm_id"`
	ProductID int64 `json:"product_id"`
}
