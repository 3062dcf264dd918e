package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. SubCategory debe
// pertenecer al vocabulario de Category; ImageURL vacío usa el placeholder.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	SKU         string          `json:"sku" validate:"required"`
	Category    string          `json:"category" validate:"required,oneof=WHITE_GOODS BROWN_GOODS"`
	SubCategory string          `json:"subCategory" validate:"required"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price,omitempty"`
	Stock       int             `json:"stock,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	ImageURL    string          `json:"imageUrl"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}
