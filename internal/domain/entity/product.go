package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product un producto del catálogo. Category/SubCategory forman una taxonomía
// de dos niveles con vocabulario fijo (ver internal/domain/catalog).
type Product struct {
	ID          int64
	Name        string
	Description string
	SKU         string // único en el catálogo
	Category    string // WHITE_GOODS | BROWN_GOODS
	SubCategory string
	Price       decimal.Decimal
	ImageURL    string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
