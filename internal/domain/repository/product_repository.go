package repository

import "github.com/merchmaroc/merchandising-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// List devuelve también el total para el envelope de paginación.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(category string, limit, offset int) ([]*entity.Product, int64, error)
}
