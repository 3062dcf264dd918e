package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/catalog"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

// Imagen por defecto cuando el producto llega sin URL.
const defaultProductImage = "https://placehold.co/400x300?text=Samsung+Product"

// ProductUseCase catálogo de productos con taxonomía de dos niveles.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   ProductTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx ProductTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx}
}

// List lista el catálogo paginado, opcionalmente filtrado por categoría.
func (uc *ProductUseCase) List(category string, page, size int) (*dto.Page[dto.ProductResponse], error) {
	if category != "" && !catalog.ValidCategory(category) {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, category)
	}
	page, size = dto.NormalizePage(page, size)
	list, total, err := uc.repo.List(category, size, page*size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	out := dto.NewPage(items, total, page, size)
	return &out, nil
}

// GetByID devuelve un producto o nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Create valida taxonomía y unicidad de SKU, y persiste el producto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(p.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, p.SKU)
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// CreateBulk persiste un lote de productos en una sola transacción;
// cualquier fila inválida o SKU duplicado aborta el lote completo.
func (uc *ProductUseCase) CreateBulk(ctx context.Context, ins []dto.CreateProductRequest) ([]dto.ProductResponse, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: lote vacío", domain.ErrInvalidInput)
	}
	var out []dto.ProductResponse
	err := uc.tx.RunProducts(ctx, func(repo repository.ProductRepository) error {
		for i, in := range ins {
			p, err := buildProduct(in)
			if err != nil {
				return fmt.Errorf("%w (fila %d)", err, i+1)
			}
			existing, err := repo.GetBySKU(p.SKU)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: SKU %s (fila %d)", domain.ErrDuplicate, p.SKU, i+1)
			}
			if err := repo.Create(p); err != nil {
				return err
			}
			out = append(out, *toProductResponse(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Categories devuelve la taxonomía completa: categoría -> subcategorías.
func (uc *ProductUseCase) Categories() map[string][]string {
	return map[string][]string{
		catalog.WhiteGoods: catalog.SubCategories(catalog.WhiteGoods),
		catalog.BrownGoods: catalog.SubCategories(catalog.BrownGoods),
	}
}

func buildProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, fmt.Errorf("%w: nombre y SKU son requeridos", domain.ErrInvalidInput)
	}
	category := catalog.NormalizeCategory(in.Category)
	if !catalog.ValidCategory(category) {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	subCategory := strings.TrimSpace(in.SubCategory)
	if !catalog.ValidSubCategory(category, subCategory) {
		return nil, fmt.Errorf("%w: subcategoría %q no pertenece a %s", domain.ErrInvalidInput, in.SubCategory, category)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = defaultProductImage
	}
	now := time.Now()
	return &entity.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		SKU:         sku,
		Category:    category,
		SubCategory: subCategory,
		Price:       in.Price,
		ImageURL:    imageURL,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
