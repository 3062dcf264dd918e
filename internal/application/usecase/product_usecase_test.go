package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/catalog"
)

func newProductUC() (*usecase.ProductUseCase, *fakeProductRepo) {
	repo := newFakeProductRepo()
	tx := &fakeTxRunner{products: repo}
	return usecase.NewProductUseCase(repo, tx), repo
}

func validProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        "Samsung Réfrigérateur RT38",
		SKU:         "RT38K5552S8",
		Category:    catalog.WhiteGoods,
		SubCategory: "Réfrigérateur",
		Price:       decimal.NewFromInt(7990),
		Stock:       12,
	}
}

func TestProductCreate_Valido(t *testing.T) {
	uc, _ := newProductUC()

	resp, err := uc.Create(validProductRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, catalog.WhiteGoods, resp.Category)
	assert.Equal(t, "Réfrigérateur", resp.SubCategory)
}

func TestProductCreate_SinImagenUsaPlaceholder(t *testing.T) {
	uc, _ := newProductUC()

	resp, err := uc.Create(validProductRequest())
	require.NoError(t, err)
	assert.Contains(t, resp.ImageURL, "placehold.co")
}

func TestProductCreate_NormalizaVariantesDeCategoria(t *testing.T) {
	uc, _ := newProductUC()

	in := validProductRequest()
	in.Category = "White Goods"
	resp, err := uc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, catalog.WhiteGoods, resp.Category)
}

func TestProductCreate_SKUDuplicadoFalla(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(validProductRequest())
	require.NoError(t, err)

	in := validProductRequest()
	in.Name = "Otro nombre"
	resp, err := uc.Create(in)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_SubcategoriaDeCategoriaEquivocadaFalla(t *testing.T) {
	uc, _ := newProductUC()

	// "Téléviseur" pertenece a BROWN_GOODS: la selección es en cascada.
	in := validProductRequest()
	in.SubCategory = "Téléviseur"
	resp, err := uc.Create(in)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newProductUC()

	cases := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
	}{
		{"nombre vacío", func(in *dto.CreateProductRequest) { in.Name = " " }},
		{"sku vacío", func(in *dto.CreateProductRequest) { in.SKU = "" }},
		{"categoría desconocida", func(in *dto.CreateProductRequest) { in.Category = "GREY_GOODS" }},
		{"precio negativo", func(in *dto.CreateProductRequest) { in.Price = decimal.NewFromInt(-1) }},
		{"stock negativo", func(in *dto.CreateProductRequest) { in.Stock = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validProductRequest()
			tc.mutate(&in)
			resp, err := uc.Create(in)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductCreateBulk_SKURepetidoEnElLoteFalla(t *testing.T) {
	uc, _ := newProductUC()

	out, err := uc.CreateBulk(context.Background(), []dto.CreateProductRequest{
		validProductRequest(),
		validProductRequest(),
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestProductList_FiltraPorCategoria(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(validProductRequest())
	require.NoError(t, err)

	tv := dto.CreateProductRequest{
		Name:        "Samsung QLED 55",
		SKU:         "QE55Q80",
		Category:    catalog.BrownGoods,
		SubCategory: "Téléviseur",
		Price:       decimal.NewFromInt(11990),
	}
	_, err = uc.Create(tv)
	require.NoError(t, err)

	page, err := uc.List(catalog.BrownGoods, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "QE55Q80", page.Content[0].SKU)
}

func TestProductList_CategoriaDesconocidaFalla(t *testing.T) {
	uc, _ := newProductUC()

	page, err := uc.List("GREY_GOODS", 0, 20)
	assert.Nil(t, page)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCategories_TaxonomiaCompleta(t *testing.T) {
	uc, _ := newProductUC()

	cats := uc.Categories()
	require.Len(t, cats, 2)
	assert.Len(t, cats[catalog.WhiteGoods], 7)
	assert.Len(t, cats[catalog.BrownGoods], 7)
	assert.Contains(t, cats[catalog.WhiteGoods], "Lave-linge")
	assert.Contains(t, cats[catalog.BrownGoods], "Smartphone")
}
