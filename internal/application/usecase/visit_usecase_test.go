package usecase_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/catalog"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
)

type visitFixture struct {
	uc          *usecase.VisitUseCase
	visits      *fakeVisitRepo
	sellouts    *fakeSelloutRepo
	assignments *fakeAssignmentRepo
	products    *fakeProductRepo
	promoter    *entity.User
	store       *entity.Store
}

func newVisitFixture(t *testing.T) *visitFixture {
	t.Helper()
	visits := newFakeVisitRepo()
	sellouts := newFakeSelloutRepo()
	interactions := newFakeInteractionRepo()
	users := newFakeUserRepo()
	stores := newFakeStoreRepo()
	assignments := newFakeAssignmentRepo()
	products := newFakeProductRepo()

	promoter := &entity.User{
		FullName: "Anass El Amrani",
		Email:    "anass.promoter@samsung.ma",
		Role:     entity.RolePromoter,
		Status:   entity.UserStatusActive,
	}
	require.NoError(t, users.Create(promoter))

	store := &entity.Store{
		Name:      "ElectroPlanet Marjane Californie",
		Type:      entity.StoreTypeOR,
		City:      "Casablanca",
		Latitude:  33.5731,
		Longitude: -7.5898,
	}
	require.NoError(t, stores.Create(store))

	return &visitFixture{
		uc:          usecase.NewVisitUseCase(visits, sellouts, interactions, users, stores, assignments, products),
		visits:      visits,
		sellouts:    sellouts,
		assignments: assignments,
		products:    products,
		promoter:    promoter,
		store:       store,
	}
}

func (f *visitFixture) submit(t *testing.T, in dto.VisitSubmitRequest) *dto.VisitSubmitResponse {
	t.Helper()
	in.UserID = f.promoter.ID
	in.StoreID = f.store.ID
	resp, err := f.uc.Submit(in)
	require.NoError(t, err)
	return resp
}

// ══════════════════════════════════════════════════════════════
// Submit
// ══════════════════════════════════════════════════════════════

func TestVisitSubmit_EstadoInicialCompleted(t *testing.T) {
	f := newVisitFixture(t)

	resp := f.submit(t, dto.VisitSubmitRequest{ShelfShare: 0.35, Comment: "RAS"})
	assert.Equal(t, entity.VisitCompleted, resp.Visit.Status)
	assert.True(t, resp.Visit.SalesAmount.IsZero())
	assert.Equal(t, f.store.Name, resp.Visit.StoreName)
	assert.False(t, resp.OutsideGeofence)
	assert.Nil(t, resp.DistanceToStore)
}

func TestVisitSubmit_DentroDelRadio(t *testing.T) {
	f := newVisitFixture(t)

	// A unos metros de la tienda.
	lat, lng := 33.5732, -7.5899
	resp := f.submit(t, dto.VisitSubmitRequest{CheckInLatitude: &lat, CheckInLongitude: &lng})
	require.NotNil(t, resp.DistanceToStore)
	assert.Less(t, *resp.DistanceToStore, int64(usecase.GeofenceRadiusMeters))
	assert.False(t, resp.OutsideGeofence)
	assert.NotContains(t, resp.Visit.Comment, "Géorepérage")
}

func TestVisitSubmit_FueraDelRadioAgregaAdvertencia(t *testing.T) {
	f := newVisitFixture(t)

	// Rabat está a ~87 km de la tienda de Casablanca.
	lat, lng := 34.0209, -6.8416
	resp := f.submit(t, dto.VisitSubmitRequest{CheckInLatitude: &lat, CheckInLongitude: &lng, Comment: "RAS"})
	require.NotNil(t, resp.DistanceToStore)
	assert.Greater(t, *resp.DistanceToStore, int64(usecase.GeofenceRadiusMeters))
	assert.True(t, resp.OutsideGeofence)
	assert.True(t, strings.HasPrefix(resp.Visit.Comment, "RAS\n"))
	assert.Contains(t, resp.Visit.Comment, "Géorepérage")
	assert.Contains(t, resp.Visit.Comment, "rayon autorisé: 500 m")
}

func TestVisitSubmit_ShelfShareFueraDeRangoFalla(t *testing.T) {
	f := newVisitFixture(t)

	for _, share := range []float64{-0.1, 1.5} {
		resp, err := f.uc.Submit(dto.VisitSubmitRequest{
			UserID: f.promoter.ID, StoreID: f.store.ID, ShelfShare: share,
		})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestVisitSubmit_EstampaCheckTimesDeLaAsignacion(t *testing.T) {
	f := newVisitFixture(t)

	a := &entity.Assignment{
		Status:  entity.AssignmentInProgress,
		UserID:  f.promoter.ID,
		StoreID: f.store.ID,
		Tasks: []entity.TaskItem{
			{Description: "Vérifier le linéaire", Status: entity.TaskDone},
			{Description: "Photo du rayon", Status: entity.TaskTodo},
		},
	}
	require.NoError(t, f.assignments.Create(a))

	resp := f.submit(t, dto.VisitSubmitRequest{AssignmentID: &a.ID})
	assert.Equal(t, 2, resp.Visit.TotalTasks)
	assert.Equal(t, 1, resp.Visit.CompletedTasks)

	stored, err := f.assignments.GetByID(a.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.CheckInTime)
	assert.NotNil(t, stored.CheckOutTime)
}

func TestVisitSubmit_AsignacionInexistenteFalla(t *testing.T) {
	f := newVisitFixture(t)

	missing := int64(42)
	resp, err := f.uc.Submit(dto.VisitSubmitRequest{
		UserID: f.promoter.ID, StoreID: f.store.ID, AssignmentID: &missing,
	})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
}

// ══════════════════════════════════════════════════════════════
// UpdateStatus: VALIDATED/REJECTED exactamente una vez
// ══════════════════════════════════════════════════════════════

func TestVisitUpdateStatus_Valida(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})

	resp, err := f.uc.UpdateStatus(created.Visit.ID, entity.VisitValidated)
	require.NoError(t, err)
	assert.Equal(t, entity.VisitValidated, resp.Status)
}

func TestVisitUpdateStatus_SegundaRevisionFalla(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})

	_, err := f.uc.UpdateStatus(created.Visit.ID, entity.VisitRejected)
	require.NoError(t, err)

	for _, status := range []string{entity.VisitValidated, entity.VisitRejected} {
		resp, err := f.uc.UpdateStatus(created.Visit.ID, status)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, domain.ErrVisitAlreadyReviewed)
	}
}

func TestVisitUpdateStatus_EstadoInvalidoFalla(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})

	for _, status := range []string{"COMPLETED", "APPROVED", ""} {
		resp, err := f.uc.UpdateStatus(created.Visit.ID, status)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestVisitUpdateStatus_InexistenteFalla(t *testing.T) {
	f := newVisitFixture(t)

	resp, err := f.uc.UpdateStatus(42, entity.VisitValidated)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrVisitNotFound)
}

// ══════════════════════════════════════════════════════════════
// Sellouts
// ══════════════════════════════════════════════════════════════

func (f *visitFixture) seedProduct(t *testing.T) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:        "Samsung Réfrigérateur RT38",
		SKU:         "RT38K5552S8",
		Category:    catalog.WhiteGoods,
		SubCategory: "Réfrigérateur",
		Price:       decimal.NewFromInt(7990),
	}
	require.NoError(t, f.products.Create(p))
	return p
}

func TestAddSellout_RecalculaElMontoDeLaVisita(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})
	p := f.seedProduct(t)

	s1, err := f.uc.AddSellout(created.Visit.ID, dto.SelloutCreateRequest{
		ProductID: p.ID, Quantity: 2, Amount: decimal.NewFromInt(15980),
	})
	require.NoError(t, err)
	assert.Equal(t, p.Name, s1.ProductName)

	_, err = f.uc.AddSellout(created.Visit.ID, dto.SelloutCreateRequest{
		ProductID: p.ID, Quantity: 1, Amount: decimal.NewFromInt(7990),
	})
	require.NoError(t, err)

	v, err := f.visits.GetByID(created.Visit.ID)
	require.NoError(t, err)
	assert.True(t, v.SalesAmount.Equal(decimal.NewFromInt(23970)))
}

func TestAddSellout_CantidadNoPositivaFalla(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})
	p := f.seedProduct(t)

	resp, err := f.uc.AddSellout(created.Visit.ID, dto.SelloutCreateRequest{ProductID: p.ID, Quantity: 0})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddSellout_ProductoInexistenteFalla(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})

	resp, err := f.uc.AddSellout(created.Visit.ID, dto.SelloutCreateRequest{ProductID: 42, Quantity: 1})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteSellout_RecalculaYVerificaPertenencia(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})
	p := f.seedProduct(t)

	s, err := f.uc.AddSellout(created.Visit.ID, dto.SelloutCreateRequest{
		ProductID: p.ID, Quantity: 1, Amount: decimal.NewFromInt(7990),
	})
	require.NoError(t, err)

	// Otro visitID no puede borrar la línea.
	err = f.uc.DeleteSellout(created.Visit.ID+1, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.uc.DeleteSellout(created.Visit.ID, s.ID))
	v, err := f.visits.GetByID(created.Visit.ID)
	require.NoError(t, err)
	assert.True(t, v.SalesAmount.IsZero())
}

// ══════════════════════════════════════════════════════════════
// Interacciones
// ══════════════════════════════════════════════════════════════

func TestAddInteraction_ResuelveProductoOpcional(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})
	p := f.seedProduct(t)

	resp, err := f.uc.AddInteraction(created.Visit.ID, dto.InteractionCreateRequest{
		ProductID: &p.ID, Gender: "F", Color: "Inox",
	})
	require.NoError(t, err)
	assert.Equal(t, p.Name, resp.ProductName)

	sinProducto, err := f.uc.AddInteraction(created.Visit.ID, dto.InteractionCreateRequest{Gender: "M"})
	require.NoError(t, err)
	assert.Empty(t, sinProducto.ProductName)
}

func TestAddInteraction_VisitaInexistenteFalla(t *testing.T) {
	f := newVisitFixture(t)

	resp, err := f.uc.AddInteraction(42, dto.InteractionCreateRequest{})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrVisitNotFound)
}

// ══════════════════════════════════════════════════════════════
// Listados
// ══════════════════════════════════════════════════════════════

func TestVisitList_IncluyeSelloutsEInteracciones(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{ShelfShare: 0.4})
	p := f.seedProduct(t)

	_, err := f.uc.AddSellout(created.Visit.ID, dto.SelloutCreateRequest{
		ProductID: p.ID, Quantity: 1, Amount: decimal.NewFromInt(7990),
	})
	require.NoError(t, err)
	_, err = f.uc.AddInteraction(created.Visit.ID, dto.InteractionCreateRequest{Gender: "F", Color: "Inox"})
	require.NoError(t, err)

	// La consola lista las visitas con sus hijos ya cargados.
	list, err := f.uc.List(nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].SelloutItems, 1)
	assert.Equal(t, p.Name, list[0].SelloutItems[0].ProductName)
	require.Len(t, list[0].Interactions, 1)
	assert.Equal(t, "F", list[0].Interactions[0].Gender)

	porUsuario, err := f.uc.List(&f.promoter.ID, nil)
	require.NoError(t, err)
	require.Len(t, porUsuario, 1)
	assert.Len(t, porUsuario[0].SelloutItems, 1)
	assert.Len(t, porUsuario[0].Interactions, 1)
}

func TestVisitList_SinHijosDevuelveListasVacias(t *testing.T) {
	f := newVisitFixture(t)
	f.submit(t, dto.VisitSubmitRequest{})

	list, err := f.uc.List(nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].SelloutItems)
	assert.Empty(t, list[0].SelloutItems)
	assert.NotNil(t, list[0].Interactions)
	assert.Empty(t, list[0].Interactions)
}

// ══════════════════════════════════════════════════════════════
// Stats
// ══════════════════════════════════════════════════════════════

func TestVisitStats_ExcluyeVisitasRevisadas(t *testing.T) {
	f := newVisitFixture(t)
	primera := f.submit(t, dto.VisitSubmitRequest{ShelfShare: 0.2})
	f.submit(t, dto.VisitSubmitRequest{ShelfShare: 0.4})
	p := f.seedProduct(t)
	_, err := f.uc.AddSellout(primera.Visit.ID, dto.SelloutCreateRequest{
		ProductID: p.ID, Quantity: 1, Amount: decimal.NewFromInt(7990),
	})
	require.NoError(t, err)

	stats, err := f.uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVisits)
	assert.True(t, stats.TotalSales.Equal(decimal.NewFromInt(7990)))

	// Al validarse, la primera visita sale de los agregados.
	_, err = f.uc.UpdateStatus(primera.Visit.ID, entity.VisitValidated)
	require.NoError(t, err)

	stats, err = f.uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisits)
	assert.True(t, stats.TotalSales.IsZero())
	assert.InDelta(t, 0.4, stats.AvgShelfShare, 1e-9)
}

// ══════════════════════════════════════════════════════════════
// Fotos
// ══════════════════════════════════════════════════════════════

func TestAttachPhoto_PersisteLaURL(t *testing.T) {
	f := newVisitFixture(t)
	created := f.submit(t, dto.VisitSubmitRequest{})

	url := "/uploads/photos/visit-1-a1b2c3d4.jpg"
	require.NoError(t, f.uc.AttachPhoto(created.Visit.ID, url))

	resp, err := f.uc.GetByID(created.Visit.ID)
	require.NoError(t, err)
	assert.Equal(t, url, resp.PhotoURL)
}

func TestAttachPhoto_VisitaInexistenteFalla(t *testing.T) {
	f := newVisitFixture(t)

	err := f.uc.AttachPhoto(42, "/uploads/photos/visit-42-a1b2c3d4.jpg")
	assert.ErrorIs(t, err, domain.ErrVisitNotFound)
}
