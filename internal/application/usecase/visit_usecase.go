package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

// GeofenceRadiusMeters radio alrededor de la tienda dentro del cual un envío
// se considera hecho en sitio. Fuera del radio la visita se acepta igual,
// pero se marca con una advertencia en el comentario.
const GeofenceRadiusMeters = 500.0

const earthRadiusMeters = 6371000.0

// VisitUseCase ciclo de vida de las visitas: envío desde el móvil, revisión
// del supervisor (VALIDATED/REJECTED, exactamente una vez), sellouts e
// interacciones asociados.
type VisitUseCase struct {
	repo            repository.VisitRepository
	selloutRepo     repository.SelloutRepository
	interactionRepo repository.InteractionRepository
	userRepo        repository.UserRepository
	storeRepo       repository.StoreRepository
	assignmentRepo  repository.AssignmentRepository
	productRepo     repository.ProductRepository
}

// NewVisitUseCase construye el caso de uso.
func NewVisitUseCase(
	repo repository.VisitRepository,
	selloutRepo repository.SelloutRepository,
	interactionRepo repository.InteractionRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	assignmentRepo repository.AssignmentRepository,
	productRepo repository.ProductRepository,
) *VisitUseCase {
	return &VisitUseCase{
		repo:            repo,
		selloutRepo:     selloutRepo,
		interactionRepo: interactionRepo,
		userRepo:        userRepo,
		storeRepo:       storeRepo,
		assignmentRepo:  assignmentRepo,
		productRepo:     productRepo,
	}
}

// Submit registra una visita enviada desde el móvil. Si hay coordenadas de
// check-in se calcula la distancia haversine a la tienda; fuera del radio
// permitido se añade una advertencia al comentario y se reporta en la
// respuesta. Si la visita referencia una asignación, se estampan sus horas
// de check-in/check-out.
func (uc *VisitUseCase) Submit(in dto.VisitSubmitRequest) (*dto.VisitSubmitResponse, error) {
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}
	if in.ShelfShare < 0 || in.ShelfShare > 1 {
		return nil, fmt.Errorf("%w: shelfShare debe estar entre 0 y 1", domain.ErrInvalidInput)
	}

	now := time.Now()
	v := &entity.Visit{
		VisitDate:        now,
		Status:           entity.VisitCompleted,
		SalesAmount:      decimal.Zero,
		ShelfShare:       in.ShelfShare,
		Comment:          in.Comment,
		CheckInLatitude:  in.CheckInLatitude,
		CheckInLongitude: in.CheckInLongitude,
		UserID:           user.ID,
		StoreID:          store.ID,
		AssignmentID:     in.AssignmentID,
		UserName:         user.FullName,
		UserRole:         user.Role,
		StoreName:        store.Name,
		StoreCity:        store.City,
	}

	out := &dto.VisitSubmitResponse{GeofenceRadius: int(GeofenceRadiusMeters)}
	if in.CheckInLatitude != nil && in.CheckInLongitude != nil {
		dist := haversineMeters(*in.CheckInLatitude, *in.CheckInLongitude, store.Latitude, store.Longitude)
		rounded := int64(math.Round(dist))
		out.DistanceToStore = &rounded
		if dist > GeofenceRadiusMeters {
			out.OutsideGeofence = true
			v.Comment += fmt.Sprintf("\n⚠️ Géorepérage: %.0f m du magasin (rayon autorisé: %.0f m)", dist, GeofenceRadiusMeters)
		}
	}

	if in.AssignmentID != nil {
		a, err := uc.assignmentRepo.GetByID(*in.AssignmentID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, domain.ErrAssignmentNotFound
		}
		v.TotalTasks = len(a.Tasks)
		v.CompletedTasks = a.CompletedTasks()
		checkIn := a.CheckInTime
		if checkIn == nil {
			checkIn = &now
		}
		if err := uc.assignmentRepo.UpdateCheckTimes(a.ID, checkIn, &now); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Create(v); err != nil {
		return nil, err
	}
	out.Visit = *uc.toVisitResponse(v, false)
	return out, nil
}

// GetByID devuelve una visita con sus sellouts e interacciones, o nil.
func (uc *VisitUseCase) GetByID(id int64) (*dto.VisitResponse, error) {
	v, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return uc.toVisitResponse(v, true), nil
}

// List lista todas las visitas (consola), opcionalmente por usuario o tienda.
// Cada visita sale enriquecida con sus sellouts e interacciones; los hijos se
// cargan por lote, no visita a visita.
func (uc *VisitUseCase) List(userID, storeID *int64) ([]dto.VisitResponse, error) {
	var (
		list []*entity.Visit
		err  error
	)
	switch {
	case userID != nil:
		list, err = uc.repo.ListByUser(*userID)
	case storeID != nil:
		list, err = uc.repo.ListByStore(*storeID)
	default:
		list, err = uc.repo.ListAll()
	}
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.ID)
	}
	selloutsByVisit, err := uc.selloutRepo.ListByVisits(ids)
	if err != nil {
		return nil, err
	}
	interactionsByVisit, err := uc.interactionRepo.ListByVisits(ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VisitResponse, 0, len(list))
	for _, v := range list {
		resp := uc.toVisitResponse(v, false)
		for _, s := range selloutsByVisit[v.ID] {
			resp.SelloutItems = append(resp.SelloutItems, *toSelloutResponse(s))
		}
		for _, i := range interactionsByVisit[v.ID] {
			resp.Interactions = append(resp.Interactions, *toInteractionResponse(i))
		}
		out = append(out, *resp)
	}
	return out, nil
}

// UpdateStatus aplica la revisión del supervisor. La transición
// COMPLETED -> VALIDATED|REJECTED ocurre exactamente una vez: una visita ya
// revisada devuelve conflicto.
func (uc *VisitUseCase) UpdateStatus(id int64, status string) (*dto.VisitResponse, error) {
	if status != entity.VisitValidated && status != entity.VisitRejected {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	v, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVisitNotFound
	}
	if v.Reviewed() {
		return nil, domain.ErrVisitAlreadyReviewed
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	v.Status = status
	return uc.toVisitResponse(v, true), nil
}

// Stats KPIs agregados de visitas.
func (uc *VisitUseCase) Stats() (*dto.VisitStatsResponse, error) {
	total, err := uc.repo.CountCompleted()
	if err != nil {
		return nil, err
	}
	sales, err := uc.repo.SumSales()
	if err != nil {
		return nil, err
	}
	share, err := uc.repo.AvgShelfShare()
	if err != nil {
		return nil, err
	}
	return &dto.VisitStatsResponse{TotalVisits: total, TotalSales: sales, AvgShelfShare: share}, nil
}

// AttachPhoto vincula la URL pública de una foto ya almacenada a la visita.
func (uc *VisitUseCase) AttachPhoto(visitID int64, photoURL string) error {
	v, err := uc.repo.GetByID(visitID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrVisitNotFound
	}
	return uc.repo.UpdatePhotoURL(visitID, photoURL)
}

// AddSellout registra una línea de venta en la visita y recalcula el monto
// total de ventas de la visita.
func (uc *VisitUseCase) AddSellout(visitID int64, in dto.SelloutCreateRequest) (*dto.SelloutResponse, error) {
	v, err := uc.repo.GetByID(visitID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVisitNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
	}
	s := &entity.Sellout{
		VisitID:     visitID,
		ProductID:   product.ID,
		Quantity:    in.Quantity,
		Amount:      in.Amount,
		CreatedAt:   time.Now(),
		ProductName: product.Name,
		ProductSKU:  product.SKU,
	}
	if err := uc.selloutRepo.Create(s); err != nil {
		return nil, err
	}
	if err := uc.refreshSalesAmount(visitID); err != nil {
		return nil, err
	}
	return toSelloutResponse(s), nil
}

// DeleteSellout elimina una línea de venta y recalcula el monto de la visita.
func (uc *VisitUseCase) DeleteSellout(visitID, selloutID int64) error {
	s, err := uc.selloutRepo.GetByID(selloutID)
	if err != nil {
		return err
	}
	if s == nil || s.VisitID != visitID {
		return domain.ErrNotFound
	}
	if err := uc.selloutRepo.Delete(selloutID); err != nil {
		return err
	}
	return uc.refreshSalesAmount(visitID)
}

// ListSellouts líneas de venta de una visita.
func (uc *VisitUseCase) ListSellouts(visitID int64) ([]dto.SelloutResponse, error) {
	list, err := uc.selloutRepo.ListByVisit(visitID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SelloutResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSelloutResponse(s))
	}
	return out, nil
}

// AddInteraction registra una interacción con cliente en la visita.
func (uc *VisitUseCase) AddInteraction(visitID int64, in dto.InteractionCreateRequest) (*dto.InteractionResponse, error) {
	v, err := uc.repo.GetByID(visitID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVisitNotFound
	}
	i := &entity.Interaction{
		VisitID:   visitID,
		ProductID: in.ProductID,
		Gender:    in.Gender,
		Color:     in.Color,
		CreatedAt: time.Now(),
	}
	if in.ProductID != nil {
		product, err := uc.productRepo.GetByID(*in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		i.ProductName = product.Name
	}
	if err := uc.interactionRepo.Create(i); err != nil {
		return nil, err
	}
	return toInteractionResponse(i), nil
}

// ListInteractions interacciones registradas en una visita.
func (uc *VisitUseCase) ListInteractions(visitID int64) ([]dto.InteractionResponse, error) {
	list, err := uc.interactionRepo.ListByVisit(visitID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InteractionResponse, 0, len(list))
	for _, i := range list {
		out = append(out, *toInteractionResponse(i))
	}
	return out, nil
}

// refreshSalesAmount mantiene visit.salesAmount = suma de sus sellouts.
func (uc *VisitUseCase) refreshSalesAmount(visitID int64) error {
	total, err := uc.selloutRepo.SumAmountByVisit(visitID)
	if err != nil {
		return err
	}
	return uc.repo.UpdateSalesAmount(visitID, total)
}

// toVisitResponse arma la respuesta; withDetails carga sellouts e interacciones.
func (uc *VisitUseCase) toVisitResponse(v *entity.Visit, withDetails bool) *dto.VisitResponse {
	out := &dto.VisitResponse{
		ID:               v.ID,
		VisitDate:        v.VisitDate,
		Status:           v.Status,
		SalesAmount:      v.SalesAmount,
		ShelfShare:       v.ShelfShare,
		Comment:          v.Comment,
		CheckInLatitude:  v.CheckInLatitude,
		CheckInLongitude: v.CheckInLongitude,
		PhotoURL:         v.PhotoURL,
		StoreID:          v.StoreID,
		StoreName:        v.StoreName,
		StoreCity:        v.StoreCity,
		UserID:           v.UserID,
		UserName:         v.UserName,
		UserRole:         v.UserRole,
		AssignmentID:     v.AssignmentID,
		TotalTasks:       v.TotalTasks,
		CompletedTasks:   v.CompletedTasks,
		Interactions:     []dto.InteractionResponse{},
		SelloutItems:     []dto.SelloutResponse{},
	}
	if withDetails {
		if sellouts, err := uc.selloutRepo.ListByVisit(v.ID); err == nil {
			for _, s := range sellouts {
				out.SelloutItems = append(out.SelloutItems, *toSelloutResponse(s))
			}
		}
		if interactions, err := uc.interactionRepo.ListByVisit(v.ID); err == nil {
			for _, i := range interactions {
				out.Interactions = append(out.Interactions, *toInteractionResponse(i))
			}
		}
	}
	return out
}

func toSelloutResponse(s *entity.Sellout) *dto.SelloutResponse {
	return &dto.SelloutResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		ProductSKU:  s.ProductSKU,
		Quantity:    s.Quantity,
		Amount:      s.Amount,
		CreatedAt:   s.CreatedAt,
	}
}

func toInteractionResponse(i *entity.Interaction) *dto.InteractionResponse {
	return &dto.InteractionResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Gender:      i.Gender,
		Color:       i.Color,
		CreatedAt:   i.CreatedAt,
	}
}

// haversineMeters distancia en metros entre dos coordenadas.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
