package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

// StoreUseCase CRUD de puntos de venta.
type StoreUseCase struct {
	repo repository.StoreRepository
	tx   StoreTxRunner
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, tx StoreTxRunner) *StoreUseCase {
	return &StoreUseCase{repo: repo, tx: tx}
}

// List devuelve todas las tiendas (el filtrado por ciudad/tipo es de la consola).
func (uc *StoreUseCase) List() ([]dto.StoreResponse, error) {
	stores, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

// GetByID obtiene una tienda por ID. Devuelve nil si no existe.
func (uc *StoreUseCase) GetByID(id int64) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	return toStoreResponse(store), nil
}

// Create valida y persiste una tienda nueva.
func (uc *StoreUseCase) Create(in dto.StoreRequest) (*dto.StoreResponse, error) {
	store, err := buildStore(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Update sobrescribe los campos de una tienda existente tras validar.
func (uc *StoreUseCase) Update(id int64, in dto.StoreRequest) (*dto.StoreResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrStoreNotFound
	}
	updated, err := buildStore(in)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	if err := uc.repo.Update(updated); err != nil {
		return nil, err
	}
	return toStoreResponse(updated), nil
}

// Delete elimina una tienda. La confirmación destructiva ocurre en la consola;
// aquí solo se verifica existencia.
func (uc *StoreUseCase) Delete(id int64) error {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrStoreNotFound
	}
	return uc.repo.Delete(id)
}

// CreateBulk persiste un lote de tiendas en una sola transacción.
func (uc *StoreUseCase) CreateBulk(ctx context.Context, ins []dto.StoreRequest) ([]dto.StoreResponse, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: lote vacío", domain.ErrInvalidInput)
	}
	stores := make([]*entity.Store, 0, len(ins))
	for i, in := range ins {
		s, err := buildStore(in)
		if err != nil {
			return nil, fmt.Errorf("%w (fila %d)", err, i+1)
		}
		stores = append(stores, s)
	}
	err := uc.tx.RunStores(ctx, func(repo repository.StoreRepository) error {
		for _, s := range stores {
			if err := repo.Create(s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

// buildStore valida el DTO y construye la entidad. Latitude/Longitude son
// obligatorios; no se hace verificación de rangos geográficos.
func buildStore(in dto.StoreRequest) (*entity.Store, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.City) == "" {
		return nil, fmt.Errorf("%w: ciudad requerida", domain.ErrInvalidInput)
	}
	if in.Latitude == nil {
		return nil, fmt.Errorf("%w: latitud requerida", domain.ErrInvalidInput)
	}
	if in.Longitude == nil {
		return nil, fmt.Errorf("%w: longitud requerida", domain.ErrInvalidInput)
	}
	storeType := strings.ToUpper(strings.TrimSpace(in.Type))
	if storeType != entity.StoreTypeOR && storeType != entity.StoreTypeIR {
		return nil, fmt.Errorf("%w: tipo debe ser OR o IR", domain.ErrInvalidInput)
	}
	now := time.Now()
	return &entity.Store{
		Name:      strings.TrimSpace(in.Name),
		Type:      storeType,
		City:      strings.TrimSpace(in.City),
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		City:      s.City,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Address:   s.Address,
	}
}
