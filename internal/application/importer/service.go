package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
	"github.com/merchmaroc/merchandising-api/pkg/logger"
)

// ImportFunc firma común de los imports por entidad.
type ImportFunc func(ctx context.Context, r io.Reader) (*dto.ImportReport, error)

// Service orquesta los imports masivos: mapea el CSV a requests de creación,
// aborta si cero filas sobreviven el mapeo y delega la persistencia a los
// bulk-create transaccionales. Cada lote lleva un batch ID para trazabilidad.
type Service struct {
	users       *usecase.UserUseCase
	stores      *usecase.StoreUseCase
	assignments *usecase.AssignmentUseCase
	products    *usecase.ProductUseCase
	userRepo    repository.UserRepository
	storeRepo   repository.StoreRepository
	log         *logger.Logger
}

// NewService construye el servicio de imports.
func NewService(
	users *usecase.UserUseCase,
	stores *usecase.StoreUseCase,
	assignments *usecase.AssignmentUseCase,
	products *usecase.ProductUseCase,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		users:       users,
		stores:      stores,
		assignments: assignments,
		products:    products,
		userRepo:    userRepo,
		storeRepo:   storeRepo,
		log:         log,
	}
}

// ImportUsers importa usuarios desde un CSV.
func (s *Service) ImportUsers(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	accepted, rejected := mapUsers(header, rows)
	if err := s.checkSurvivors(len(accepted)); err != nil {
		return nil, err
	}
	if _, err := s.users.CreateBulk(ctx, accepted); err != nil {
		return nil, err
	}
	return s.report("users", len(accepted), rejected), nil
}

// ImportStores importa tiendas desde un CSV.
func (s *Service) ImportStores(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	accepted, rejected := mapStores(header, rows)
	if err := s.checkSurvivors(len(accepted)); err != nil {
		return nil, err
	}
	if _, err := s.stores.CreateBulk(ctx, accepted); err != nil {
		return nil, err
	}
	return s.report("stores", len(accepted), rejected), nil
}

// ImportAssignments importa asignaciones desde un CSV. El usuario se resuelve
// por email y la tienda por nombre; una referencia irresoluble rechaza solo
// esa fila.
func (s *Service) ImportAssignments(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	accepted, rejected := mapAssignments(header, rows, s.lookupUser, s.lookupStore)
	if err := s.checkSurvivors(len(accepted)); err != nil {
		return nil, err
	}
	if _, err := s.assignments.CreateBulk(ctx, accepted); err != nil {
		return nil, err
	}
	return s.report("assignments", len(accepted), rejected), nil
}

// ImportProducts importa productos desde un CSV.
func (s *Service) ImportProducts(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	accepted, rejected := mapProducts(header, rows)
	if err := s.checkSurvivors(len(accepted)); err != nil {
		return nil, err
	}
	if _, err := s.products.CreateBulk(ctx, accepted); err != nil {
		return nil, err
	}
	return s.report("products", len(accepted), rejected), nil
}

func (s *Service) lookupUser(email string) (int64, bool) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil || u == nil {
		return 0, false
	}
	return u.ID, true
}

func (s *Service) lookupStore(name string) (int64, bool) {
	st, err := s.storeRepo.GetByName(name)
	if err != nil || st == nil {
		return 0, false
	}
	return st.ID, true
}

// checkSurvivors aborta antes de tocar la base si ninguna fila sobrevivió.
func (s *Service) checkSurvivors(accepted int) error {
	if accepted == 0 {
		return fmt.Errorf("%w: ninguna fila válida en el CSV", domain.ErrInvalidInput)
	}
	return nil
}

func (s *Service) report(entity string, accepted int, rejected []dto.RejectedRow) *dto.ImportReport {
	report := &dto.ImportReport{
		BatchID:  uuid.NewString(),
		Entity:   entity,
		Accepted: accepted,
		Rejected: rejected,
	}
	if report.Rejected == nil {
		report.Rejected = []dto.RejectedRow{}
	}
	s.log.Info().
		Str("batch_id", report.BatchID).
		Str("entity", entity).
		Int("accepted", accepted).
		Int("rejected", len(report.Rejected)).
		Msg("import masivo procesado")
	return report
}
