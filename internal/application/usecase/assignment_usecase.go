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

// Formato de fecha de las asignaciones (solo día).
const dateLayout = "2006-01-02"

// AssignmentUseCase reglas de la planificación diaria: una asignación por
// (usuario, fecha), solo para PROMOTER/SFOS, con checklist de tareas.
type AssignmentUseCase struct {
	repo      repository.AssignmentRepository
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	tx        AssignmentTxRunner
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	repo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	tx AssignmentTxRunner,
) *AssignmentUseCase {
	return &AssignmentUseCase{repo: repo, userRepo: userRepo, storeRepo: storeRepo, tx: tx}
}

// List lista asignaciones paginadas filtradas por fecha/usuario/tienda.
// dateStr vacío = sin filtro de fecha.
func (uc *AssignmentUseCase) List(dateStr string, userID, storeID *int64, page, size int) (*dto.Page[dto.AssignmentResponse], error) {
	var filter repository.AssignmentFilter
	if dateStr != "" {
		d, err := parseDay(dateStr)
		if err != nil {
			return nil, err
		}
		filter.Date = &d
	}
	filter.UserID = userID
	filter.StoreID = storeID

	page, size = dto.NormalizePage(page, size)
	list, total, err := uc.repo.List(filter, size, page*size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssignmentResponse(a))
	}
	out := dto.NewPage(items, total, page, size)
	return &out, nil
}

// My asignaciones del usuario autenticado (móvil). Sin fecha usa el día actual.
func (uc *AssignmentUseCase) My(userID int64, dateStr string, page, size int) (*dto.Page[dto.AssignmentResponse], error) {
	if dateStr == "" {
		dateStr = time.Now().Format(dateLayout)
	}
	return uc.List(dateStr, &userID, nil, page, size)
}

// Team asignaciones del equipo de un SFOS (sus promoters más él mismo) para una fecha.
func (uc *AssignmentUseCase) Team(sfosID int64, dateStr string) ([]dto.AssignmentResponse, error) {
	date := time.Now()
	if dateStr != "" {
		d, err := parseDay(dateStr)
		if err != nil {
			return nil, err
		}
		date = d
	}
	members, err := uc.userRepo.ListByManager(sfosID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members)+1)
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	ids = append(ids, sfosID)

	list, err := uc.repo.ListByUsersAndDate(ids, date)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAssignmentResponse(a))
	}
	return out, nil
}

// GetByID devuelve una asignación o nil si no existe.
func (uc *AssignmentUseCase) GetByID(id int64) (*dto.AssignmentResponse, error) {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	return toAssignmentResponse(a), nil
}

// Create valida y persiste una asignación nueva.
func (uc *AssignmentUseCase) Create(in dto.AssignmentCreateRequest) (*dto.AssignmentResponse, error) {
	a, err := buildAssignment(uc.repo, uc.userRepo, uc.storeRepo, in, nil)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(a); err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// CreateBulk persiste un lote de asignaciones en una sola transacción.
func (uc *AssignmentUseCase) CreateBulk(ctx context.Context, ins []dto.AssignmentCreateRequest) ([]dto.AssignmentResponse, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: lote vacío", domain.ErrInvalidInput)
	}
	var out []dto.AssignmentResponse
	err := uc.tx.RunAssignments(ctx, func(
		repo repository.AssignmentRepository,
		userRepo repository.UserRepository,
		storeRepo repository.StoreRepository,
	) error {
		for i, in := range ins {
			a, err := buildAssignment(repo, userRepo, storeRepo, in, nil)
			if err != nil {
				return fmt.Errorf("%w (fila %d)", err, i+1)
			}
			if err := repo.Create(a); err != nil {
				return err
			}
			out = append(out, *toAssignmentResponse(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update reemplaza fecha, usuario, tienda y checklist de una asignación.
func (uc *AssignmentUseCase) Update(id int64, in dto.AssignmentCreateRequest) (*dto.AssignmentResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrAssignmentNotFound
	}
	a, err := buildAssignment(uc.repo, uc.userRepo, uc.storeRepo, in, &id)
	if err != nil {
		return nil, err
	}
	a.ID = existing.ID
	a.Status = existing.Status
	a.CheckInTime = existing.CheckInTime
	a.CheckOutTime = existing.CheckOutTime
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(a); err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// Delete elimina una asignación por ID.
func (uc *AssignmentUseCase) Delete(id int64) error {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrAssignmentNotFound
	}
	return uc.repo.Delete(id)
}

// UpdateTaskStatuses aplica actualizaciones de estado a tareas existentes y
// recalcula el estado de la asignación a partir de la checklist.
func (uc *AssignmentUseCase) UpdateTaskStatuses(id int64, updates []dto.TaskItemUpdateRequest) (*dto.AssignmentResponse, error) {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAssignmentNotFound
	}
	if len(updates) == 0 {
		return toAssignmentResponse(a), nil
	}
	byID := make(map[int64]string, len(updates))
	for _, u := range updates {
		if u.ID != 0 && validTaskStatus(u.Status) {
			byID[u.ID] = u.Status
		}
	}
	for i := range a.Tasks {
		if status, ok := byID[a.Tasks[i].ID]; ok {
			a.Tasks[i].Status = status
		}
	}
	a.RecalculateStatus()
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(a); err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// buildAssignment valida el DTO, resuelve usuario y tienda, verifica el
// solapamiento (una asignación por usuario y fecha) y arma la checklist
// descartando tareas con descripción en blanco. currentID excluye la propia
// asignación del chequeo de solapamiento en updates.
func buildAssignment(
	repo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	in dto.AssignmentCreateRequest,
	currentID *int64,
) (*entity.Assignment, error) {
	if in.Date == "" {
		return nil, fmt.Errorf("%w: fecha requerida", domain.ErrInvalidInput)
	}
	date, err := parseDay(in.Date)
	if err != nil {
		return nil, err
	}
	if in.UserID == 0 || in.StoreID == 0 {
		return nil, fmt.Errorf("%w: userId y storeId son requeridos", domain.ErrInvalidInput)
	}
	user, err := userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role != entity.RolePromoter && user.Role != entity.RoleSFOS {
		return nil, fmt.Errorf("%w: solo se asigna a PROMOTER o SFOS", domain.ErrInvalidInput)
	}
	store, err := storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}

	existing, err := repo.ListByUserAndDate(user.ID, date)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if currentID == nil || e.ID != *currentID {
			return nil, domain.ErrAssignmentOverlap
		}
	}

	now := time.Now()
	a := &entity.Assignment{
		Date:      date,
		Status:    entity.AssignmentPlanned,
		UserID:    user.ID,
		StoreID:   store.ID,
		Tasks:     buildTasks(in.Tasks),
		CreatedAt: now,
		UpdatedAt: now,

		UserName:       user.FullName,
		UserRole:       user.Role,
		StoreName:      store.Name,
		StoreCity:      store.City,
		StoreType:      store.Type,
		StoreLatitude:  store.Latitude,
		StoreLongitude: store.Longitude,
		StoreAddress:   store.Address,
	}
	return a, nil
}

// buildTasks descarta tareas con descripción en blanco; estado por defecto TODO.
func buildTasks(ins []dto.TaskItemCreateRequest) []entity.TaskItem {
	var tasks []entity.TaskItem
	for _, t := range ins {
		desc := strings.TrimSpace(t.Description)
		if desc == "" {
			continue
		}
		status := t.Status
		if !validTaskStatus(status) {
			status = entity.TaskTodo
		}
		tasks = append(tasks, entity.TaskItem{Description: desc, Status: status})
	}
	return tasks
}

func validTaskStatus(s string) bool {
	return s == entity.TaskTodo || s == entity.TaskInProgress || s == entity.TaskDone
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func toAssignmentResponse(a *entity.Assignment) *dto.AssignmentResponse {
	if a == nil {
		return nil
	}
	tasks := make([]dto.TaskItemResponse, 0, len(a.Tasks))
	for _, t := range a.Tasks {
		tasks = append(tasks, dto.TaskItemResponse{ID: t.ID, Description: t.Description, Status: t.Status})
	}
	return &dto.AssignmentResponse{
		ID:             a.ID,
		Date:           a.Date.Format(dateLayout),
		Status:         a.Status,
		CheckInTime:    a.CheckInTime,
		CheckOutTime:   a.CheckOutTime,
		UserID:         a.UserID,
		UserName:       a.UserName,
		UserRole:       a.UserRole,
		StoreID:        a.StoreID,
		StoreName:      a.StoreName,
		StoreCity:      a.StoreCity,
		StoreType:      a.StoreType,
		StoreLatitude:  a.StoreLatitude,
		StoreLongitude: a.StoreLongitude,
		StoreAddress:   a.StoreAddress,
		Tasks:          tasks,
		CompletedTasks: a.CompletedTasks(),
		TotalTasks:     len(a.Tasks),
	}
}
