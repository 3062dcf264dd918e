package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

// Longitud mínima de password aceptada en el alta de usuarios.
const minPasswordLen = 6

// UserUseCase aplica las reglas de la jerarquía de usuarios (PROMOTER -> SFOS).
type UserUseCase struct {
	repo repository.UserRepository
	tx   UserTxRunner
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, tx UserTxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx}
}

// Stats devuelve el conteo de usuarios por rol.
func (uc *UserUseCase) Stats() (*dto.UserStatsResponse, error) {
	sfos, err := uc.repo.CountByRole(entity.RoleSFOS)
	if err != nil {
		return nil, err
	}
	promoters, err := uc.repo.CountByRole(entity.RolePromoter)
	if err != nil {
		return nil, err
	}
	supervisors, err := uc.repo.CountByRole(entity.RoleSupervisor)
	if err != nil {
		return nil, err
	}
	return &dto.UserStatsResponse{SFOS: sfos, Promoters: promoters, Supervisors: supervisors}, nil
}

// List lista usuarios paginados con filtro opcional por rol.
func (uc *UserUseCase) List(role string, page, size int) (*dto.Page[dto.UserResponse], error) {
	page, size = dto.NormalizePage(page, size)
	users, total, err := uc.repo.List(role, size, page*size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	out := dto.NewPage(items, total, page, size)
	return &out, nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (uc *UserUseCase) GetByID(id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// Create crea un usuario. Si el rol es PROMOTER, SfosID es obligatorio y debe
// referenciar un usuario con rol SFOS.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validateCreateUser(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	user, manager, err := buildUser(uc.repo, in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	if manager != nil {
		resp.ManagerName = manager.FullName
	}
	return resp, nil
}

// CreateBulk crea un lote de usuarios dentro de una transacción: si una fila
// es inválida (email duplicado, manager inexistente) se descarta el lote entero.
func (uc *UserUseCase) CreateBulk(ctx context.Context, ins []dto.CreateUserRequest) ([]dto.UserResponse, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: lote vacío", domain.ErrInvalidInput)
	}
	for _, in := range ins {
		if err := validateCreateUser(in); err != nil {
			return nil, fmt.Errorf("%w (%s)", err, in.Email)
		}
	}
	var out []dto.UserResponse
	err := uc.tx.RunUsers(ctx, func(repo repository.UserRepository) error {
		for _, in := range ins {
			existing, err := repo.GetByEmail(in.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w (%s)", domain.ErrEmailAlreadyExists, in.Email)
			}
			user, manager, err := buildUser(repo, in)
			if err != nil {
				return fmt.Errorf("%w (%s)", err, in.Email)
			}
			if err := repo.Create(user); err != nil {
				return err
			}
			resp := toUserResponse(user)
			if manager != nil {
				resp.ManagerName = manager.FullName
			}
			out = append(out, *resp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AssignManager reasigna un PROMOTER a un manager SFOS. Ambos extremos se
// verifican por rol.
func (uc *UserUseCase) AssignManager(promoterID, sfosID int64) (*dto.UserResponse, error) {
	promoter, err := uc.repo.GetByID(promoterID)
	if err != nil {
		return nil, err
	}
	if promoter == nil {
		return nil, domain.ErrUserNotFound
	}
	if promoter.Role != entity.RolePromoter {
		return nil, domain.ErrNotAPromoter
	}
	sfos, err := uc.repo.GetByID(sfosID)
	if err != nil {
		return nil, err
	}
	if sfos == nil {
		return nil, domain.ErrUserNotFound
	}
	if sfos.Role != entity.RoleSFOS {
		return nil, domain.ErrManagerNotSFOS
	}
	promoter.ManagerID = &sfos.ID
	promoter.UpdatedAt = time.Now()
	if err := uc.repo.Update(promoter); err != nil {
		return nil, err
	}
	resp := toUserResponse(promoter)
	resp.ManagerName = sfos.FullName
	return resp, nil
}

// validateCreateUser valida el DTO en la frontera, antes de tocar persistencia.
func validateCreateUser(in dto.CreateUserRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if !validEmail(in.Email) {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: password de al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	if !entity.ValidRole(in.Role) {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	if strings.TrimSpace(in.Region) == "" {
		return fmt.Errorf("%w: región requerida", domain.ErrInvalidInput)
	}
	if in.Role == entity.RolePromoter && in.SfosID == nil {
		return domain.ErrManagerRequired
	}
	return nil
}

// buildUser construye la entidad (hash bcrypt incluido) resolviendo el manager
// cuando el rol es PROMOTER. Devuelve también el manager para denormalizar.
func buildUser(repo repository.UserRepository, in dto.CreateUserRequest) (*entity.User, *entity.User, error) {
	var manager *entity.User
	if in.Role == entity.RolePromoter {
		m, err := repo.GetByID(*in.SfosID)
		if err != nil {
			return nil, nil, err
		}
		if m == nil {
			return nil, nil, fmt.Errorf("%w: manager %d", domain.ErrUserNotFound, *in.SfosID)
		}
		if m.Role != entity.RoleSFOS {
			return nil, nil, domain.ErrManagerNotSFOS
		}
		manager = m
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	user := &entity.User{
		FullName:     strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		Region:       strings.TrimSpace(in.Region),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if manager != nil {
		user.ManagerID = &manager.ID
	}
	return user, manager, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                u.ID,
		Name:              u.FullName,
		Email:             u.Email,
		Role:              u.Role,
		Status:            u.Status,
		Region:            u.Region,
		ManagerID:         u.ManagerID,
		ManagerName:       u.ManagerName,
		SubordinatesCount: u.SubordinatesCount,
	}
}
