package repository

import (
	"time"

	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
)

// AssignmentFilter filtros del listado de asignaciones; nil = sin filtro.
type AssignmentFilter struct {
	Date    *time.Time
	UserID  *int64
	StoreID *int64
}

// AssignmentRepository define el puerto de persistencia para Assignment.
// Create y Update persisten también la checklist de tareas (reemplazo completo).
type AssignmentRepository interface {
	Create(a *entity.Assignment) error
	GetByID(id int64) (*entity.Assignment, error)
	List(f AssignmentFilter, limit, offset int) ([]*entity.Assignment, int64, error)
	ListByUserAndDate(userID int64, date time.Time) ([]*entity.Assignment, error)
	ListByUsersAndDate(userIDs []int64, date time.Time) ([]*entity.Assignment, error)
	Update(a *entity.Assignment) error
	UpdateCheckTimes(id int64, checkIn, checkOut *time.Time) error
	Delete(id int64) error
	CountByDateAndStatus(date time.Time, status string) (int64, error)
}
