package repository

import "github.com/merchmaroc/merchandising-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los listados devuelven también el total para el envelope de paginación.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(role string, limit, offset int) ([]*entity.User, int64, error)
	ListByManager(managerID int64) ([]*entity.User, error)
	CountByRole(role string) (int64, error)
	Update(user *entity.User) error
}
