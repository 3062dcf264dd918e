package usecase

import (
	"context"

	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

// Runners de transacción para los imports masivos: una fila inválida aborta el
// lote completo (rollback). Los implementa postgres.TxRunner.

// UserTxRunner ejecuta fn con un UserRepository atado a una transacción.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(repo repository.UserRepository) error) error
}

// StoreTxRunner ejecuta fn con un StoreRepository atado a una transacción.
type StoreTxRunner interface {
	RunStores(ctx context.Context, fn func(repo repository.StoreRepository) error) error
}

// AssignmentTxRunner ejecuta fn con los repos que necesita el alta masiva de
// asignaciones (resolución de usuario/tienda dentro de la misma transacción).
type AssignmentTxRunner interface {
	RunAssignments(ctx context.Context, fn func(
		assignmentRepo repository.AssignmentRepository,
		userRepo repository.UserRepository,
		storeRepo repository.StoreRepository,
	) error) error
}

// ProductTxRunner ejecuta fn con un ProductRepository atado a una transacción.
type ProductTxRunner interface {
	RunProducts(ctx context.Context, fn func(repo repository.ProductRepository) error) error
}
