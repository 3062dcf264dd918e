package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

var _ usecase.UserTxRunner = (*TxRunner)(nil)
var _ usecase.StoreTxRunner = (*TxRunner)(nil)
var _ usecase.AssignmentTxRunner = (*TxRunner)(nil)
var _ usecase.ProductTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunUsers inicia una transacción, ejecuta fn con el repo de usuarios atado a
// la tx y hace Commit o Rollback.
func (r *TxRunner) RunUsers(ctx context.Context, fn func(repo repository.UserRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewUserRepository(q))
	})
}

// RunStores transacción con el repo de tiendas.
func (r *TxRunner) RunStores(ctx context.Context, fn func(repo repository.StoreRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewStoreRepository(q))
	})
}

// RunAssignments transacción con los repos del alta masiva de asignaciones.
func (r *TxRunner) RunAssignments(ctx context.Context, fn func(
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewAssignmentRepository(q), NewUserRepository(q), NewStoreRepository(q))
	})
}

// RunProducts transacción con el repo de productos.
func (r *TxRunner) RunProducts(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
