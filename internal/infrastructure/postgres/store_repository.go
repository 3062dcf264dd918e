package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una tienda y asigna el ID generado.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (name, type, city, latitude, longitude, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		store.Name, store.Type, store.City, store.Latitude, store.Longitude, store.Address,
		store.CreatedAt, store.UpdatedAt,
	).Scan(&store.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID, o nil si no existe.
func (r *StoreRepo) GetByID(id int64) (*entity.Store, error) {
	query := `
		SELECT id, name, type, city, latitude, longitude, address, created_at, updated_at
		FROM stores WHERE id = $1`
	s, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get store by id: %w", err)
	}
	return s, nil
}

// GetByName obtiene una tienda por nombre exacto (resolución del import CSV).
func (r *StoreRepo) GetByName(name string) (*entity.Store, error) {
	query := `
		SELECT id, name, type, city, latitude, longitude, address, created_at, updated_at
		FROM stores WHERE name = $1
		LIMIT 1`
	s, err := r.scanOne(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		return nil, fmt.Errorf("get store by name: %w", err)
	}
	return s, nil
}

// List todas las tiendas ordenadas por nombre.
func (r *StoreRepo) List() ([]*entity.Store, error) {
	query := `
		SELECT id, name, type, city, latitude, longitude, address, created_at, updated_at
		FROM stores
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []*entity.Store
	for rows.Next() {
		var s entity.Store
		err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.City, &s.Latitude, &s.Longitude, &s.Address,
			&s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}

// Update actualiza una tienda.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, type = $3, city = $4, latitude = $5, longitude = $6, address = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Type, store.City, store.Latitude, store.Longitude,
		store.Address, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

// Delete elimina una tienda por ID.
func (r *StoreRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

func (r *StoreRepo) scanOne(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.City, &s.Latitude, &s.Longitude, &s.Address,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
