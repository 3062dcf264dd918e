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

var _ repository.UserRepository = (*UserRepo)(nil)

// Columnas de usuario con el nombre del manager y el conteo de subordinados
// derivados en la misma consulta.
const userSelectColumns = `
	u.id, u.full_name, u.email, u.password_hash, u.role, u.status, u.region,
	u.manager_id, COALESCE(m.full_name, ''),
	(SELECT COUNT(*) FROM users s WHERE s.manager_id = u.id),
	u.created_at, u.updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y asigna el ID generado.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, role, status, region, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		user.FullName, user.Email, user.PasswordHash, user.Role, user.Status, user.Region,
		user.ManagerID, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, o nil si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.id = $1`
	u, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email, o nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.email = $1
		LIMIT 1`
	u, err := r.scanOne(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List usuarios paginados, opcionalmente filtrados por rol, con el total.
func (r *UserRepo) List(role string, limit, offset int) ([]*entity.User, int64, error) {
	ctx := context.Background()

	countQuery := `SELECT COUNT(*) FROM users WHERE ($1 = '' OR role = $1)`
	var total int64
	if err := r.q.QueryRow(ctx, countQuery, role).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE ($1 = '' OR u.role = $1)
		ORDER BY u.full_name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users, err := r.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListByManager usuarios a cargo de un manager (promoters de un SFOS).
func (r *UserRepo) ListByManager(managerID int64) ([]*entity.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.manager_id = $1
		ORDER BY u.full_name`
	rows, err := r.q.Query(context.Background(), query, managerID)
	if err != nil {
		return nil, fmt.Errorf("list users by manager: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// CountByRole conteo de usuarios por rol.
func (r *UserRepo) CountByRole(role string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, password_hash = $4, role = $5, status = $6,
		    region = $7, manager_id = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role, user.Status,
		user.Region, user.ManagerID, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Region,
		&u.ManagerID, &u.ManagerName, &u.SubordinatesCount, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) scanRows(rows pgx.Rows) ([]*entity.User, error) {
	var users []*entity.User
	for rows.Next() {
		var u entity.User
		err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Region,
			&u.ManagerID, &u.ManagerName, &u.SubordinatesCount, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
