package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

const assignmentSelectColumns = `
	a.id, a.date, a.status, a.check_in_time, a.check_out_time, a.user_id, a.store_id,
	a.created_at, a.updated_at,
	u.full_name, u.role,
	s.name, s.city, s.type, s.latitude, s.longitude, s.address`

const assignmentJoins = `
	FROM assignments a
	JOIN users u ON u.id = a.user_id
	JOIN stores s ON s.id = a.store_id`

// AssignmentRepo implementación del puerto AssignmentRepository sobre
// PostgreSQL. La checklist vive en assignment_tasks y se reemplaza completa
// en cada Update.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador de persistencia para asignaciones.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create persiste la asignación y su checklist.
func (r *AssignmentRepo) Create(a *entity.Assignment) error {
	ctx := context.Background()
	query := `
		INSERT INTO assignments (date, status, check_in_time, check_out_time, user_id, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.Date, a.Status, a.CheckInTime, a.CheckOutTime, a.UserID, a.StoreID, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAssignmentOverlap
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return r.insertTasks(ctx, a)
}

// GetByID obtiene una asignación con su checklist, o nil si no existe.
func (r *AssignmentRepo) GetByID(id int64) (*entity.Assignment, error) {
	ctx := context.Background()
	query := `SELECT ` + assignmentSelectColumns + assignmentJoins + ` WHERE a.id = $1`
	a, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get assignment by id: %w", err)
	}
	if a == nil {
		return nil, nil
	}
	if err := r.loadTasks(ctx, []*entity.Assignment{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// List asignaciones paginadas con filtros opcionales y el total.
func (r *AssignmentRepo) List(f repository.AssignmentFilter, limit, offset int) ([]*entity.Assignment, int64, error) {
	ctx := context.Background()

	where := ` WHERE ($1::date IS NULL OR a.date = $1)
		AND ($2::bigint IS NULL OR a.user_id = $2)
		AND ($3::bigint IS NULL OR a.store_id = $3)`

	var total int64
	countQuery := `SELECT COUNT(*) FROM assignments a` + where
	if err := r.q.QueryRow(ctx, countQuery, f.Date, f.UserID, f.StoreID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}

	query := `SELECT ` + assignmentSelectColumns + assignmentJoins + where + `
		ORDER BY a.date DESC, a.id
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.Date, f.UserID, f.StoreID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	list, err := r.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadTasks(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByUserAndDate asignaciones de un usuario en un día (chequeo de solapamiento).
func (r *AssignmentRepo) ListByUserAndDate(userID int64, date time.Time) ([]*entity.Assignment, error) {
	ctx := context.Background()
	query := `SELECT ` + assignmentSelectColumns + assignmentJoins + `
		WHERE a.user_id = $1 AND a.date = $2`
	rows, err := r.q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list assignments by user and date: %w", err)
	}
	defer rows.Close()

	list, err := r.scanRows(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByUsersAndDate asignaciones de un conjunto de usuarios en un día (vista de equipo).
func (r *AssignmentRepo) ListByUsersAndDate(userIDs []int64, date time.Time) ([]*entity.Assignment, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	query := `SELECT ` + assignmentSelectColumns + assignmentJoins + `
		WHERE a.user_id = ANY($1) AND a.date = $2
		ORDER BY u.full_name`
	rows, err := r.q.Query(ctx, query, userIDs, date)
	if err != nil {
		return nil, fmt.Errorf("list assignments by users and date: %w", err)
	}
	defer rows.Close()

	list, err := r.scanRows(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update actualiza la asignación y reemplaza su checklist completa.
func (r *AssignmentRepo) Update(a *entity.Assignment) error {
	ctx := context.Background()
	query := `
		UPDATE assignments
		SET date = $2, status = $3, check_in_time = $4, check_out_time = $5,
		    user_id = $6, store_id = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.Date, a.Status, a.CheckInTime, a.CheckOutTime, a.UserID, a.StoreID, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAssignmentOverlap
		}
		return fmt.Errorf("update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssignmentNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM assignment_tasks WHERE assignment_id = $1`, a.ID); err != nil {
		return fmt.Errorf("delete assignment tasks: %w", err)
	}
	return r.insertTasks(ctx, a)
}

// UpdateCheckTimes estampa las horas de check-in/check-out (envío de visita).
func (r *AssignmentRepo) UpdateCheckTimes(id int64, checkIn, checkOut *time.Time) error {
	query := `UPDATE assignments SET check_in_time = $2, check_out_time = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, checkIn, checkOut)
	if err != nil {
		return fmt.Errorf("update assignment check times: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// Delete elimina una asignación; la checklist cae por ON DELETE CASCADE.
func (r *AssignmentRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// CountByDateAndStatus conteo de asignaciones de un día por estado (dashboard).
func (r *AssignmentRepo) CountByDateAndStatus(date time.Time, status string) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM assignments WHERE date = $1 AND status = $2`
	if err := r.q.QueryRow(context.Background(), query, date, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assignments by date and status: %w", err)
	}
	return n, nil
}

func (r *AssignmentRepo) insertTasks(ctx context.Context, a *entity.Assignment) error {
	for i := range a.Tasks {
		t := &a.Tasks[i]
		t.AssignmentID = a.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO assignment_tasks (assignment_id, description, status, position)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			a.ID, t.Description, t.Status, i,
		).Scan(&t.ID)
		if err != nil {
			return fmt.Errorf("insert assignment task: %w", err)
		}
	}
	return nil
}

// loadTasks carga las checklists de un lote de asignaciones en una sola consulta.
func (r *AssignmentRepo) loadTasks(ctx context.Context, list []*entity.Assignment) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Assignment, len(list))
	ids := make([]int64, 0, len(list))
	for _, a := range list {
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, assignment_id, description, status
		FROM assignment_tasks
		WHERE assignment_id = ANY($1)
		ORDER BY assignment_id, position`, ids)
	if err != nil {
		return fmt.Errorf("load assignment tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t entity.TaskItem
		if err := rows.Scan(&t.ID, &t.AssignmentID, &t.Description, &t.Status); err != nil {
			return fmt.Errorf("scan assignment task: %w", err)
		}
		if a, ok := byID[t.AssignmentID]; ok {
			a.Tasks = append(a.Tasks, t)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate assignment tasks: %w", err)
	}
	return nil
}

func (r *AssignmentRepo) scanOne(row pgx.Row) (*entity.Assignment, error) {
	var a entity.Assignment
	err := row.Scan(
		&a.ID, &a.Date, &a.Status, &a.CheckInTime, &a.CheckOutTime, &a.UserID, &a.StoreID,
		&a.CreatedAt, &a.UpdatedAt,
		&a.UserName, &a.UserRole,
		&a.StoreName, &a.StoreCity, &a.StoreType, &a.StoreLatitude, &a.StoreLongitude, &a.StoreAddress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepo) scanRows(rows pgx.Rows) ([]*entity.Assignment, error) {
	var list []*entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		err := rows.Scan(
			&a.ID, &a.Date, &a.Status, &a.CheckInTime, &a.CheckOutTime, &a.UserID, &a.StoreID,
			&a.CreatedAt, &a.UpdatedAt,
			&a.UserName, &a.UserRole,
			&a.StoreName, &a.StoreCity, &a.StoreType, &a.StoreLatitude, &a.StoreLongitude, &a.StoreAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return list, nil
}
