package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/merchmaroc/merchandising-api/internal/domain"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

const visitSelectColumns = `
	v.id, v.visit_date, v.status, v.sales_amount, v.shelf_share, v.comment,
	v.check_in_latitude, v.check_in_longitude, v.photo_url,
	v.user_id, v.store_id, v.assignment_id,
	u.full_name, u.role, s.name, s.city,
	(SELECT COUNT(*) FROM assignment_tasks t WHERE t.assignment_id = v.assignment_id),
	(SELECT COUNT(*) FROM assignment_tasks t WHERE t.assignment_id = v.assignment_id AND t.status = 'DONE')`

const visitJoins = `
	FROM visits v
	JOIN users u ON u.id = v.user_id
	JOIN stores s ON s.id = v.store_id`

// VisitRepo implementación del puerto VisitRepository sobre PostgreSQL.
// Los listados enriquecen cada visita con usuario, tienda y el resumen de
// tareas de la asignación vinculada.
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador de persistencia para visitas.
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

// Create persiste una visita y asigna el ID generado.
func (r *VisitRepo) Create(v *entity.Visit) error {
	query := `
		INSERT INTO visits (visit_date, status, sales_amount, shelf_share, comment,
			check_in_latitude, check_in_longitude, photo_url, user_id, store_id, assignment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		v.VisitDate, v.Status, v.SalesAmount, v.ShelfShare, v.Comment,
		v.CheckInLatitude, v.CheckInLongitude, v.PhotoURL, v.UserID, v.StoreID, v.AssignmentID,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// GetByID obtiene una visita enriquecida, o nil si no existe.
func (r *VisitRepo) GetByID(id int64) (*entity.Visit, error) {
	query := `SELECT ` + visitSelectColumns + visitJoins + ` WHERE v.id = $1`
	v, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get visit by id: %w", err)
	}
	return v, nil
}

// ListAll visitas ordenadas por fecha descendente.
func (r *VisitRepo) ListAll() ([]*entity.Visit, error) {
	query := `SELECT ` + visitSelectColumns + visitJoins + ` ORDER BY v.visit_date DESC`
	return r.list(query)
}

// ListByUser visitas de un usuario.
func (r *VisitRepo) ListByUser(userID int64) ([]*entity.Visit, error) {
	query := `SELECT ` + visitSelectColumns + visitJoins + `
		WHERE v.user_id = $1 ORDER BY v.visit_date DESC`
	return r.list(query, userID)
}

// ListByStore visitas a una tienda.
func (r *VisitRepo) ListByStore(storeID int64) ([]*entity.Visit, error) {
	query := `SELECT ` + visitSelectColumns + visitJoins + `
		WHERE v.store_id = $1 ORDER BY v.visit_date DESC`
	return r.list(query, storeID)
}

// UpdateStatus cambia el estado de una visita (revisión del supervisor).
func (r *VisitRepo) UpdateStatus(id int64, status string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE visits SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update visit status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// UpdateSalesAmount fija el monto de ventas de la visita (suma de sellouts).
func (r *VisitRepo) UpdateSalesAmount(id int64, amount decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE visits SET sales_amount = $2 WHERE id = $1`, id, amount)
	if err != nil {
		return fmt.Errorf("update visit sales amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// UpdatePhotoURL fija la URL pública de la foto de la visita.
func (r *VisitRepo) UpdatePhotoURL(id int64, url string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE visits SET photo_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("update visit photo url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// Las KPIs cuentan solo las visitas pendientes de revisión (COMPLETED);
// una visita validada o rechazada sale de los agregados.

// CountCompleted total de visitas en estado COMPLETED.
func (r *VisitRepo) CountCompleted() (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM visits WHERE status = 'COMPLETED'`
	if err := r.q.QueryRow(context.Background(), query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}

// SumSales suma de ventas de las visitas COMPLETED.
func (r *VisitRepo) SumSales() (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(sales_amount), 0) FROM visits WHERE status = 'COMPLETED'`
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum visit sales: %w", err)
	}
	return total, nil
}

// AvgShelfShare promedio de shelf share sobre las visitas COMPLETED.
func (r *VisitRepo) AvgShelfShare() (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(shelf_share), 0) FROM visits WHERE status = 'COMPLETED'`
	if err := r.q.QueryRow(context.Background(), query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("avg shelf share: %w", err)
	}
	return avg, nil
}

func (r *VisitRepo) list(query string, args ...any) ([]*entity.Visit, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []*entity.Visit
	for rows.Next() {
		var v entity.Visit
		err := rows.Scan(
			&v.ID, &v.VisitDate, &v.Status, &v.SalesAmount, &v.ShelfShare, &v.Comment,
			&v.CheckInLatitude, &v.CheckInLongitude, &v.PhotoURL,
			&v.UserID, &v.StoreID, &v.AssignmentID,
			&v.UserName, &v.UserRole, &v.StoreName, &v.StoreCity,
			&v.TotalTasks, &v.CompletedTasks,
		)
		if err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return visits, nil
}

func (r *VisitRepo) scanOne(row pgx.Row) (*entity.Visit, error) {
	var v entity.Visit
	err := row.Scan(
		&v.ID, &v.VisitDate, &v.Status, &v.SalesAmount, &v.ShelfShare, &v.Comment,
		&v.CheckInLatitude, &v.CheckInLongitude, &v.PhotoURL,
		&v.UserID, &v.StoreID, &v.AssignmentID,
		&v.UserName, &v.UserRole, &v.StoreName, &v.StoreCity,
		&v.TotalTasks, &v.CompletedTasks,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
