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

var _ repository.SelloutRepository = (*SelloutRepo)(nil)

// SelloutRepo implementación del puerto SelloutRepository sobre PostgreSQL.
type SelloutRepo struct {
	q Querier
}

// NewSelloutRepository construye el adaptador de persistencia para sellouts.
func NewSelloutRepository(q Querier) *SelloutRepo {
	return &SelloutRepo{q: q}
}

// Create persiste una línea de venta.
func (r *SelloutRepo) Create(s *entity.Sellout) error {
	query := `
		INSERT INTO sellouts (visit_id, product_id, quantity, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.VisitID, s.ProductID, s.Quantity, s.Amount, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sellout: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de venta con datos del producto, o nil.
func (r *SelloutRepo) GetByID(id int64) (*entity.Sellout, error) {
	query := `
		SELECT so.id, so.visit_id, so.product_id, so.quantity, so.amount, so.created_at, p.name, p.sku
		FROM sellouts so
		JOIN products p ON p.id = so.product_id
		WHERE so.id = $1`
	var s entity.Sellout
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.VisitID, &s.ProductID, &s.Quantity, &s.Amount, &s.CreatedAt,
		&s.ProductName, &s.ProductSKU,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sellout by id: %w", err)
	}
	return &s, nil
}

// ListByVisit líneas de venta de una visita.
func (r *SelloutRepo) ListByVisit(visitID int64) ([]*entity.Sellout, error) {
	query := `
		SELECT so.id, so.visit_id, so.product_id, so.quantity, so.amount, so.created_at, p.name, p.sku
		FROM sellouts so
		JOIN products p ON p.id = so.product_id
		WHERE so.visit_id = $1
		ORDER BY so.created_at`
	rows, err := r.q.Query(context.Background(), query, visitID)
	if err != nil {
		return nil, fmt.Errorf("list sellouts: %w", err)
	}
	defer rows.Close()

	var sellouts []*entity.Sellout
	for rows.Next() {
		var s entity.Sellout
		err := rows.Scan(&s.ID, &s.VisitID, &s.ProductID, &s.Quantity, &s.Amount, &s.CreatedAt,
			&s.ProductName, &s.ProductSKU)
		if err != nil {
			return nil, fmt.Errorf("scan sellout: %w", err)
		}
		sellouts = append(sellouts, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sellouts: %w", err)
	}
	return sellouts, nil
}

// ListByVisits líneas de venta de un lote de visitas en una sola consulta,
// agrupadas por visita.
func (r *SelloutRepo) ListByVisits(visitIDs []int64) (map[int64][]*entity.Sellout, error) {
	out := make(map[int64][]*entity.Sellout, len(visitIDs))
	if len(visitIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT so.id, so.visit_id, so.product_id, so.quantity, so.amount, so.created_at, p.name, p.sku
		FROM sellouts so
		JOIN products p ON p.id = so.product_id
		WHERE so.visit_id = ANY($1)
		ORDER BY so.visit_id, so.created_at`
	rows, err := r.q.Query(context.Background(), query, visitIDs)
	if err != nil {
		return nil, fmt.Errorf("list sellouts by visits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s entity.Sellout
		err := rows.Scan(&s.ID, &s.VisitID, &s.ProductID, &s.Quantity, &s.Amount, &s.CreatedAt,
			&s.ProductName, &s.ProductSKU)
		if err != nil {
			return nil, fmt.Errorf("scan sellout: %w", err)
		}
		out[s.VisitID] = append(out[s.VisitID], &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sellouts: %w", err)
	}
	return out, nil
}

// SumAmountByVisit suma de montos de las líneas de una visita.
func (r *SelloutRepo) SumAmountByVisit(visitID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM sellouts WHERE visit_id = $1`
	if err := r.q.QueryRow(context.Background(), query, visitID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum sellouts: %w", err)
	}
	return total, nil
}

// Delete elimina una línea de venta.
func (r *SelloutRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sellouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sellout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
