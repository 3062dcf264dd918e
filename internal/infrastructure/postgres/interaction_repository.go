package postgres

import (
	"context"
	"fmt"

	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

var _ repository.InteractionRepository = (*InteractionRepo)(nil)

// InteractionRepo implementación del puerto InteractionRepository sobre PostgreSQL.
type InteractionRepo struct {
	q Querier
}

// NewInteractionRepository construye el adaptador de persistencia para interacciones.
func NewInteractionRepository(q Querier) *InteractionRepo {
	return &InteractionRepo{q: q}
}

// Create persiste una interacción.
func (r *InteractionRepo) Create(i *entity.Interaction) error {
	query := `
		INSERT INTO interactions (visit_id, product_id, gender, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		i.VisitID, i.ProductID, i.Gender, i.Color, i.CreatedAt,
	).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// ListByVisit interacciones de una visita.
func (r *InteractionRepo) ListByVisit(visitID int64) ([]*entity.Interaction, error) {
	query := `
		SELECT i.id, i.visit_id, i.product_id, i.gender, i.color, i.created_at, COALESCE(p.name, '')
		FROM interactions i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.visit_id = $1
		ORDER BY i.created_at`
	rows, err := r.q.Query(context.Background(), query, visitID)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []*entity.Interaction
	for rows.Next() {
		var i entity.Interaction
		err := rows.Scan(&i.ID, &i.VisitID, &i.ProductID, &i.Gender, &i.Color, &i.CreatedAt, &i.ProductName)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		interactions = append(interactions, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return interactions, nil
}

// ListByVisits interacciones de un lote de visitas en una sola consulta,
// agrupadas por visita.
func (r *InteractionRepo) ListByVisits(visitIDs []int64) (map[int64][]*entity.Interaction, error) {
	out := make(map[int64][]*entity.Interaction, len(visitIDs))
	if len(visitIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT i.id, i.visit_id, i.product_id, i.gender, i.color, i.created_at, COALESCE(p.name, '')
		FROM interactions i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.visit_id = ANY($1)
		ORDER BY i.visit_id, i.created_at`
	rows, err := r.q.Query(context.Background(), query, visitIDs)
	if err != nil {
		return nil, fmt.Errorf("list interactions by visits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var i entity.Interaction
		err := rows.Scan(&i.ID, &i.VisitID, &i.ProductID, &i.Gender, &i.Color, &i.CreatedAt, &i.ProductName)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out[i.VisitID] = append(out[i.VisitID], &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}
