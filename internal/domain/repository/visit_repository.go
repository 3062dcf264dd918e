package repository

import (
	"github.com/shopspring/decimal"

	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
)

// VisitRepository define el puerto de persistencia para Visit.
// Los listados vienen ordenados por fecha de visita descendente.
type VisitRepository interface {
	Create(v *entity.Visit) error
	GetByID(id int64) (*entity.Visit, error)
	ListAll() ([]*entity.Visit, error)
	ListByUser(userID int64) ([]*entity.Visit, error)
	ListByStore(storeID int64) ([]*entity.Visit, error)
	UpdateStatus(id int64, status string) error
	UpdateSalesAmount(id int64, amount decimal.Decimal) error
	UpdatePhotoURL(id int64, url string) error
	CountCompleted() (int64, error)
	SumSales() (decimal.Decimal, error)
	AvgShelfShare() (float64, error)
}

// SelloutRepository líneas de venta de una visita.
type SelloutRepository interface {
	Create(s *entity.Sellout) error
	GetByID(id int64) (*entity.Sellout, error)
	ListByVisit(visitID int64) ([]*entity.Sellout, error)
	ListByVisits(visitIDs []int64) (map[int64][]*entity.Sellout, error)
	SumAmountByVisit(visitID int64) (decimal.Decimal, error)
	Delete(id int64) error
}

// InteractionRepository interacciones con clientes durante una visita.
type InteractionRepository interface {
	Create(i *entity.Interaction) error
	ListByVisit(visitID int64) ([]*entity.Interaction, error)
	ListByVisits(visitIDs []int64) (map[int64][]*entity.Interaction, error)
}
