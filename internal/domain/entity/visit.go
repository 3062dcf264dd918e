package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una visita. COMPLETED es el estado pendiente de revisión;
// VALIDATED y REJECTED son terminales (la transición ocurre exactamente una vez).
const (
	VisitCompleted = "COMPLETED"
	VisitValidated = "VALIDATED"
	VisitRejected  = "REJECTED"
)

// Visit un reporte de visita de campo enviado por un Promoter.
type Visit struct {
	ID               int64
	VisitDate        time.Time
	Status           string
	SalesAmount      decimal.Decimal // suma de los sellouts de la visita
	ShelfShare       float64         // fracción 0–1
	Comment          string
	CheckInLatitude  *float64
	CheckInLongitude *float64
	PhotoURL         string
	UserID           int64
	StoreID          int64
	AssignmentID     *int64

	// Denormalizados por JOIN en el repositorio; no se persisten.
	UserName  string
	UserRole  string
	StoreName string
	StoreCity string

	// Resumen de tareas de la asignación vinculada (si existe).
	TotalTasks     int
	CompletedTasks int
}

// Reviewed indica si la visita ya pasó por el supervisor (estado terminal).
func (v *Visit) Reviewed() bool {
	return v.Status == VisitValidated || v.Status == VisitRejected
}

// Sellout una línea de venta registrada durante una visita.
type Sellout struct {
	ID        int64
	VisitID   int64
	ProductID int64
	Quantity  int
	Amount    decimal.Decimal
	CreatedAt time.Time

	// Denormalizados por JOIN.
	ProductName string
	ProductSKU  string
}

// Interaction una interacción con un cliente registrada durante una visita.
type Interaction struct {
	ID        int64
	VisitID   int64
	ProductID *int64
	Gender    string
	Color     string
	CreatedAt time.Time

	// Denormalizado por JOIN.
	ProductName string
}
