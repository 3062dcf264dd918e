package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VisitSubmitRequest entrada del envío de visita desde el móvil.
type VisitSubmitRequest struct {
	UserID           int64    `json:"userId" validate:"required"`
	StoreID          int64    `json:"storeId" validate:"required"`
	ShelfShare       float64  `json:"shelfShare"` // fracción 0–1
	Comment          string   `json:"comment,omitempty"`
	CheckInLatitude  *float64 `json:"checkInLatitude,omitempty"`
	CheckInLongitude *float64 `json:"checkInLongitude,omitempty"`
	AssignmentID     *int64   `json:"assignmentId,omitempty"`
}

// VisitResponse visita enriquecida con tienda, usuario, resumen de tareas,
// interacciones y sellouts.
type VisitResponse struct {
	ID               int64           `json:"id"`
	VisitDate        time.Time       `json:"visitDate"`
	Status           string          `json:"status"`
	SalesAmount      decimal.Decimal `json:"salesAmount"`
	ShelfShare       float64         `json:"shelfShare"`
	Comment          string          `json:"comment,omitempty"`
	CheckInLatitude  *float64        `json:"checkInLatitude,omitempty"`
	CheckInLongitude *float64        `json:"checkInLongitude,omitempty"`
	PhotoURL         string          `json:"photoUrl,omitempty"`

	StoreID   int64  `json:"storeId"`
	StoreName string `json:"storeName"`
	StoreCity string `json:"storeCity"`

	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	UserRole string `json:"userRole"`

	AssignmentID   *int64 `json:"assignmentId,omitempty"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`

	Interactions []InteractionResponse `json:"interactions"`
	SelloutItems []SelloutResponse     `json:"selloutItems"`
}

// VisitSubmitResponse visita creada más el resultado del geoperimetraje.
type VisitSubmitResponse struct {
	Visit           VisitResponse `json:"visit"`
	DistanceToStore *int64        `json:"distanceToStore,omitempty"` // metros redondeados
	GeofenceRadius  int           `json:"geofenceRadius,omitempty"`
	OutsideGeofence bool          `json:"outsideGeofence"`
}

// PhotoUploadResponse URL pública y nombre del archivo de la foto almacenada.
type PhotoUploadResponse struct {
	PhotoURL string `json:"photoUrl"`
	FileName string `json:"fileName"`
}

// VisitStatsResponse KPIs agregados de visitas.
type VisitStatsResponse struct {
	TotalVisits   int64           `json:"totalVisits"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	AvgShelfShare float64         `json:"avgShelfShare"`
}

// SelloutCreateRequest línea de venta a registrar en una visita.
type SelloutCreateRequest struct {
	ProductID int64           `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// SelloutResponse línea de venta con datos del producto.
type SelloutResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	ProductSKU  string          `json:"productSku,omitempty"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// InteractionCreateRequest interacción con cliente a registrar en una visita.
type InteractionCreateRequest struct {
	ProductID *int64 `json:"productId,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Color     string `json:"color,omitempty"`
}

// InteractionResponse interacción registrada.
type InteractionResponse struct {
	ID          int64     `json:"id"`
	ProductID   *int64    `json:"productId,omitempty"`
	ProductName string    `json:"productName,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
