package entity

import "time"

// Tipos de punto de venta: OR (Organized Retail) e IR (Independent Retail).
const (
	StoreTypeOR = "OR"
	StoreTypeIR = "IR"
)

// Store representa un punto de venta con sus coordenadas.
type Store struct {
	ID        int64
	Name      string
	Type      string // OR | IR
	City      string
	Latitude  float64
	Longitude float64
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
