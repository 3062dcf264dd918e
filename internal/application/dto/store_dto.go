package dto

// StoreRequest entrada para crear/actualizar una tienda. Latitude y Longitude
// son punteros para distinguir "campo ausente" de 0.0 en la validación.
type StoreRequest struct {
	Name      string   `json:"name" validate:"required"`
	Type      string   `json:"type" validate:"required,oneof=OR IR"`
	City      string   `json:"city" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Address   string   `json:"address,omitempty"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}
