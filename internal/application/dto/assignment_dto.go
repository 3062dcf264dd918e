package dto

import "time"

// TaskItemCreateRequest una tarea de la checklist al crear/editar una asignación.
// Las tareas con descripción en blanco se descartan antes de persistir.
type TaskItemCreateRequest struct {
	Description string `json:"description"`
	Status      string `json:"status,omitempty"` // por defecto TODO
}

// TaskItemUpdateRequest actualización de estado de una tarea existente (móvil).
type TaskItemUpdateRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// TaskItemResponse una tarea en la respuesta.
type TaskItemResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// AssignmentCreateRequest entrada para crear/actualizar una asignación.
// Date en formato YYYY-MM-DD; se valida en el use case.
type AssignmentCreateRequest struct {
	Date    string                  `json:"date" validate:"required"`
	UserID  int64                   `json:"userId" validate:"required"`
	StoreID int64                   `json:"storeId" validate:"required"`
	Tasks   []TaskItemCreateRequest `json:"tasks,omitempty"`
}

// AssignmentResponse asignación con los campos denormalizados que muestra la consola.
type AssignmentResponse struct {
	ID           int64      `json:"id"`
	Date         string     `json:"date"` // YYYY-MM-DD
	Status       string     `json:"status"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`

	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	UserRole string `json:"userRole"`

	StoreID        int64   `json:"storeId"`
	StoreName      string  `json:"storeName"`
	StoreCity      string  `json:"storeCity"`
	StoreType      string  `json:"storeType"`
	StoreLatitude  float64 `json:"storeLatitude"`
	StoreLongitude float64 `json:"storeLongitude"`
	StoreAddress   string  `json:"storeAddress,omitempty"`

	Tasks          []TaskItemResponse `json:"tasks"`
	CompletedTasks int                `json:"completedTasks"`
	TotalTasks     int                `json:"totalTasks"`
}
