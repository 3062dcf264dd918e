package entity

import "time"

// Estados de una asignación diaria.
const (
	AssignmentPlanned    = "PLANNED"
	AssignmentInProgress = "IN_PROGRESS"
	AssignmentDone       = "DONE"
	AssignmentCancelled  = "CANCELLED"
)

// Estados de una tarea dentro de la asignación.
const (
	TaskTodo       = "TODO"
	TaskInProgress = "IN_PROGRESS"
	TaskDone       = "DONE"
)

// Assignment vincula (usuario, tienda, día) con una checklist de tareas.
type Assignment struct {
	ID           int64
	Date         time.Time // solo el día es significativo
	Status       string
	CheckInTime  *time.Time // marcado por el móvil al llegar a la tienda
	CheckOutTime *time.Time
	UserID       int64
	StoreID      int64
	Tasks        []TaskItem
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Denormalizados por JOIN en el repositorio; no se persisten.
	UserName       string
	UserRole       string
	StoreName      string
	StoreCity      string
	StoreType      string
	StoreLatitude  float64
	StoreLongitude float64
	StoreAddress   string
}

// TaskItem una tarea de la checklist de una asignación.
type TaskItem struct {
	ID           int64
	AssignmentID int64
	Description  string
	Status       string // TODO | IN_PROGRESS | DONE
}

// CompletedTasks cuenta las tareas en estado DONE.
func (a *Assignment) CompletedTasks() int {
	n := 0
	for _, t := range a.Tasks {
		if t.Status == TaskDone {
			n++
		}
	}
	return n
}

// RecalculateStatus deriva el estado de la asignación a partir de sus tareas:
// todas DONE -> DONE; alguna DONE o IN_PROGRESS -> IN_PROGRESS; si no -> PLANNED.
// Una asignación CANCELLED conserva su estado.
func (a *Assignment) RecalculateStatus() {
	if a.Status == AssignmentCancelled {
		return
	}
	if len(a.Tasks) == 0 {
		a.Status = AssignmentPlanned
		return
	}
	done, inProgress := 0, 0
	for _, t := range a.Tasks {
		switch t.Status {
		case TaskDone:
			done++
		case TaskInProgress:
			inProgress++
		}
	}
	switch {
	case done == len(a.Tasks):
		a.Status = AssignmentDone
	case done > 0 || inProgress > 0:
		a.Status = AssignmentInProgress
	default:
		a.Status = AssignmentPlanned
	}
}
