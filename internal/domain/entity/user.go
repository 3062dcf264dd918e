package entity

import "time"

// Roles válidos para User.
const (
	RolePromoter   = "PROMOTER"
	RoleSFOS       = "SFOS"
	RoleSupervisor = "SUPERVISOR"
)

// Estados válidos para User.
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

// User representa un miembro de la fuerza de campo. Jerarquía de dos niveles:
// un PROMOTER siempre depende de un manager con rol SFOS; SFOS y SUPERVISOR
// no tienen manager (ManagerID nil).
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         string
	Status       string
	Region       string
	ManagerID    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Derivados por JOIN en el repositorio; no se persisten.
	ManagerName       string
	SubordinatesCount int
}

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	return r == RolePromoter || r == RoleSFOS || r == RoleSupervisor
}
