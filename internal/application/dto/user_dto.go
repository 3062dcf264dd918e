package dto

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
// SfosID es obligatorio cuando Role es PROMOTER.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=PROMOTER SFOS SUPERVISOR"`
	Region   string `json:"region" validate:"required"`
	SfosID   *int64 `json:"sfosId,omitempty"`
}

// UserResponse salida de un usuario (sin password). ManagerID/ManagerName solo
// para PROMOTERs; SubordinatesCount cuenta los promoters a cargo de un SFOS.
type UserResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	Status            string `json:"status"`
	Region            string `json:"region,omitempty"`
	ManagerID         *int64 `json:"managerId,omitempty"`
	ManagerName       string `json:"managerName,omitempty"`
	SubordinatesCount int    `json:"subordinatesCount"`
}

// UserStatsResponse conteo de usuarios por rol (GET /api/users/stats).
type UserStatsResponse struct {
	SFOS        int64 `json:"sfos"`
	Promoters   int64 `json:"promoters"`
	Supervisors int64 `json:"supervisors"`
}
