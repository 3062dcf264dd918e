package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrStoreNotFound      = errors.New("tienda no encontrada")
	ErrAssignmentNotFound = errors.New("asignación no encontrada")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrVisitNotFound      = errors.New("visita no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Reglas de la jerarquía de usuarios.
	ErrManagerRequired = errors.New("un PROMOTER requiere un manager con rol SFOS")
	ErrManagerNotSFOS  = errors.New("el manager debe tener rol SFOS")
	ErrNotAPromoter    = errors.New("el usuario no es un PROMOTER")

	// Reglas de asignaciones.
	ErrAssignmentOverlap = errors.New("el usuario ya tiene una asignación en esa fecha")

	// Flujo de validación de visitas: VALIDATED y REJECTED son terminales.
	ErrVisitAlreadyReviewed = errors.New("la visita ya fue validada o rechazada")
)
