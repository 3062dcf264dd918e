package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse respuesta de GET /api/dashboard/summary.
// Agregados calculados en el backend; la consola solo los muestra.
type DashboardSummaryResponse struct {
	TotalVisitsCompleted int64           `json:"totalVisitsCompleted"`
	TotalSales           decimal.Decimal `json:"totalSales"`
	AvgShelfShare        float64         `json:"avgShelfShare"`

	AssignmentsPlannedToday int64 `json:"assignmentsPlannedToday"`
	AssignmentsDoneToday    int64 `json:"assignmentsDoneToday"`
}
