package analytics

import (
	"time"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
	"github.com/merchmaroc/merchandising-api/internal/domain/repository"
)

// DashboardUseCase agrega los KPIs de la consola a partir de visitas y
// asignaciones. Los cálculos viven en SQL; aquí solo se componen.
type DashboardUseCase struct {
	visitRepo      repository.VisitRepository
	assignmentRepo repository.AssignmentRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(visitRepo repository.VisitRepository, assignmentRepo repository.AssignmentRepository) *DashboardUseCase {
	return &DashboardUseCase{visitRepo: visitRepo, assignmentRepo: assignmentRepo}
}

// Summary KPIs del día: visitas completadas, ventas, shelf share promedio y
// asignaciones de hoy por estado.
func (uc *DashboardUseCase) Summary() (*dto.DashboardSummaryResponse, error) {
	visits, err := uc.visitRepo.CountCompleted()
	if err != nil {
		return nil, err
	}
	sales, err := uc.visitRepo.SumSales()
	if err != nil {
		return nil, err
	}
	share, err := uc.visitRepo.AvgShelfShare()
	if err != nil {
		return nil, err
	}
	today := time.Now()
	planned, err := uc.assignmentRepo.CountByDateAndStatus(today, entity.AssignmentPlanned)
	if err != nil {
		return nil, err
	}
	done, err := uc.assignmentRepo.CountByDateAndStatus(today, entity.AssignmentDone)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryResponse{
		TotalVisitsCompleted:    visits,
		TotalSales:              sales,
		AvgShelfShare:           share,
		AssignmentsPlannedToday: planned,
		AssignmentsDoneToday:    done,
	}, nil
}
