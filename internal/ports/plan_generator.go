package ports

import (
	"context"

	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
)

// Input handed to the external sequencing collaborator: the task names, the
// precomputed walking matrix, and the per-campus building name lists.
type TaskPlanRequest struct {
	Tasks             []string             `json:"tasks"`
	Matrix            []domain.MatrixEntry `json:"matrix"`
	BuildingsByCampus map[string][]string  `json:"buildings_by_campus"`
}

// Ordered task plan returned by the collaborator. The engine checks shape
// only; it never second-guesses the ordering.
type TaskPlanResponse struct {
	Order []string `json:"order"`
}

// Port for the external plan-generation collaborator.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req TaskPlanRequest) (TaskPlanResponse, error)
}
