package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

// TaskPlan bundles what the plan-generation collaborator returned together
// with the matrix it was given, so callers can render both.
type TaskPlan struct {
	Order  []string
	Matrix []domain.MatrixEntry
}

// PlanTasks builds the walking matrix for the task list and hands it, with
// the per-campus building names, to the external plan-generation
// collaborator. The returned ordering is checked for structural shape only.
func PlanTasks(
	ctx context.Context,
	tasks []domain.TaskLocation,
	builder *MatrixBuilder,
	generator ports.PlanGenerator,
	campuses *campus.Registry,
) (*TaskPlan, error) {
	if len(tasks) == 0 {
		return nil, errors.New("plan tasks: no tasks given")
	}

	matrix := builder.BuildMatrix(ctx, tasks)

	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}

	resp, err := generator.GeneratePlan(ctx, ports.TaskPlanRequest{
		Tasks:             names,
		Matrix:            matrix,
		BuildingsByCampus: campuses.BuildingNamesByCampus(),
	})
	if err != nil {
		return nil, fmt.Errorf("plan tasks: generate plan: %w", err)
	}

	if len(resp.Order) == 0 {
		return nil, errors.New("plan tasks: collaborator returned an empty ordering")
	}

	return &TaskPlan{Order: resp.Order, Matrix: matrix}, nil
}
