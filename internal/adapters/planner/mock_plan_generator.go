package planner

import (
	"context"

	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

// MockPlanGenerator echoes the task list back in input order, or fails with
// a canned error.
type MockPlanGenerator struct {
	Err      error
	LastReq  *ports.TaskPlanRequest
	Override []string
}

func (m *MockPlanGenerator) GeneratePlan(ctx context.Context, req ports.TaskPlanRequest) (ports.TaskPlanResponse, error) {
	m.LastReq = &req

	if m.Err != nil {
		return ports.TaskPlanResponse{}, m.Err
	}

	order := m.Override
	if order == nil {
		order = req.Tasks
	}

	return ports.TaskPlanResponse{Order: order}, nil
}
