// Package planner is the adapter for the external plan-generation
// collaborator, reached over NATS request/reply. The collaborator owns the
// sequencing intelligence; this side only ships the matrix and task list and
// shape-checks the reply.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
)

const defaultSubject = "plans.generate"

type NATSPlanGenerator struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

func NewNATSPlanGenerator(nc *nats.Conn, subject string, timeout time.Duration) (*NATSPlanGenerator, error) {
	if nc == nil {
		return nil, errors.New("plan generator: nats connection is nil")
	}
	if subject == "" {
		subject = defaultSubject
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &NATSPlanGenerator{nc: nc, subject: subject, timeout: timeout}, nil
}

// GeneratePlan sends the request over NATS request/reply and validates the
// reply's shape only; the ordering itself is never interpreted here.
func (g *NATSPlanGenerator) GeneratePlan(ctx context.Context, req ports.TaskPlanRequest) (ports.TaskPlanResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return ports.TaskPlanResponse{}, fmt.Errorf("generate plan: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	msg, err := g.nc.RequestWithContext(ctx, g.subject, payload)
	if err != nil {
		return ports.TaskPlanResponse{}, fmt.Errorf("generate plan: request on %q: %w", g.subject, err)
	}

	var resp ports.TaskPlanResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return ports.TaskPlanResponse{}, fmt.Errorf("generate plan: decode reply: %w", err)
	}

	if len(resp.Order) == 0 {
		return ports.TaskPlanResponse{}, errors.New("generate plan: reply has no task order")
	}

	return resp, nil
}
