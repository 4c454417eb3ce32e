package handlers

import (
	"log"
	"net/http"

	"github.com/dbal0503/MightyMammoths-sub000/internal/api/dto"
	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
	"github.com/dbal0503/MightyMammoths-sub000/internal/services"
)

type PlanHandler struct {
	Builder   *services.MatrixBuilder
	Generator ports.PlanGenerator
	Campuses  *campus.Registry
}

// Matrix builds the all-pairs walking matrix for the submitted task list.
// Pairs the provider could not price are omitted, not errored.
func (h *PlanHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TasksRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entries := h.Builder.BuildMatrix(r.Context(), toTaskLocations(req.Tasks))
	writeJSON(w, r, http.StatusOK, dto.MatrixResponse{Entries: entries})
}

// Plan builds the matrix and asks the external plan collaborator for a task
// ordering.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Generator == nil {
		writeError(w, r, http.StatusServiceUnavailable, "plan generation is not configured")
		return
	}

	var req dto.TasksRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	plan, err := services.PlanTasks(r.Context(), toTaskLocations(req.Tasks), h.Builder, h.Generator, h.Campuses)
	if err != nil {
		log.Printf("plan tasks failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "plan generation failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponse{Order: plan.Order, Matrix: plan.Matrix})
}

func toTaskLocations(tasks []dto.TaskLocation) []domain.TaskLocation {
	out := make([]domain.TaskLocation, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, domain.TaskLocation{Name: t.Name, PlaceID: t.PlaceID})
	}
	return out
}
