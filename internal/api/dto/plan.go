package dto

import "github.com/dbal0503/MightyMammoths-sub000/internal/domain"

type TaskLocation struct {
	Name    string `json:"name" validate:"required"`
	PlaceID string `json:"place_id"`
}

type TasksRequest struct {
	Tasks []TaskLocation `json:"tasks" validate:"required,min=1,dive"`
}

type MatrixResponse struct {
	Entries []domain.MatrixEntry `json:"entries"`
}

type PlanResponse struct {
	Order  []string             `json:"order"`
	Matrix []domain.MatrixEntry `json:"matrix"`
}
