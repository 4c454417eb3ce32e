package dto

type Suggestion struct {
	Name     string    `json:"name" validate:"required"`
	PlaceRef string    `json:"place_ref" validate:"required"`
	Location *Position `json:"location,omitempty"`
}

// SuggestionsRequest replaces the whole recent-suggestion list; it is not a
// delta. Sending an empty list clears it.
type SuggestionsRequest struct {
	Suggestions []Suggestion `json:"suggestions" validate:"dive"`
}
