package domain

// One stop of a multi-stop task plan: a display name plus the place
// identifier handed to the directions provider. The identifier may be blank
// when the caller never resolved the task's location.
type TaskLocation struct {
	Name    string `json:"name"`
	PlaceID string `json:"place_id"`
}

// One directed pair of a walking distance matrix. (A,B) and (B,A) are
// distinct entries; walking directions are not assumed symmetric.
type MatrixEntry struct {
	From         string `json:"from"`
	To           string `json:"to"`
	DistanceText string `json:"distance_text"`
	DurationText string `json:"duration_text"`
}

// PairKey is the ordered-tuple dedup key for a directed pair.
func PairKey(from, to string) string { return from + "|" + to }
