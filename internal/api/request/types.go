package request

// StartRunRequest is the request body for starting a run
type StartRunRequest struct {
	// Seed fixes the draw sequence when set
	Seed *uint64 `json:"seed,omitempty"`
}

// ChoosePerkRequest is the request body for picking an offered perk
type ChoosePerkRequest struct {
	PerkID string `json:"perk_id"`
}
