package http

// EligibilityRequest defines query parameters for the conversation gate.
type EligibilityRequest struct {
	OwnerID  string `form:"owner_id" binding:"required,uuid"`
	PlayerID string `form:"player_id" binding:"required,uuid"`
}

type EligibilityResponse struct {
	Eligible bool `json:"eligible"`
}
