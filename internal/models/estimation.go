package models

// EstimationRequest carries the attribute set the value estimator prices.
// Every field is optional; unrecognized values degrade to a zero coefficient
// instead of failing.
type EstimationRequest struct {
	ModelType       string `json:"model_type"`
	Competition     string `json:"competition"`
	ConditionOrigin string `json:"condition_origin"`
	PhysicalState   string `json:"physical_state"`
	FlockingOrigin  string `json:"flocking_origin"`
	Signed          bool   `json:"signed"`
	SignedProof     bool   `json:"signed_proof"`
	SeasonYear      int    `json:"season_year"`
}

// EstimationFactor is one line of the estimate breakdown
type EstimationFactor struct {
	Label string  `json:"label"`
	Coeff float64 `json:"coeff"`
}

// EstimationResult is the estimator's output. Never an error: estimates are
// advisory and partial input just produces a less accurate number.
type EstimationResult struct {
	BasePrice      float64            `json:"base_price"`
	ModelType      string             `json:"model_type"`
	CoeffSum       float64            `json:"coeff_sum"`
	EstimatedPrice float64            `json:"estimated_price"`
	Breakdown      []EstimationFactor `json:"breakdown"`
}
