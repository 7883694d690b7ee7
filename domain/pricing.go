package domain

import "time"

// Context describes the situation a price is requested for.
// It is immutable once built for a request.
type Context struct {
	ItemID    string `json:"item_id"`
	Weekday   string `json:"weekday"`
	Month     int    `json:"month"`
	IsEvent   bool   `json:"is_event"`
	EventName string `json:"event_name,omitempty"`
}

// CandidateScore is the full score breakdown for one grid price.
type CandidateScore struct {
	Price            float64 `json:"price"`
	PredictedDemand  float64 `json:"predicted_demand"`
	PredictedRevenue float64 `json:"predicted_revenue"`
	ExplorationBonus float64 `json:"exploration_bonus"`
	TotalScore       float64 `json:"total_score"`
	Blocked          bool    `json:"blocked,omitempty"` // excluded by the min-margin guardrail
}

// DecisionRecord is the immutable outcome of a single pricing request.
type DecisionRecord struct {
	ID                  string           `json:"id,omitempty"`
	ItemID              string           `json:"item_id"`
	Context             Context          `json:"context"`
	CandidateScores     []CandidateScore `json:"candidate_scores"`
	ChosenPrice         float64          `json:"chosen_price"`
	ChosenIndex         int              `json:"chosen_index"`
	ElasticityCoef      float64          `json:"elasticity_coefficient"`
	PooledModel         bool             `json:"pooled_model"`
	ExplorationApplied  bool             `json:"exploration_applied"`
	GuardrailOverridden bool             `json:"guardrail_overridden"`
	UnknownCategories   []string         `json:"unknown_categories,omitempty"`
	Rationale           string           `json:"rationale"`
	GeneratedAt         time.Time        `json:"generated_at,omitzero"`
}
