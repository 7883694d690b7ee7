package pricing

import (
	"encoding/json"
	"fmt"
	"strings"

	"priceWise/domain"
)

// DecisionExplanation is the structured export of a DecisionRecord.
type DecisionExplanation struct {
	DecisionID          string                  `json:"decision_id,omitempty"`
	ItemID              string                  `json:"item_id"`
	Context             domain.Context          `json:"context"`
	Grid                []float64               `json:"grid"`
	Candidates          []domain.CandidateScore `json:"candidates"`
	ChosenPrice         float64                 `json:"chosen_price"`
	ChosenIndex         int                     `json:"chosen_index"`
	ElasticityCoef      float64                 `json:"elasticity_coefficient"`
	ElasticitySign      string                  `json:"elasticity_sign"`
	PooledModel         bool                    `json:"pooled_model"`
	ExplorationApplied  bool                    `json:"exploration_applied"`
	GuardrailOverridden bool                    `json:"guardrail_overridden"`
	UnknownCategories   []string                `json:"unknown_categories,omitempty"`
	Summary             string                  `json:"summary"`
}

// Explain renders a decision record as a structured JSON document plus a
// plain-language summary. Both are deterministic functions of the record:
// a fixed template filled from structured fields, never free-form text.
func Explain(rec domain.DecisionRecord) ([]byte, string, error) {
	grid := make([]float64, len(rec.CandidateScores))
	for i, cs := range rec.CandidateScores {
		grid[i] = cs.Price
	}

	sign := "negative"
	if rec.ElasticityCoef >= 0 {
		sign = "non_negative"
	}

	expl := DecisionExplanation{
		DecisionID:          rec.ID,
		ItemID:              rec.ItemID,
		Context:             rec.Context,
		Grid:                grid,
		Candidates:          rec.CandidateScores,
		ChosenPrice:         rec.ChosenPrice,
		ChosenIndex:         rec.ChosenIndex,
		ElasticityCoef:      rec.ElasticityCoef,
		ElasticitySign:      sign,
		PooledModel:         rec.PooledModel,
		ExplorationApplied:  rec.ExplorationApplied,
		GuardrailOverridden: rec.GuardrailOverridden,
		UnknownCategories:   rec.UnknownCategories,
		Summary:             rec.Rationale,
	}

	raw, err := json.MarshalIndent(expl, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal decision explanation: %w", err)
	}

	return raw, rec.Rationale, nil
}

// renderSummary fills the fixed rationale template from the record fields.
func renderSummary(rec domain.DecisionRecord, cfg Config) string {
	parts := make([]string, 0, 8)

	event := ""
	if rec.Context.IsEvent {
		event = " with a holiday/event"
	}
	parts = append(parts, fmt.Sprintf(
		"Recommended price: $%.2f for item %s on %s (month %d)%s.",
		rec.ChosenPrice, rec.ItemID, rec.Context.Weekday, rec.Context.Month, event,
	))

	chosen := rec.CandidateScores[rec.ChosenIndex]
	parts = append(parts, fmt.Sprintf(
		"This choice maximizes expected revenue on the tested grid by balancing price against predicted demand: at $%.2f the model expects about %.2f units and $%.2f revenue.",
		chosen.Price, chosen.PredictedDemand, chosen.PredictedRevenue,
	))

	blocked := 0
	for _, cs := range rec.CandidateScores {
		if cs.Blocked {
			blocked++
		}
	}
	if blocked > 0 {
		parts = append(parts, fmt.Sprintf(
			"%d price(s) below the minimum margin $%.2f were blocked by a guardrail.",
			blocked, cfg.MinMargin,
		))
	}

	if rec.GuardrailOverridden {
		parts = append(parts, fmt.Sprintf(
			"The optimizer's pick was overridden by the conversion guardrail; the historical reference price $%.2f was used instead.",
			rec.ChosenPrice,
		))
	}

	if rec.ExplorationApplied {
		parts = append(parts, "An exploration bonus slightly prefers prices where the model is less certain, helping discover better options over time.")
	}

	if len(rec.UnknownCategories) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Unseen context values (%s) were mapped to the baseline bucket.",
			strings.Join(rec.UnknownCategories, ", "),
		))
	}

	if rec.PooledModel {
		parts = append(parts, "This item had too little history for its own model, so the pooled cross-item model was used.")
	}

	if rec.ElasticityCoef >= 0 {
		parts = append(parts, fmt.Sprintf(
			"Warning: the fitted price elasticity is non-negative (%.3f); treat this recommendation as a data-quality signal.",
			rec.ElasticityCoef,
		))
	}

	return strings.Join(parts, " ")
}
