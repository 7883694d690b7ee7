package pricing

import (
	"math"

	"priceWise/domain"
)

// Score ties closer than this are broken toward the reference price.
const scoreEpsilon = 1e-9

// Recommend evaluates every candidate price in the grid under the demand
// model and picks the total-score maximizer, subject to guardrails.
// Pure given its inputs: no clock, no randomness, no mutation of model or
// grid. Decision id and timestamp are stamped by the service layer.
func Recommend(pctx domain.Context, grid PriceGrid, model *ElasticityModel, cfg Config) domain.DecisionRecord {
	scores := make([]domain.CandidateScore, 0, len(grid.Prices))

	var unknown []string
	bestIdx := -1
	refIdx := 0

	for i, p := range grid.Prices {
		if p == grid.Reference {
			refIdx = i
		}

		if cfg.MinMargin > 0 && p < cfg.MinMargin {
			scores = append(scores, domain.CandidateScore{Price: p, Blocked: true})
			continue
		}

		x, unseen := model.Encoder.Encode(pctx, p)
		if unknown == nil && len(unseen) > 0 {
			unknown = unseen
		}

		mean, std := model.Predict(x)

		demand := math.Expm1(mean)
		if demand < 0 {
			demand = 0
		}
		revenue := p * demand
		bonus := cfg.Explore * std * p

		cs := domain.CandidateScore{
			Price:            p,
			PredictedDemand:  demand,
			PredictedRevenue: revenue,
			ExplorationBonus: bonus,
			TotalScore:       revenue + bonus,
		}
		scores = append(scores, cs)

		if bestIdx < 0 {
			bestIdx = i
			continue
		}
		best := scores[bestIdx]
		switch {
		case cs.TotalScore > best.TotalScore+scoreEpsilon:
			bestIdx = i
		case math.Abs(cs.TotalScore-best.TotalScore) <= scoreEpsilon &&
			math.Abs(p-grid.Reference) < math.Abs(best.Price-grid.Reference):
			// stability guardrail: among ties prefer the price closest to
			// the historical median, so near-equal scores never oscillate
			// between extremes
			bestIdx = i
		}
	}

	overridden := false

	if bestIdx < 0 {
		// every candidate blocked by the margin guardrail; degrade to the
		// reference price rather than fail the request
		bestIdx = refIdx
		overridden = true
	} else if cfg.ConversionFloor > 0 && bestIdx != refIdx && !scores[refIdx].Blocked {
		refDemand := scores[refIdx].PredictedDemand
		if refDemand > 0 && scores[bestIdx].PredictedDemand < cfg.ConversionFloor*refDemand {
			bestIdx = refIdx
			overridden = true
		}
	}

	rec := domain.DecisionRecord{
		ItemID:              pctx.ItemID,
		Context:             pctx,
		CandidateScores:     scores,
		ChosenPrice:         grid.Prices[bestIdx],
		ChosenIndex:         bestIdx,
		ElasticityCoef:      model.PriceCoefficient(),
		PooledModel:         model.ItemID != pctx.ItemID,
		ExplorationApplied:  cfg.Explore > 0,
		GuardrailOverridden: overridden,
		UnknownCategories:   unknown,
	}
	rec.Rationale = renderSummary(rec, cfg)

	return rec
}
