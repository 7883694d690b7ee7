package pricing

import (
	"math"
	"sort"

	"priceWise/domain"
)

// PriceGrid is the ordered set of candidate prices for one item.
// Invariant: non-empty, strictly increasing, all prices > 0.
// Reference is the grid price closest to the historical median; the policy
// uses it for tie-breaking and as the guardrail fallback.
type PriceGrid struct {
	ItemID    string    `json:"item_id"`
	Prices    []float64 `json:"prices"`
	Reference float64   `json:"reference_price"`
}

// BuildGrid derives an item's candidate grid from its price history:
// distinct observed prices, widened by the configured margins, midpoint
// interpolated up to GridMinCandidates.
func BuildGrid(itemID string, history []domain.SalesObservation, cfg Config) (PriceGrid, error) {
	observed := make([]float64, 0, len(history))
	for _, obs := range history {
		p := roundCents(obs.Price.InexactFloat64())
		if p > 0 {
			observed = append(observed, p)
		}
	}
	if len(observed) == 0 {
		return PriceGrid{}, &EmptyGridError{ItemID: itemID}
	}

	sort.Float64s(observed)
	median := observed[len(observed)/2]
	if len(observed)%2 == 0 {
		median = (observed[len(observed)/2-1] + observed[len(observed)/2]) / 2
	}

	distinct := dedupe(observed)

	lo := roundCents(distinct[0] * cfg.GridLowerMargin)
	hi := roundCents(distinct[len(distinct)-1] * cfg.GridUpperMargin)
	if lo > 0 && lo < distinct[0] {
		distinct = append([]float64{lo}, distinct...)
	}
	if hi > distinct[len(distinct)-1] {
		distinct = append(distinct, hi)
	}

	prices := interpolate(distinct, cfg.GridMinCandidates, cfg.GridMinSpacing)

	return PriceGrid{
		ItemID:    itemID,
		Prices:    prices,
		Reference: nearest(prices, median),
	}, nil
}

func roundCents(p float64) float64 {
	return math.Round(p*100) / 100
}

func dedupe(sorted []float64) []float64 {
	out := sorted[:0:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			out = append(out, p)
		}
	}
	return out
}

// interpolate splits the widest gaps until the grid reaches minCount or no
// gap can be split without violating minSpacing.
func interpolate(prices []float64, minCount int, minSpacing float64) []float64 {
	out := append([]float64(nil), prices...)
	for len(out) < minCount {
		widest := -1
		widestGap := 0.0
		for i := 0; i < len(out)-1; i++ {
			gap := out[i+1] - out[i]
			if gap > widestGap {
				widestGap = gap
				widest = i
			}
		}
		if widest < 0 || widestGap/2 < minSpacing {
			break
		}
		mid := roundCents((out[widest] + out[widest+1]) / 2)
		if mid <= out[widest] || mid >= out[widest+1] {
			break
		}
		out = append(out, 0)
		copy(out[widest+2:], out[widest+1:])
		out[widest+1] = mid
	}
	return out
}

func nearest(prices []float64, target float64) float64 {
	best := prices[0]
	for _, p := range prices[1:] {
		if math.Abs(p-target) < math.Abs(best-target) {
			best = p
		}
	}
	return best
}
