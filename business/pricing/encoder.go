package pricing

import (
	"math"
	"sort"
	"strconv"

	"priceWise/domain"
)

// CategoryMap is a fixed category-to-dummy-column mapping learned at fit
// time. The most frequent category becomes the baseline and gets no dummy;
// every other observed category gets one. Unseen values at inference time
// fall back to the baseline bucket instead of failing.
type CategoryMap struct {
	Baseline string         `json:"baseline"`
	Index    map[string]int `json:"index"`
}

func buildCategoryMap(values []string) CategoryMap {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	baseline := ""
	for v, n := range counts {
		if baseline == "" || n > counts[baseline] || (n == counts[baseline] && v < baseline) {
			baseline = v
		}
	}

	rest := make([]string, 0, len(counts))
	for v := range counts {
		if v != baseline {
			rest = append(rest, v)
		}
	}
	sort.Strings(rest)

	index := make(map[string]int, len(rest))
	for i, v := range rest {
		index[v] = i
	}

	return CategoryMap{Baseline: baseline, Index: index}
}

// Lookup returns the dummy offset for a category. The baseline maps to -1
// (no dummy column). The second return reports whether the category was
// seen during fit.
func (m CategoryMap) Lookup(v string) (int, bool) {
	if v == m.Baseline {
		return -1, true
	}
	if off, ok := m.Index[v]; ok {
		return off, true
	}
	return -1, false
}

// Encoder maps (Context, price) to the model feature vector. It is a pure
// function of its inputs; the category maps are fixed once fit.
type Encoder struct {
	Weekday CategoryMap `json:"weekday"`
	Month   CategoryMap `json:"month"`
}

func buildEncoder(history []domain.SalesObservation) Encoder {
	weekdays := make([]string, 0, len(history))
	months := make([]string, 0, len(history))
	for _, obs := range history {
		weekdays = append(weekdays, obs.Weekday)
		months = append(months, monthKey(obs.Month))
	}
	return Encoder{
		Weekday: buildCategoryMap(weekdays),
		Month:   buildCategoryMap(months),
	}
}

// Layout: [bias, log_price, weekday dummies, month dummies, event flag].
func (e Encoder) Dim() int {
	return 2 + len(e.Weekday.Index) + len(e.Month.Index) + 1
}

// Encode builds the feature vector for a candidate price. Price enters as
// its natural log only. Unseen categories map to the baseline bucket and
// are reported back so the decision rationale can surface them.
func (e Encoder) Encode(ctx domain.Context, price float64) ([]float64, []string) {
	x := make([]float64, e.Dim())
	x[0] = 1.0
	x[1] = math.Log(price)

	var unknown []string

	weekdayBase := 2
	if off, known := e.Weekday.Lookup(ctx.Weekday); known {
		if off >= 0 {
			x[weekdayBase+off] = 1.0
		}
	} else {
		unknown = append(unknown, "weekday="+ctx.Weekday)
	}

	monthBase := weekdayBase + len(e.Weekday.Index)
	if off, known := e.Month.Lookup(monthKey(ctx.Month)); known {
		if off >= 0 {
			x[monthBase+off] = 1.0
		}
	} else {
		unknown = append(unknown, "month="+monthKey(ctx.Month))
	}

	if ctx.IsEvent {
		x[monthBase+len(e.Month.Index)] = 1.0
	}

	return x, unknown
}

func monthKey(month int) string {
	return strconv.Itoa(month)
}
