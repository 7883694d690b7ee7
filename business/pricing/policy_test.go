package pricing

import (
	"math"
	"reflect"
	"testing"

	"priceWise/domain"
)

// handModel builds a model with hand-picked coefficients over the layout
// [bias, log_price, event], so every score below can be checked on paper.
func handModel(itemID string, theta []float64, sigma float64) *ElasticityModel {
	return &ElasticityModel{
		ItemID: itemID,
		Encoder: Encoder{
			Weekday: CategoryMap{Baseline: "Monday", Index: map[string]int{}},
			Month:   CategoryMap{Baseline: "1", Index: map[string]int{}},
		},
		Theta:        theta,
		AInv:         identityScaled(len(theta), 1.0),
		Sigma:        sigma,
		Lambda:       1.0,
		Observations: 25,
	}
}

func handGrid(itemID string) PriceGrid {
	return PriceGrid{ItemID: itemID, Prices: []float64{8.0, 9.0, 10.0}, Reference: 9.0}
}

func baselineContext(itemID string) domain.Context {
	return domain.Context{ItemID: itemID, Weekday: "Monday", Month: 1}
}

func TestRecommendMaximizesRevenue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Explore = 0

	// mean = log(200) - log(p), so demand = 200/p - 1 and revenue = 200 - p:
	// strictly decreasing, the lowest grid price must win
	model := handModel("ITEM_1", []float64{math.Log(200.0), -1.0, 0}, 0)
	grid := handGrid("ITEM_1")

	rec := Recommend(baselineContext("ITEM_1"), grid, model, cfg)

	if rec.ChosenPrice != 8.0 || rec.ChosenIndex != 0 {
		t.Fatalf("chose %v at %d, want 8.0 at 0", rec.ChosenPrice, rec.ChosenIndex)
	}
	if len(rec.CandidateScores) != len(grid.Prices) {
		t.Fatalf("candidate scores = %d, want %d", len(rec.CandidateScores), len(grid.Prices))
	}
	for i, cs := range rec.CandidateScores {
		want := 200.0 - grid.Prices[i]
		if math.Abs(cs.PredictedRevenue-want) > 1e-9 {
			t.Fatalf("revenue[%d] = %v, want %v", i, cs.PredictedRevenue, want)
		}
		if cs.ExplorationBonus != 0 {
			t.Fatalf("bonus[%d] = %v, want 0 with exploration off", i, cs.ExplorationBonus)
		}
	}
	if rec.ExplorationApplied || rec.GuardrailOverridden || rec.PooledModel {
		t.Fatalf("unexpected flags in %+v", rec)
	}
	if rec.ElasticityCoef != -1.0 {
		t.Fatalf("elasticity = %v, want -1", rec.ElasticityCoef)
	}
}

func TestRecommendTieBreaksTowardReference(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Explore = 0
	cfg.ConversionFloor = 0

	// zero model: every candidate scores exactly zero
	model := handModel("ITEM_1", []float64{0, 0, 0}, 0)

	rec := Recommend(baselineContext("ITEM_1"), handGrid("ITEM_1"), model, cfg)

	if rec.ChosenPrice != 9.0 {
		t.Fatalf("chose %v, want the reference price 9.0 on a full tie", rec.ChosenPrice)
	}
	if rec.GuardrailOverridden {
		t.Fatal("tie-break is not a guardrail override")
	}
}

func TestRecommendConversionFloorOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Explore = 0
	cfg.ConversionFloor = 0.95

	// inelastic demand (coef -0.5) makes revenue rise with price, but the
	// demand drop from 9.0 to 10.0 breaches the conversion floor
	model := handModel("ITEM_1", []float64{2.0, -0.5, 0}, 0)

	rec := Recommend(baselineContext("ITEM_1"), handGrid("ITEM_1"), model, cfg)

	if rec.ChosenPrice != 9.0 {
		t.Fatalf("chose %v, want fallback to reference 9.0", rec.ChosenPrice)
	}
	if !rec.GuardrailOverridden {
		t.Fatal("expected GuardrailOverridden to be set")
	}
	// the revenue maximizer itself was the highest price
	best := rec.CandidateScores[0]
	for _, cs := range rec.CandidateScores[1:] {
		if cs.PredictedRevenue > best.PredictedRevenue {
			best = cs
		}
	}
	if best.Price != 10.0 {
		t.Fatalf("revenue maximizer = %v, scenario wants 10.0", best.Price)
	}
}

func TestRecommendMinMarginBlocks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Explore = 0
	cfg.MinMargin = 8.5

	model := handModel("ITEM_1", []float64{math.Log(200.0), -1.0, 0}, 0)

	rec := Recommend(baselineContext("ITEM_1"), handGrid("ITEM_1"), model, cfg)

	if !rec.CandidateScores[0].Blocked {
		t.Fatal("price 8.0 below MinMargin must be blocked")
	}
	if rec.CandidateScores[0].TotalScore != 0 {
		t.Fatalf("blocked candidate scored %v", rec.CandidateScores[0].TotalScore)
	}
	// with 8.0 out, revenue = 200 - p picks 9.0
	if rec.ChosenPrice != 9.0 {
		t.Fatalf("chose %v, want 9.0", rec.ChosenPrice)
	}
}

func TestRecommendAllBlockedFallsBackToReference(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinMargin = 100.0

	model := handModel("ITEM_1", []float64{math.Log(200.0), -1.0, 0}, 0)

	rec := Recommend(baselineContext("ITEM_1"), handGrid("ITEM_1"), model, cfg)

	if rec.ChosenPrice != 9.0 {
		t.Fatalf("chose %v, want reference 9.0 when every candidate is blocked", rec.ChosenPrice)
	}
	if !rec.GuardrailOverridden {
		t.Fatal("expected GuardrailOverridden to be set")
	}
	for i, cs := range rec.CandidateScores {
		if !cs.Blocked {
			t.Fatalf("candidate %d not blocked", i)
		}
	}
}

func TestRecommendExplorationPrefersUncertainty(t *testing.T) {
	// zero mean model with residual noise: revenue is zero everywhere, so
	// the exploration bonus k * std * p alone decides
	model := handModel("ITEM_1", []float64{0, 0, 0}, 1.0)
	grid := handGrid("ITEM_1")
	ctx := baselineContext("ITEM_1")

	cfg := DefaultConfig()
	cfg.Explore = 0
	cfg.ConversionFloor = 0
	if rec := Recommend(ctx, grid, model, cfg); rec.ChosenPrice != 9.0 {
		t.Fatalf("with k=0 chose %v, want reference 9.0", rec.ChosenPrice)
	}

	cfg.Explore = 0.8
	rec := Recommend(ctx, grid, model, cfg)
	if rec.ChosenPrice != 10.0 {
		t.Fatalf("with k>0 chose %v, want the most uncertain price 10.0", rec.ChosenPrice)
	}
	if !rec.ExplorationApplied {
		t.Fatal("expected ExplorationApplied to be set")
	}
	if rec.CandidateScores[2].ExplorationBonus <= rec.CandidateScores[0].ExplorationBonus {
		t.Fatalf("bonus must grow with price: %v", rec.CandidateScores)
	}
}

func TestRecommendPooledModelFlag(t *testing.T) {
	cfg := DefaultConfig()

	pooled := handModel("", []float64{math.Log(200.0), -1.0, 0}, 0)

	rec := Recommend(baselineContext("ITEM_1"), handGrid("ITEM_1"), pooled, cfg)
	if !rec.PooledModel {
		t.Fatal("expected PooledModel flag when scoring with the pooled model")
	}
}

func TestRecommendReportsUnknownCategories(t *testing.T) {
	cfg := DefaultConfig()

	model := handModel("ITEM_1", []float64{math.Log(200.0), -1.0, 0}, 0)
	ctx := domain.Context{ItemID: "ITEM_1", Weekday: "Funday", Month: 13}

	rec := Recommend(ctx, handGrid("ITEM_1"), model, cfg)

	if len(rec.UnknownCategories) != 2 {
		t.Fatalf("unknown categories = %v, want weekday and month entries", rec.UnknownCategories)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	model, err := Fit("ITEM_1", elasticHistory("ITEM_1"), cfg)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	grid, err := BuildGrid("ITEM_1", elasticHistory("ITEM_1"), cfg)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	ctx := baselineContext("ITEM_1")

	a := Recommend(ctx, grid, model, cfg)
	b := Recommend(ctx, grid, model, cfg)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs must yield identical decisions:\n%+v\n%+v", a, b)
	}
}
