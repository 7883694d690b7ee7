package pricing

import (
	"errors"
	"math"
	"testing"

	"priceWise/domain"
)

// history where demand clearly falls as price rises
func elasticHistory(itemID string) []domain.SalesObservation {
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	prices := []float64{8.0, 9.0, 10.0, 11.0, 12.0}

	rows := make([]domain.SalesObservation, 0, 25)
	for i := 0; i < 25; i++ {
		p := prices[i%len(prices)]
		qty := int(math.Round(120.0 / p))
		rows = append(rows, obs(itemID, weekdays[i%len(weekdays)], 1+i%3, false, p, qty))
	}
	return rows
}

func TestFitTooFewObservations(t *testing.T) {
	cfg := DefaultConfig()

	history := []domain.SalesObservation{
		obs("SPARSE_1", "Monday", 1, false, 9.5, 3),
		obs("SPARSE_1", "Tuesday", 1, false, 10.0, 2),
	}

	_, err := Fit("SPARSE_1", history, cfg)

	var insufficientErr *InsufficientDataError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("err = %v, want InsufficientDataError", err)
	}
	if insufficientErr.ItemID != "SPARSE_1" || insufficientErr.Observations != 2 {
		t.Fatalf("unexpected error detail: %+v", insufficientErr)
	}
}

func TestFitRecoversNegativeElasticity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lambda = 0.01

	model, err := Fit("ITEM_1", elasticHistory("ITEM_1"), cfg)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	if coef := model.PriceCoefficient(); coef >= 0 {
		t.Fatalf("price coefficient = %v, want negative", coef)
	}
	if model.Observations != 25 {
		t.Fatalf("observations = %d, want 25", model.Observations)
	}
}

func TestPredictDemandMonotoneInPrice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lambda = 0.01

	model, err := Fit("ITEM_1", elasticHistory("ITEM_1"), cfg)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	ctx := domain.Context{ItemID: "ITEM_1", Weekday: "Monday", Month: 1}

	prev := math.Inf(1)
	for _, p := range []float64{8.0, 9.0, 10.0, 11.0, 12.0} {
		x, _ := model.Encoder.Encode(ctx, p)
		mean, _ := model.Predict(x)
		if mean > prev {
			t.Fatalf("mean log-demand rose from %v to %v at price %v", prev, mean, p)
		}
		prev = mean
	}
}

func TestPredictDispersionGrowsWithLessSupport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lambda = 0.5

	// Monday dominates the history, Sunday appears once
	rows := elasticHistory("ITEM_1")
	rows = append(rows, obs("ITEM_1", "Sunday", 1, false, 10.0, 11))

	model, err := Fit("ITEM_1", rows, cfg)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	common, _ := model.Encoder.Encode(domain.Context{ItemID: "ITEM_1", Weekday: "Monday", Month: 1}, 10.0)
	rare, _ := model.Encoder.Encode(domain.Context{ItemID: "ITEM_1", Weekday: "Sunday", Month: 1}, 10.0)

	_, stdCommon := model.Predict(common)
	_, stdRare := model.Predict(rare)

	if stdRare <= stdCommon {
		t.Fatalf("std for rare context = %v, want > %v for common context", stdRare, stdCommon)
	}
}

func TestFitPooledModelOverAllItems(t *testing.T) {
	cfg := DefaultConfig()

	rows := append(elasticHistory("ITEM_1"), elasticHistory("ITEM_2")...)

	model, err := Fit("", rows, cfg)
	if err != nil {
		t.Fatalf("fit pooled: %v", err)
	}
	if model.ItemID != "" {
		t.Fatalf("pooled model item id = %q, want empty", model.ItemID)
	}
	if model.PriceCoefficient() >= 0 {
		t.Fatalf("pooled price coefficient = %v, want negative", model.PriceCoefficient())
	}
}
