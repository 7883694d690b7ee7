package pricing

import (
	"context"
	"fmt"
	"testing"

	"priceWise/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory fakes ----

type fakeHistoryRepo struct {
	rows []domain.SalesObservation
	err  error
}

func (f *fakeHistoryRepo) GetAll(ctx context.Context) ([]domain.SalesObservation, error) {
	return f.rows, f.err
}

func (f *fakeHistoryRepo) GetByItem(ctx context.Context, itemID string) ([]domain.SalesObservation, error) {
	var out []domain.SalesObservation
	for _, r := range f.rows {
		if r.ItemID == itemID {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeHistoryRepo) ListItemIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, r := range f.rows {
		if !seen[r.ItemID] {
			seen[r.ItemID] = true
			out = append(out, r.ItemID)
		}
	}
	return out, f.err
}

type fakeArtifactRepo struct {
	blobs map[string][]byte
	saves int
}

func (f *fakeArtifactRepo) Save(ctx context.Context, name string, blob []byte) error {
	if f.blobs == nil {
		f.blobs = make(map[string][]byte)
	}
	f.blobs[name] = blob
	f.saves++
	return nil
}

func (f *fakeArtifactRepo) Load(ctx context.Context, name string) ([]byte, bool, error) {
	blob, ok := f.blobs[name]
	return blob, ok, nil
}

type fakeDecisionCache struct {
	decisions map[string]domain.DecisionRecord
	storeErr  error
}

func (f *fakeDecisionCache) StoreDecision(ctx context.Context, rec domain.DecisionRecord) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	if f.decisions == nil {
		f.decisions = make(map[string]domain.DecisionRecord)
	}
	f.decisions[rec.ID] = rec
	return nil
}

func (f *fakeDecisionCache) GetDecision(ctx context.Context, id string) (domain.DecisionRecord, bool, error) {
	rec, ok := f.decisions[id]
	return rec, ok, nil
}

type fakePublisher struct {
	published []domain.DecisionRecord
}

func (f *fakePublisher) PublishDecision(ctx context.Context, rec domain.DecisionRecord) error {
	f.published = append(f.published, rec)
	return nil
}

func newFittedService(t *testing.T, rows []domain.SalesObservation, cache DecisionCache, pub DecisionPublisher) (*PricingService, *fakeArtifactRepo) {
	t.Helper()

	artifacts := &fakeArtifactRepo{}
	svc := NewPricingService(&fakeHistoryRepo{rows: rows}, artifacts, nil, cache, pub, DefaultConfig(), "pricing-test")

	_, err := svc.Fit(context.Background())
	require.NoError(t, err)

	return svc, artifacts
}

// ---- tests ----

func TestServiceFitBuildsModelsAndPersists(t *testing.T) {
	rows := append(elasticHistory("ITEM_1"), elasticHistory("ITEM_2")...)
	// too little history for its own model, served by the pooled fallback
	rows = append(rows,
		obs("ITEM_3", "Monday", 1, false, 5.0, 10),
		obs("ITEM_3", "Tuesday", 1, false, 6.0, 8),
	)

	svc, artifacts := newFittedService(t, rows, nil, nil)

	report, err := svc.Fit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Items)
	assert.Contains(t, report.Skipped, "ITEM_3")
	assert.Equal(t, 2, artifacts.saves)

	// the sparse item still has a grid and gets pooled recommendations
	grid, err := svc.GridForItem("ITEM_3")
	require.NoError(t, err)
	assert.NotEmpty(t, grid.Prices)

	rec, err := svc.RecommendPrice(context.Background(), domain.Context{ItemID: "ITEM_3", Weekday: "Monday", Month: 1})
	require.NoError(t, err)
	assert.True(t, rec.PooledModel)
}

func TestServiceFitFailsWithoutHistory(t *testing.T) {
	svc := NewPricingService(&fakeHistoryRepo{}, &fakeArtifactRepo{}, nil, nil, nil, DefaultConfig(), "pricing-test")

	_, err := svc.Fit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pooled model")
}

func TestServiceRecommendStampsAndSideEffects(t *testing.T) {
	cache := &fakeDecisionCache{}
	pub := &fakePublisher{}
	svc, _ := newFittedService(t, elasticHistory("ITEM_1"), cache, pub)

	rec, err := svc.RecommendPrice(context.Background(), domain.Context{ItemID: "ITEM_1", Weekday: "Monday", Month: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.GeneratedAt.IsZero())
	assert.Len(t, pub.published, 1)

	stored, ok, err := cache.GetDecision(context.Background(), rec.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.ChosenPrice, stored.ChosenPrice)
}

func TestServiceRecommendSurvivesCacheFailure(t *testing.T) {
	cache := &fakeDecisionCache{storeErr: fmt.Errorf("redis down")}
	svc, _ := newFittedService(t, elasticHistory("ITEM_1"), cache, nil)

	rec, err := svc.RecommendPrice(context.Background(), domain.Context{ItemID: "ITEM_1", Weekday: "Monday", Month: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
}

func TestServiceRecommendUnknownItem(t *testing.T) {
	svc, _ := newFittedService(t, elasticHistory("ITEM_1"), nil, nil)

	_, err := svc.RecommendPrice(context.Background(), domain.Context{ItemID: "NOPE", Weekday: "Monday", Month: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no price grid")
}

func TestServiceRecommendWithoutArtifact(t *testing.T) {
	svc := NewPricingService(&fakeHistoryRepo{}, &fakeArtifactRepo{}, nil, nil, nil, DefaultConfig(), "pricing-test")

	_, err := svc.RecommendPrice(context.Background(), domain.Context{ItemID: "ITEM_1"})
	require.Error(t, err)

	_, err = svc.GridForItem("ITEM_1")
	require.Error(t, err)
}

func TestServiceArtifactRoundTrip(t *testing.T) {
	_, artifacts := newFittedService(t, elasticHistory("ITEM_1"), nil, nil)

	// a fresh service restores the persisted snapshot instead of refitting
	restored := NewPricingService(&fakeHistoryRepo{}, artifacts, nil, nil, nil, DefaultConfig(), "pricing-test")
	require.NoError(t, restored.LoadArtifact(context.Background()))

	rec, err := restored.RecommendPrice(context.Background(), domain.Context{ItemID: "ITEM_1", Weekday: "Monday", Month: 1})
	require.NoError(t, err)
	assert.False(t, rec.PooledModel)
	assert.Greater(t, rec.ChosenPrice, 0.0)
}

func TestServiceLoadArtifactMissing(t *testing.T) {
	svc := NewPricingService(&fakeHistoryRepo{}, &fakeArtifactRepo{}, nil, nil, nil, DefaultConfig(), "pricing-test")

	err := svc.LoadArtifact(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestServiceExplainDecision(t *testing.T) {
	cache := &fakeDecisionCache{}
	svc, _ := newFittedService(t, elasticHistory("ITEM_1"), cache, nil)

	rec, err := svc.RecommendPrice(context.Background(), domain.Context{ItemID: "ITEM_1", Weekday: "Monday", Month: 1})
	require.NoError(t, err)

	raw, summary, err := svc.ExplainDecision(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, rec.Rationale, summary)

	_, _, err = svc.ExplainDecision(context.Background(), "missing-id")
	require.Error(t, err)
}

func TestServiceExplainWithoutCache(t *testing.T) {
	svc, _ := newFittedService(t, elasticHistory("ITEM_1"), nil, nil)

	_, _, err := svc.ExplainDecision(context.Background(), "any")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache")
}
