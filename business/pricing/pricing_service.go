package pricing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"priceWise/domain"
	"priceWise/pkg/logger"

	"github.com/google/uuid"
)

// ---- Repository interfaces ----

type SalesHistoryRepository interface {
	GetAll(ctx context.Context) ([]domain.SalesObservation, error)
	GetByItem(ctx context.Context, itemID string) ([]domain.SalesObservation, error)
	ListItemIDs(ctx context.Context) ([]string, error)
}

// ArtifactRepository persists the fitted snapshot as an opaque blob.
type ArtifactRepository interface {
	Save(ctx context.Context, name string, blob []byte) error
	Load(ctx context.Context, name string) ([]byte, bool, error)
}

// DecisionCache keeps recent decisions addressable by id for the explain
// endpoint. Optional; a nil cache disables it.
type DecisionCache interface {
	StoreDecision(ctx context.Context, rec domain.DecisionRecord) error
	GetDecision(ctx context.Context, id string) (domain.DecisionRecord, bool, error)
}

// DecisionPublisher emits served decisions for downstream audit.
// Optional; a nil publisher disables it.
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, rec domain.DecisionRecord) error
}

// ---- Usecase / Service ----

type PricingService struct {
	historyRepo  SalesHistoryRepository
	artifactRepo ArtifactRepository
	cfgRepo      ConfigRepository
	cache        DecisionCache
	publisher    DecisionPublisher
	defaultCfg   Config
	artifactName string

	mu       sync.RWMutex
	snapshot *ArtifactSnapshot
}

func NewPricingService(
	historyRepo SalesHistoryRepository,
	artifactRepo ArtifactRepository,
	cfgRepo ConfigRepository,
	cache DecisionCache,
	publisher DecisionPublisher,
	defaultCfg Config,
	artifactName string,
) *PricingService {
	return &PricingService{
		historyRepo:  historyRepo,
		artifactRepo: artifactRepo,
		cfgRepo:      cfgRepo,
		cache:        cache,
		publisher:    publisher,
		defaultCfg:   defaultCfg,
		artifactName: artifactName,
	}
}

func (s *PricingService) currentSnapshot() *ArtifactSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *PricingService) swapSnapshot(snap *ArtifactSnapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

//  Fitting / artifacts

type FitReport struct {
	FittedAt time.Time         `json:"fitted_at"`
	Items    int               `json:"items"`
	Skipped  map[string]string `json:"skipped,omitempty"`
}

// Fit refits every item model, the pooled fallback, and all grids, persists
// the artifact, and swaps the serving snapshot. Single-writer by design:
// scoring keeps reading the previous snapshot until the swap.
func (s *PricingService) Fit(ctx context.Context) (FitReport, error) {
	if err := ctx.Err(); err != nil {
		return FitReport{}, fmt.Errorf("context error: %w", err)
	}

	all, err := s.historyRepo.GetAll(ctx)
	if err != nil {
		return FitReport{}, fmt.Errorf("load sales history: %w", err)
	}

	pooled, err := Fit("", all, s.defaultCfg)
	if err != nil {
		return FitReport{}, fmt.Errorf("fit pooled model: %w", err)
	}

	byItem := make(map[string][]domain.SalesObservation)
	for _, obs := range all {
		byItem[obs.ItemID] = append(byItem[obs.ItemID], obs)
	}

	itemIDs := make([]string, 0, len(byItem))
	for id := range byItem {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	snap := &ArtifactSnapshot{
		FittedAt: time.Now().UTC(),
		Pooled:   pooled,
		Models:   make(map[string]*ElasticityModel, len(itemIDs)),
		Grids:    make(map[string]PriceGrid, len(itemIDs)),
		Skipped:  make(map[string]string),
	}

	for _, itemID := range itemIDs {
		rows := byItem[itemID]
		cfg := s.loadConfigForItem(ctx, itemID)

		grid, err := BuildGrid(itemID, rows, cfg)
		if err != nil {
			// EmptyGridError: item cannot be priced at all
			snap.Skipped[itemID] = err.Error()
			continue
		}
		snap.Grids[itemID] = grid

		model, err := Fit(itemID, rows, cfg)
		if err != nil {
			// InsufficientDataError: the pooled model serves this item
			snap.Skipped[itemID] = err.Error()
			continue
		}
		snap.Models[itemID] = model

		if model.PriceCoefficient() >= 0 {
			logger.Warn("pricing_fit_anomalous_elasticity",
				"item_id", itemID,
				"price_coefficient", model.PriceCoefficient(),
				"observations", model.Observations,
			)
		}
	}

	blob, err := EncodeSnapshot(snap)
	if err != nil {
		return FitReport{}, err
	}
	if err := s.artifactRepo.Save(ctx, s.artifactName, blob); err != nil {
		return FitReport{}, fmt.Errorf("save artifact: %w", err)
	}

	s.swapSnapshot(snap)

	logger.Info("pricing_fit_complete",
		"items", len(snap.Models),
		"grids", len(snap.Grids),
		"skipped", len(snap.Skipped),
		"pooled_observations", pooled.Observations,
	)

	return FitReport{
		FittedAt: snap.FittedAt,
		Items:    len(snap.Models),
		Skipped:  snap.Skipped,
	}, nil
}

// LoadArtifact restores the last persisted snapshot so the service can
// serve without refitting on every start.
func (s *PricingService) LoadArtifact(ctx context.Context) error {
	blob, ok, err := s.artifactRepo.Load(ctx, s.artifactName)
	if err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}
	if !ok {
		return fmt.Errorf("artifact %q not found", s.artifactName)
	}

	snap, err := DecodeSnapshot(blob)
	if err != nil {
		return err
	}

	s.swapSnapshot(snap)

	logger.Info("pricing_artifact_loaded",
		"artifact", s.artifactName,
		"items", len(snap.Models),
		"fitted_at", snap.FittedAt,
	)
	return nil
}

//  Recommendation / serving

// RecommendPrice scores the item's grid for the given context and returns
// the decision record. Scoring-time anomalies (unknown categories, guardrail
// triggers) degrade gracefully inside the record; only a missing grid or
// missing snapshot is an error.
func (s *PricingService) RecommendPrice(ctx context.Context, pctx domain.Context) (domain.DecisionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.DecisionRecord{}, fmt.Errorf("context error: %w", err)
	}

	snap := s.currentSnapshot()
	if snap == nil {
		return domain.DecisionRecord{}, fmt.Errorf("no fitted pricing artifact loaded")
	}

	grid, ok := snap.GridFor(pctx.ItemID)
	if !ok {
		return domain.DecisionRecord{}, fmt.Errorf("no price grid for item %s", pctx.ItemID)
	}

	model, _ := snap.ModelFor(pctx.ItemID)
	cfg := s.loadConfigForItem(ctx, pctx.ItemID)

	rec := Recommend(pctx, grid, model, cfg)
	rec.ID = uuid.NewString()
	rec.GeneratedAt = time.Now().UTC()

	tid := TraceIDFromContext(ctx)
	logger.Debug("pricing_recommend",
		"trace_id", tid,
		"decision_id", rec.ID,
		"item_id", rec.ItemID,
		"chosen_price", rec.ChosenPrice,
		"guardrail_overridden", rec.GuardrailOverridden,
		"pooled_model", rec.PooledModel,
		"candidates", len(rec.CandidateScores),
	)

	guardrail := "none"
	if rec.GuardrailOverridden {
		guardrail = "overridden"
	}
	modelKind := "item"
	if rec.PooledModel {
		modelKind = "pooled"
	}
	PricingDecisionsTotal.WithLabelValues(rec.Context.Weekday, guardrail, modelKind).Inc()

	if s.cache != nil {
		if err := s.cache.StoreDecision(ctx, rec); err != nil {
			logger.Warn("pricing_decision_cache_store_failed", "decision_id", rec.ID, "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishDecision(ctx, rec); err != nil {
			logger.Warn("pricing_decision_publish_failed", "decision_id", rec.ID, "error", err)
		}
	}

	return rec, nil
}

// ExplainDecision renders a previously served decision from the cache.
func (s *PricingService) ExplainDecision(ctx context.Context, decisionID string) ([]byte, string, error) {
	if s.cache == nil {
		return nil, "", fmt.Errorf("decision cache is not configured")
	}

	rec, ok, err := s.cache.GetDecision(ctx, decisionID)
	if err != nil {
		return nil, "", fmt.Errorf("load decision %s: %w", decisionID, err)
	}
	if !ok {
		return nil, "", fmt.Errorf("decision %s not found", decisionID)
	}

	return Explain(rec)
}

// GridForItem exposes an item's candidate grid from the current snapshot.
func (s *PricingService) GridForItem(itemID string) (PriceGrid, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return PriceGrid{}, fmt.Errorf("no fitted pricing artifact loaded")
	}
	grid, ok := snap.GridFor(itemID)
	if !ok {
		return PriceGrid{}, fmt.Errorf("no price grid for item %s", itemID)
	}
	return grid, nil
}

//  Admin / config

func (s *PricingService) GetItemConfig(ctx context.Context, itemID string) (domain.ItemPricingConfig, bool, error) {
	if s.cfgRepo == nil {
		return domain.ItemPricingConfig{}, false, fmt.Errorf("config repository is not configured")
	}
	return s.cfgRepo.GetConfig(ctx, itemID)
}

func (s *PricingService) UpsertItemConfig(ctx context.Context, cfg domain.ItemPricingConfig) error {
	if s.cfgRepo == nil {
		return fmt.Errorf("config repository is not configured")
	}
	return s.cfgRepo.UpsertConfig(ctx, cfg)
}
