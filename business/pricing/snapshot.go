package pricing

import (
	"encoding/json"
	"fmt"
	"time"
)

// ArtifactSnapshot is the immutable set of fitted models and grids served
// by a PricingService. A refit builds a new snapshot and swaps it in
// wholesale; readers never see a partially updated one.
type ArtifactSnapshot struct {
	FittedAt time.Time                   `json:"fitted_at"`
	Pooled   *ElasticityModel            `json:"pooled"`
	Models   map[string]*ElasticityModel `json:"models"`
	Grids    map[string]PriceGrid        `json:"grids"`

	// items that could not be fit or gridded, with the reason
	Skipped map[string]string `json:"skipped,omitempty"`
}

// ModelFor returns the item's own model, or the pooled fallback. The second
// return reports whether the pooled model was used.
func (s *ArtifactSnapshot) ModelFor(itemID string) (*ElasticityModel, bool) {
	if m, ok := s.Models[itemID]; ok {
		return m, false
	}
	return s.Pooled, true
}

func (s *ArtifactSnapshot) GridFor(itemID string) (PriceGrid, bool) {
	g, ok := s.Grids[itemID]
	return g, ok
}

func EncodeSnapshot(s *ArtifactSnapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode artifact snapshot: %w", err)
	}
	return raw, nil
}

func DecodeSnapshot(raw []byte) (*ArtifactSnapshot, error) {
	var s ArtifactSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode artifact snapshot: %w", err)
	}
	if s.Pooled == nil {
		return nil, fmt.Errorf("artifact snapshot has no pooled model")
	}
	return &s, nil
}
