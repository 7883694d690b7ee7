package pricing

import (
	"context"

	"priceWise/domain"
)

type Config struct {
	// exploration coefficient k in bonus = k * std * price
	Explore float64

	// ridge regularization strength
	Lambda float64

	// minimum history rows before an item gets its own model
	MinObservations int

	// candidates priced below this are blocked; 0 disables
	MinMargin float64

	// fraction of reference-price demand the winner must retain; 0 disables
	ConversionFloor float64

	GridLowerMargin   float64
	GridUpperMargin   float64
	GridMinCandidates int
	GridMinSpacing    float64
}

const (
	defaultExplore           = 0.8
	defaultLambda            = 1.0
	defaultMinObservations   = 5
	defaultMinMargin         = 0.0
	defaultConversionFloor   = 0.25
	defaultGridLowerMargin   = 0.90
	defaultGridUpperMargin   = 1.10
	defaultGridMinCandidates = 5
	defaultGridMinSpacing    = 0.01
)

func DefaultConfig() Config {
	return Config{
		Explore:           defaultExplore,
		Lambda:            defaultLambda,
		MinObservations:   defaultMinObservations,
		MinMargin:         defaultMinMargin,
		ConversionFloor:   defaultConversionFloor,
		GridLowerMargin:   defaultGridLowerMargin,
		GridUpperMargin:   defaultGridUpperMargin,
		GridMinCandidates: defaultGridMinCandidates,
		GridMinSpacing:    defaultGridMinSpacing,
	}
}

// read per-item pricing config overrides from DB.
type ConfigRepository interface {
	GetConfig(ctx context.Context, itemID string) (domain.ItemPricingConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.ItemPricingConfig) error
}
