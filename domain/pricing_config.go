package domain

import "time"

// ItemPricingConfig overrides the engine defaults for a single item.
// Zero-valued fields keep the default (see business/pricing/config_loader.go).
type ItemPricingConfig struct {
	ItemID string `json:"item_id" gorm:"column:item_id;primaryKey"`

	Explore float64 `json:"explore" gorm:"column:explore"`
	Lambda  float64 `json:"lambda" gorm:"column:lambda"`

	MinObservations int     `json:"min_observations" gorm:"column:min_observations"`
	MinMargin       float64 `json:"min_margin" gorm:"column:min_margin"`
	ConversionFloor float64 `json:"conversion_floor" gorm:"column:conversion_floor"`

	GridLowerMargin   float64 `json:"grid_lower_margin" gorm:"column:grid_lower_margin"`
	GridUpperMargin   float64 `json:"grid_upper_margin" gorm:"column:grid_upper_margin"`
	GridMinCandidates int     `json:"grid_min_candidates" gorm:"column:grid_min_candidates"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (ItemPricingConfig) TableName() string {
	return "item_pricing_configs"
}
