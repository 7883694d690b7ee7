package postgres

import (
	"context"
	"errors"

	"priceWise/business/pricing"
	"priceWise/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingConfigRepository struct {
	DB *gorm.DB
}

var _ pricing.ConfigRepository = (*PricingConfigRepository)(nil)

func NewPricingConfigRepository(db *gorm.DB) *PricingConfigRepository {
	return &PricingConfigRepository{DB: db}
}

func (r *PricingConfigRepository) GetConfig(ctx context.Context, itemID string) (domain.ItemPricingConfig, bool, error) {
	var cfg domain.ItemPricingConfig

	err := r.DB.WithContext(ctx).
		Where("item_id = ?", itemID).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ItemPricingConfig{}, false, nil
	}
	if err != nil {
		return domain.ItemPricingConfig{}, false, err
	}

	return cfg, true, nil
}

func (r *PricingConfigRepository) UpsertConfig(ctx context.Context, cfg domain.ItemPricingConfig) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"explore",
				"lambda",
				"min_observations",
				"min_margin",
				"conversion_floor",
				"grid_lower_margin",
				"grid_upper_margin",
				"grid_min_candidates",
				"updated_at",
			}),
		}).
		Create(&cfg).Error
}
