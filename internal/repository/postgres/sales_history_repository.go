package postgres

import (
	"context"
	"fmt"

	"priceWise/business/pricing"
	"priceWise/domain"

	"gorm.io/gorm"
)

type SalesHistoryRepository struct {
	DB *gorm.DB
}

var _ pricing.SalesHistoryRepository = (*SalesHistoryRepository)(nil)

func NewSalesHistoryRepository(db *gorm.DB) *SalesHistoryRepository {
	return &SalesHistoryRepository{DB: db}
}

func (r *SalesHistoryRepository) GetAll(ctx context.Context) ([]domain.SalesObservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.SalesObservation
	if err := r.DB.WithContext(ctx).
		Order("item_id, date").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales observations: %w", err)
	}

	return rows, nil
}

func (r *SalesHistoryRepository) GetByItem(ctx context.Context, itemID string) ([]domain.SalesObservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.SalesObservation
	if err := r.DB.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("date").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales observations for item %s: %w", itemID, err)
	}

	return rows, nil
}

func (r *SalesHistoryRepository) ListItemIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	if err := r.DB.WithContext(ctx).
		Model(&domain.SalesObservation{}).
		Distinct("item_id").
		Order("item_id").
		Pluck("item_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list item ids: %w", err)
	}

	return ids, nil
}
