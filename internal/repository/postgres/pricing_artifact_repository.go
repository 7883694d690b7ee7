package postgres

import (
	"context"
	"errors"
	"fmt"

	"priceWise/business/pricing"
	"priceWise/domain"

	"github.com/pobyzaarif/goshortcute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PricingArtifactRepository stores fitted model snapshots. Blobs carry the
// full elasticity estimates, so they are AES-CBC encrypted and
// base64-encoded before they hit the table.
type PricingArtifactRepository struct {
	DB  *gorm.DB
	key string
}

var _ pricing.ArtifactRepository = (*PricingArtifactRepository)(nil)

func NewPricingArtifactRepository(db *gorm.DB, encryptionKey string) *PricingArtifactRepository {
	return &PricingArtifactRepository{DB: db, key: encryptionKey}
}

func (r *PricingArtifactRepository) Save(ctx context.Context, name string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	encrypted, err := goshortcute.AESCBCEncrypt(blob, []byte(r.key))
	if err != nil {
		return fmt.Errorf("failed to encrypt artifact blob: %w", err)
	}
	encoded := goshortcute.StringtoBase64Encode(encrypted)

	row := domain.PricingArtifact{
		Name: name,
		Blob: encoded,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert pricing artifact: %w", err)
	}

	return nil
}

func (r *PricingArtifactRepository) Load(ctx context.Context, name string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("context error: %w", err)
	}

	var row domain.PricingArtifact
	err := r.DB.WithContext(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query pricing artifact: %w", err)
	}

	decoded := goshortcute.StringtoBase64Decode(row.Blob)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(r.key))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decrypt artifact blob: %w", err)
	}

	return []byte(decrypted), true, nil
}
