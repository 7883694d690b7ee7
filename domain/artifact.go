package domain

import "time"

// PricingArtifact holds a fitted model snapshot as an opaque blob.
// The blob is AES-CBC encrypted and base64-encoded by the repository;
// the core only requires round-trip fidelity.
type PricingArtifact struct {
	Name      string    `gorm:"column:name;primaryKey" json:"name"`
	Blob      string    `gorm:"column:blob;type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PricingArtifact) TableName() string {
	return "pricing_artifacts"
}
