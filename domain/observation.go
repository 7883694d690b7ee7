package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesObservation is one historical (item, date, price, quantity) row.
// Prices are stored as exact decimals; the engine converts to float64
// at its boundary.
type SalesObservation struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ItemID    string          `gorm:"column:item_id;not null;index" json:"item_id"`
	Date      time.Time       `gorm:"column:date;not null" json:"date"`
	Weekday   string          `gorm:"column:weekday;not null" json:"weekday"`
	Month     int             `gorm:"column:month;not null" json:"month"`
	IsEvent   bool            `gorm:"column:is_event;not null" json:"is_event"`
	EventName string          `gorm:"column:event_name" json:"event_name,omitempty"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SalesObservation) TableName() string {
	return "sales_observations"
}
