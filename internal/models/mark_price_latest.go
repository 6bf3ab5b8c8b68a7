package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarkPriceLatest is the most recent mark-price event per symbol, fed by
// the exchange websocket stream. Display-only hot data.
type MarkPriceLatest struct {
	Symbol string `gorm:"type:varchar(32);primaryKey"`

	MarkPrice   decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	IndexPrice  decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	FundingRate decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0"`

	NextFundingAt *time.Time `gorm:"type:timestamptz"`
	EventAt       time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt     time.Time  `gorm:"type:timestamptz;autoUpdateTime"`
}

func (MarkPriceLatest) TableName() string {
	return "mark_prices_latest"
}
