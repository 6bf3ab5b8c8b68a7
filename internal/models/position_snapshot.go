package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PositionSnapshot is one point-in-time capture of a trader's account
// balance and open positions. Positions holds the exchange payload
// verbatim (an array of string-encoded position records); it is reparsed
// on every read and never trusted.
type PositionSnapshot struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement"`
	TraderID   string  `gorm:"type:varchar(64);not null;index:idx_snapshots_trader_time,priority:1"`
	ExternalID *string `gorm:"type:varchar(100)"`

	AccountBalance decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Positions      datatypes.JSON  `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index:idx_snapshots_trader_time,priority:2"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (PositionSnapshot) TableName() string {
	return "position_snapshots"
}
