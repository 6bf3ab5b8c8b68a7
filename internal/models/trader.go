package models

import (
	"time"
)

// Trader is one monitored account on the exchange. API credentials are
// referenced by environment variable name; secrets never enter the DB.
type Trader struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	TraderID string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(128);not null"`

	APIKeyEnv    string `gorm:"type:varchar(128)"`
	APISecretEnv string `gorm:"type:varchar(128)"`

	Enabled bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Trader) TableName() string {
	return "traders"
}
