package siteconfig

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultRecordID is the fixed primary key of the single config row.
const DefaultRecordID = 1

// Record is the relational storage row. The whole document lives in Data;
// Version mirrors data->version for quick inspection.
type Record struct {
	ID        uint           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Data      datatypes.JSON `gorm:"not null" json:"data"`
	Version   int            `gorm:"not null;default:0" json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Record) TableName() string { return "site_config" }
