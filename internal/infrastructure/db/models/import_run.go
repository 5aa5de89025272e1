package models

import "time"

type ImportRun struct {
	ID            string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID      string  `gorm:"type:text;not null;index"`
	Source        string  `gorm:"type:text;not null"`
	Status        string  `gorm:"type:text;not null"`
	TotalRows     int64   `gorm:"not null;default:0"`
	Inserted      int64   `gorm:"not null;default:0"`
	FailedBatches int     `gorm:"not null;default:0"`
	ErrorMessage  *string `gorm:"type:text"`
	CreatedAt     time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}
