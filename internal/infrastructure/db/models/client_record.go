package models

import "time"

type ClientRecord struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	ClientID      string `gorm:"type:text;not null;index"`
	FirstName     string `gorm:"size:255;not null;default:''"`
	LastName      string `gorm:"size:255;not null;default:''"`
	Title         string `gorm:"size:255;not null;default:''"`
	OfficialEmail string `gorm:"size:255;not null"`
	MobileNumber  string `gorm:"size:255;not null;default:''"`
	Company       string `gorm:"size:255;not null;default:''"`
	Industry      string `gorm:"size:255;not null;default:''"`
	UserType      string `gorm:"size:255;not null;default:''"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ClientRecord) TableName() string {
	return "clients_user_data"
}
