package models

import "time"

type ClientAccount struct {
	ID          string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID    string  `gorm:"type:text;not null;uniqueIndex"`
	Username    string  `gorm:"size:255;not null;uniqueIndex"`
	Password    string  `gorm:"type:text;not null"`
	CompanyName *string `gorm:"size:255"`
	CreatedAt   time.Time
}

func (ClientAccount) TableName() string {
	return "arkenix_clients"
}
