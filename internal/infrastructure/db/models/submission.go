package models

import "time"

type ContactSubmission struct {
	ID        string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string  `gorm:"size:255;not null"`
	Email     string  `gorm:"size:320;not null"`
	Company   *string `gorm:"size:255"`
	Message   string  `gorm:"type:text;not null"`
	Source    string  `gorm:"size:64;not null;default:'general'"`
	CreatedAt time.Time
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

type WaitlistSubmission struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:320;not null"`
	CreatedAt time.Time
}

func (WaitlistSubmission) TableName() string {
	return "waitlist_submissions"
}
