package models

import "time"

const DefaultSymptomSeverity = 3

type Symptom struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_symptoms_user_date_type"`
	LogDate     time.Time `gorm:"type:date;not null;uniqueIndex:uidx_symptoms_user_date_type"`
	SymptomType string    `gorm:"not null;uniqueIndex:uidx_symptoms_user_date_type"`
	Severity    int       `gorm:"not null"`
	Notes       string    `gorm:"not null;default:''"`
	CreatedAt   time.Time
}
