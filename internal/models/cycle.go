package models

import "time"

type Cycle struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       uint       `gorm:"not null;index:idx_cycles_user_start"`
	StartDate    time.Time  `gorm:"type:date;not null;index:idx_cycles_user_start"`
	EndDate      *time.Time `gorm:"type:date"`
	CycleLength  *int
	PeriodLength *int
	Notes        string `gorm:"not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
