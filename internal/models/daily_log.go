package models

import "time"

type DailyLog struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date"`
	LogDate         time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_logs_user_date"`
	Mood            *string
	PainLevel       *int
	FlowIntensity   *int
	EnergyLevel     *int
	SleepHours      *float64
	WaterGlasses    *int
	ExerciseMinutes *int
	CaloriesIntake  *int
	Weight          *float64
	Temperature     *float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
