package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// UserCycleProfile carries the rolling averages maintained outside this
// service. It is only ever read here.
type UserCycleProfile struct {
	UserID              uint `gorm:"primaryKey;autoIncrement:false"`
	AverageCycleLength  *int
	AveragePeriodLength *int
	UpdatedAt           time.Time
}

// Averages returns the profile averages with defaults applied when a value
// is missing or not positive.
func (profile UserCycleProfile) Averages() (int, int) {
	cycleLength := DefaultCycleLength
	if profile.AverageCycleLength != nil && *profile.AverageCycleLength > 0 {
		cycleLength = *profile.AverageCycleLength
	}
	periodLength := DefaultPeriodLength
	if profile.AveragePeriodLength != nil && *profile.AveragePeriodLength > 0 {
		periodLength = *profile.AveragePeriodLength
	}
	return cycleLength, periodLength
}
