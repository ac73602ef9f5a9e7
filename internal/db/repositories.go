package db

import "gorm.io/gorm"

type Repositories struct {
	Cycles    *CycleRepository
	Profiles  *ProfileRepository
	DailyLogs *DailyLogRepository
	Symptoms  *SymptomRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Cycles:    NewCycleRepository(database),
		Profiles:  NewProfileRepository(database),
		DailyLogs: NewDailyLogRepository(database),
		Symptoms:  NewSymptomRepository(database),
	}
}
