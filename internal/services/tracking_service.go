package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
)

type DailyLogRepository interface {
	FindByUserAndDate(userID uint, day time.Time) (models.DailyLog, bool, error)
	ListByUserDateRange(userID uint, from time.Time, to time.Time) ([]models.DailyLog, error)
	SaveWithSymptoms(entry *models.DailyLog, symptoms []models.Symptom, replaceSymptoms bool) error
}

type SymptomRepository interface {
	ListByUserAndDate(userID uint, day time.Time) ([]models.Symptom, error)
}

type DayRecord struct {
	Date     time.Time
	Log      models.DailyLog
	Found    bool
	Symptoms []models.Symptom
}

type SaveObservationResult struct {
	Record           DayRecord
	Created          bool
	SymptomsReplaced bool
}

type TrackingService struct {
	logs     DailyLogRepository
	symptoms SymptomRepository
}

func NewTrackingService(logs DailyLogRepository, symptoms SymptomRepository) *TrackingService {
	return &TrackingService{
		logs:     logs,
		symptoms: symptoms,
	}
}

// SaveObservation merges a partial observation into the day's log and, when
// symptoms are submitted, replaces the day's whole symptom set with them.
func (service *TrackingService) SaveObservation(userID uint, day time.Time, observation DailyObservation, symptoms []SymptomInput) (SaveObservationResult, error) {
	day = CalendarDate(day)

	existing, found, err := service.logs.FindByUserAndDate(userID, day)
	if err != nil {
		return SaveObservationResult{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	var base *models.DailyLog
	if found {
		base = &existing
	}
	merged := MergeDailyLog(base, observation)
	merged.UserID = userID
	merged.LogDate = day

	replacement := NormalizeSymptoms(userID, day, symptoms)
	replace := ShouldReplaceSymptoms(replacement)
	if err := service.logs.SaveWithSymptoms(&merged, replacement, replace); err != nil {
		return SaveObservationResult{}, fmt.Errorf("%w: %v", ErrDailyLogSaveFailed, err)
	}

	current, err := service.symptoms.ListByUserAndDate(userID, day)
	if err != nil {
		return SaveObservationResult{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	return SaveObservationResult{
		Record: DayRecord{
			Date:     day,
			Log:      merged,
			Found:    true,
			Symptoms: current,
		},
		Created:          !found,
		SymptomsReplaced: replace,
	}, nil
}

func (service *TrackingService) FetchDay(userID uint, day time.Time) (DayRecord, error) {
	day = CalendarDate(day)

	entry, found, err := service.logs.FindByUserAndDate(userID, day)
	if err != nil {
		return DayRecord{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	symptoms, err := service.symptoms.ListByUserAndDate(userID, day)
	if err != nil {
		return DayRecord{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	return DayRecord{
		Date:     day,
		Log:      entry,
		Found:    found,
		Symptoms: symptoms,
	}, nil
}

// FetchRange lists logs dated from day-rangeDays through day, newest first.
func (service *TrackingService) FetchRange(userID uint, day time.Time, rangeDays int) ([]models.DailyLog, error) {
	if rangeDays <= 0 {
		return nil, ErrInvalidLogRange
	}
	day = CalendarDate(day)

	logs, err := service.logs.ListByUserDateRange(userID, AddDays(day, -rangeDays), day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	return logs, nil
}
