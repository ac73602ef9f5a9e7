package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
)

type CycleRepository interface {
	CyclePredecessorFinder
	ListRecentByUser(userID uint, limit int) ([]models.Cycle, error)
	ListAllByUser(userID uint) ([]models.Cycle, error)
	FindByIDForUser(cycleID uint, userID uint) (models.Cycle, bool, error)
	Create(cycle *models.Cycle) error
	Save(cycle *models.Cycle) error
	SaveMetricsBatch(cycles []models.Cycle) error
}

type CycleProfileRepository interface {
	FindByUser(userID uint) (models.UserCycleProfile, bool, error)
}

type CreateCycleInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Notes     string
}

type UpdateCycleInput struct {
	ID      uint
	EndDate *time.Time
	Notes   *string
}

type CycleService struct {
	cycles   CycleRepository
	profiles CycleProfileRepository
}

func NewCycleService(cycles CycleRepository, profiles CycleProfileRepository) *CycleService {
	return &CycleService{
		cycles:   cycles,
		profiles: profiles,
	}
}

func (service *CycleService) CreateCycle(userID uint, input CreateCycleInput) (models.Cycle, error) {
	if input.StartDate == nil || input.StartDate.IsZero() {
		return models.Cycle{}, ErrCycleStartRequired
	}
	start := CalendarDate(*input.StartDate)

	var end *time.Time
	if input.EndDate != nil {
		day := CalendarDate(*input.EndDate)
		end = &day
	}

	var predecessorStart *time.Time
	predecessor, found, err := service.cycles.FindPredecessor(userID, start)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if found {
		previous := CalendarDate(predecessor.StartDate)
		predecessorStart = &previous
	}

	metrics := ComputeCycleMetrics(start, end, predecessorStart)
	cycle := models.Cycle{
		UserID:       userID,
		StartDate:    start,
		EndDate:      end,
		CycleLength:  metrics.CycleLength,
		PeriodLength: metrics.PeriodLength,
		Notes:        TrimNotes(strings.TrimSpace(input.Notes)),
	}
	if err := service.cycles.Create(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleCreateFailed, err)
	}
	return cycle, nil
}

// UpdateCycle closes a cycle or edits its notes. The cycle length is left as
// stored; the period length follows the new end date.
func (service *CycleService) UpdateCycle(userID uint, input UpdateCycleInput) (models.Cycle, error) {
	if input.ID == 0 {
		return models.Cycle{}, ErrCycleIDRequired
	}
	if input.EndDate == nil && input.Notes == nil {
		return models.Cycle{}, ErrNoCycleFields
	}

	cycle, found, err := service.cycles.FindByIDForUser(input.ID, userID)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if !found {
		return models.Cycle{}, ErrCycleNotFound
	}

	if input.EndDate != nil {
		end := CalendarDate(*input.EndDate)
		cycle.EndDate = &end
		cycle.PeriodLength = ComputeCycleMetrics(cycle.StartDate, &end, nil).PeriodLength
	}
	if input.Notes != nil {
		cycle.Notes = TrimNotes(strings.TrimSpace(*input.Notes))
	}

	if err := service.cycles.Save(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleUpdateFailed, err)
	}
	return cycle, nil
}

func (service *CycleService) ListCyclesWithPrediction(userID uint, limit int, today time.Time) ([]models.Cycle, Prediction, error) {
	if limit <= 0 {
		return nil, Prediction{}, ErrInvalidCycleLimit
	}

	cycles, err := service.cycles.ListRecentByUser(userID, limit)
	if err != nil {
		return nil, Prediction{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}

	profile, _, err := service.profiles.FindByUser(userID)
	if err != nil {
		return nil, Prediction{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	avgCycleLength, avgPeriodLength := profile.Averages()

	return cycles, PredictCycle(cycles, avgCycleLength, avgPeriodLength, today), nil
}

// RecomputeUserHistory rewrites derived metrics across the user's whole
// history and returns how many records changed.
func (service *CycleService) RecomputeUserHistory(userID uint) (int, error) {
	cycles, err := service.cycles.ListAllByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}

	changed := RecomputeCycleHistory(cycles)
	if len(changed) == 0 {
		return 0, nil
	}
	if err := service.cycles.SaveMetricsBatch(changed); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCycleUpdateFailed, err)
	}
	return len(changed), nil
}
