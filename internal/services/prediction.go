package services

import (
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
)

const (
	PhaseMenstruation = "menstruation"
	PhaseFollicular   = "follicular"
	PhaseOvulation    = "ovulation"
	PhaseLuteal       = "luteal"
	PhaseUnknown      = "unknown"
)

// Phase boundaries are day offsets of a 28-day reference cycle and are not
// scaled by the user's average cycle length.
const (
	lutealPhaseDays        = 14
	follicularPhaseLastDay = 13
	ovulationPhaseLastDay  = 16
	fertileDaysBefore      = 5
	fertileDaysAfter       = 1
)

type Prediction struct {
	NextPeriod         time.Time
	Ovulation          time.Time
	FertileWindowStart time.Time
	FertileWindowEnd   time.Time
	CurrentPhase       string
	DaysUntilPeriod    int
	CurrentCycleDay    *int
}

// PredictCycle forecasts from cycles ordered most recent start first.
func PredictCycle(cycles []models.Cycle, avgCycleLength int, avgPeriodLength int, today time.Time) Prediction {
	today = CalendarDate(today)

	if len(cycles) == 0 || cycles[0].StartDate.IsZero() {
		return buildPrediction(AddDays(today, avgCycleLength), today, PhaseUnknown, nil)
	}

	lastStart := CalendarDate(cycles[0].StartDate)
	nextPeriod := AddDays(lastStart, EffectiveCycleLength(cycles, avgCycleLength))

	daysSinceStart := DaysBetween(lastStart, today)
	if daysSinceStart < 0 {
		return buildPrediction(nextPeriod, today, PhaseUnknown, nil)
	}

	currentCycleDay := daysSinceStart + 1
	return buildPrediction(nextPeriod, today, PhaseForDay(daysSinceStart, avgPeriodLength), &currentCycleDay)
}

// EffectiveCycleLength is the floor mean of every recorded cycle length, or
// fallback when none is recorded.
func EffectiveCycleLength(cycles []models.Cycle, fallback int) int {
	total := 0
	count := 0
	for _, cycle := range cycles {
		if cycle.CycleLength == nil {
			continue
		}
		total += *cycle.CycleLength
		count++
	}
	if count == 0 {
		return fallback
	}
	return floorDiv(total, count)
}

// PhaseForDay classifies a non-negative offset from the last cycle start.
func PhaseForDay(daysSinceStart int, avgPeriodLength int) string {
	switch {
	case daysSinceStart < 0:
		return PhaseUnknown
	case daysSinceStart <= avgPeriodLength:
		return PhaseMenstruation
	case daysSinceStart <= follicularPhaseLastDay:
		return PhaseFollicular
	case daysSinceStart <= ovulationPhaseLastDay:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

func buildPrediction(nextPeriod time.Time, today time.Time, phase string, currentCycleDay *int) Prediction {
	ovulation := AddDays(nextPeriod, -lutealPhaseDays)
	daysUntilPeriod := DaysBetween(today, nextPeriod)
	if daysUntilPeriod < 0 {
		daysUntilPeriod = 0
	}
	return Prediction{
		NextPeriod:         nextPeriod,
		Ovulation:          ovulation,
		FertileWindowStart: AddDays(ovulation, -fertileDaysBefore),
		FertileWindowEnd:   AddDays(ovulation, fertileDaysAfter),
		CurrentPhase:       phase,
		DaysUntilPeriod:    daysUntilPeriod,
		CurrentCycleDay:    currentCycleDay,
	}
}

func floorDiv(numerator int, denominator int) int {
	quotient := numerator / denominator
	if (numerator%denominator != 0) && ((numerator < 0) != (denominator < 0)) {
		quotient--
	}
	return quotient
}
