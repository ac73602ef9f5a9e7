package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
)

type CycleMetrics struct {
	PeriodLength *int
	CycleLength  *int
}

// CyclePredecessorFinder returns the user's cycle with the greatest start
// date strictly before the given date.
type CyclePredecessorFinder interface {
	FindPredecessor(userID uint, before time.Time) (models.Cycle, bool, error)
}

// ComputeCycleMetrics derives the bleeding span (inclusive of both ends) and
// the gap since the predecessor's start. Either value stays nil when its
// input is missing. Non-positive results are returned as computed.
func ComputeCycleMetrics(start time.Time, end *time.Time, predecessorStart *time.Time) CycleMetrics {
	metrics := CycleMetrics{}
	if end != nil {
		periodLength := DaysBetween(start, *end) + 1
		metrics.PeriodLength = &periodLength
	}
	if predecessorStart != nil {
		cycleLength := DaysBetween(*predecessorStart, start)
		metrics.CycleLength = &cycleLength
	}
	return metrics
}

// RecomputeCycleHistory re-derives metrics for every cycle of one user in
// chronological order and returns only the records whose stored values
// changed, with the new values applied.
func RecomputeCycleHistory(cycles []models.Cycle) []models.Cycle {
	sorted := make([]models.Cycle, 0, len(cycles))
	sorted = append(sorted, cycles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		left := CalendarDate(sorted[i].StartDate)
		right := CalendarDate(sorted[j].StartDate)
		if left.Equal(right) {
			return sorted[i].ID < sorted[j].ID
		}
		return left.Before(right)
	})

	changed := make([]models.Cycle, 0)
	var predecessorStart *time.Time
	var groupStart *time.Time
	for _, cycle := range sorted {
		start := CalendarDate(cycle.StartDate)
		if groupStart == nil || start.After(*groupStart) {
			predecessorStart = groupStart
			groupStart = &start
		}

		metrics := ComputeCycleMetrics(start, cycle.EndDate, predecessorStart)
		if intPointersEqual(cycle.PeriodLength, metrics.PeriodLength) && intPointersEqual(cycle.CycleLength, metrics.CycleLength) {
			continue
		}
		cycle.PeriodLength = metrics.PeriodLength
		cycle.CycleLength = metrics.CycleLength
		changed = append(changed, cycle)
	}
	return changed
}

func intPointersEqual(left *int, right *int) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	return *left == *right
}
