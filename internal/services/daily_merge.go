package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
)

// DailyObservation is a partial daily log. Only keys supplied with a
// non-null value take part in a merge.
type DailyObservation struct {
	Mood            Optional[string]  `json:"mood"`
	PainLevel       Optional[int]     `json:"painLevel"`
	FlowIntensity   Optional[int]     `json:"flowIntensity"`
	EnergyLevel     Optional[int]     `json:"energyLevel"`
	SleepHours      Optional[float64] `json:"sleepHours"`
	WaterGlasses    Optional[int]     `json:"waterGlasses"`
	ExerciseMinutes Optional[int]     `json:"exerciseMinutes"`
	CaloriesIntake  Optional[int]     `json:"caloriesIntake"`
	Weight          Optional[float64] `json:"weight"`
	Temperature     Optional[float64] `json:"temperature"`
	Notes           Optional[string]  `json:"notes"`
}

type SymptomInput struct {
	Type     string  `json:"type"`
	Severity *int    `json:"severity"`
	Notes    *string `json:"notes"`
}

// MergeDailyLog applies incoming over existing field by field. A field that
// is absent or null keeps the existing value, so a submission can overwrite
// but never clear. Without an existing record the result holds exactly the
// supplied fields.
func MergeDailyLog(existing *models.DailyLog, incoming DailyObservation) models.DailyLog {
	merged := models.DailyLog{}
	if existing != nil {
		merged = *existing
	}

	if incoming.Notes.HasValue() {
		incoming.Notes.Value = TrimNotes(incoming.Notes.Value)
	}

	merged.Mood = apply(merged.Mood, incoming.Mood)
	merged.PainLevel = apply(merged.PainLevel, incoming.PainLevel)
	merged.FlowIntensity = apply(merged.FlowIntensity, incoming.FlowIntensity)
	merged.EnergyLevel = apply(merged.EnergyLevel, incoming.EnergyLevel)
	merged.SleepHours = apply(merged.SleepHours, incoming.SleepHours)
	merged.WaterGlasses = apply(merged.WaterGlasses, incoming.WaterGlasses)
	merged.ExerciseMinutes = apply(merged.ExerciseMinutes, incoming.ExerciseMinutes)
	merged.CaloriesIntake = apply(merged.CaloriesIntake, incoming.CaloriesIntake)
	merged.Weight = apply(merged.Weight, incoming.Weight)
	merged.Temperature = apply(merged.Temperature, incoming.Temperature)
	merged.Notes = apply(merged.Notes, incoming.Notes)
	return merged
}

// ShouldReplaceSymptoms is true only when the normalized submission holds at
// least one symptom. An empty list is treated the same as an omitted one and
// leaves the day untouched.
func ShouldReplaceSymptoms(replacement []models.Symptom) bool {
	return len(replacement) > 0
}

// NormalizeSymptoms turns submitted entries into the full replacement set for
// one day. Blank types are dropped and a repeated type keeps its last entry.
func NormalizeSymptoms(userID uint, day time.Time, incoming []SymptomInput) []models.Symptom {
	day = CalendarDate(day)
	indexByType := make(map[string]int, len(incoming))
	symptoms := make([]models.Symptom, 0, len(incoming))

	for _, input := range incoming {
		symptomType := strings.TrimSpace(input.Type)
		if symptomType == "" {
			continue
		}

		severity := models.DefaultSymptomSeverity
		if input.Severity != nil {
			severity = *input.Severity
		}
		notes := ""
		if input.Notes != nil {
			notes = TrimNotes(*input.Notes)
		}

		symptom := models.Symptom{
			UserID:      userID,
			LogDate:     day,
			SymptomType: symptomType,
			Severity:    severity,
			Notes:       notes,
		}
		if index, seen := indexByType[symptomType]; seen {
			symptoms[index] = symptom
			continue
		}
		indexByType[symptomType] = len(symptoms)
		symptoms = append(symptoms, symptom)
	}
	return symptoms
}
