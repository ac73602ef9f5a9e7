package api

import (
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
	"github.com/terraincognita07/cyclekeeper/internal/services"
)

type cycleView struct {
	ID           uint      `json:"id"`
	StartDate    string    `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	CycleLength  *int      `json:"cycleLength"`
	PeriodLength *int      `json:"periodLength"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type predictionView struct {
	NextPeriod         string `json:"nextPeriod"`
	Ovulation          string `json:"ovulation"`
	FertileWindowStart string `json:"fertileWindowStart"`
	FertileWindowEnd   string `json:"fertileWindowEnd"`
	CurrentPhase       string `json:"currentPhase"`
	DaysUntilPeriod    int    `json:"daysUntilPeriod"`
	CurrentCycleDay    *int   `json:"currentCycleDay,omitempty"`
}

type dailyLogView struct {
	Date            string   `json:"date"`
	Mood            *string  `json:"mood"`
	PainLevel       *int     `json:"painLevel"`
	FlowIntensity   *int     `json:"flowIntensity"`
	EnergyLevel     *int     `json:"energyLevel"`
	SleepHours      *float64 `json:"sleepHours"`
	WaterGlasses    *int     `json:"waterGlasses"`
	ExerciseMinutes *int     `json:"exerciseMinutes"`
	CaloriesIntake  *int     `json:"caloriesIntake"`
	Weight          *float64 `json:"weight"`
	Temperature     *float64 `json:"temperature"`
	Notes           *string  `json:"notes"`
}

type dayRecordView struct {
	dailyLogView
	Symptoms []symptomView `json:"symptoms"`
}

type emptyDayView struct {
	Date     string        `json:"date"`
	Symptoms []symptomView `json:"symptoms"`
}

type symptomView struct {
	Type     string `json:"type"`
	Severity int    `json:"severity"`
	Notes    string `json:"notes"`
}

func buildCycleView(cycle models.Cycle) cycleView {
	view := cycleView{
		ID:           cycle.ID,
		StartDate:    services.FormatCalendarDate(cycle.StartDate),
		CycleLength:  cycle.CycleLength,
		PeriodLength: cycle.PeriodLength,
		Notes:        cycle.Notes,
		CreatedAt:    cycle.CreatedAt,
		UpdatedAt:    cycle.UpdatedAt,
	}
	if cycle.EndDate != nil {
		end := services.FormatCalendarDate(*cycle.EndDate)
		view.EndDate = &end
	}
	return view
}

func buildCycleViews(cycles []models.Cycle) []cycleView {
	views := make([]cycleView, 0, len(cycles))
	for _, cycle := range cycles {
		views = append(views, buildCycleView(cycle))
	}
	return views
}

func buildPredictionView(prediction services.Prediction) predictionView {
	return predictionView{
		NextPeriod:         services.FormatCalendarDate(prediction.NextPeriod),
		Ovulation:          services.FormatCalendarDate(prediction.Ovulation),
		FertileWindowStart: services.FormatCalendarDate(prediction.FertileWindowStart),
		FertileWindowEnd:   services.FormatCalendarDate(prediction.FertileWindowEnd),
		CurrentPhase:       prediction.CurrentPhase,
		DaysUntilPeriod:    prediction.DaysUntilPeriod,
		CurrentCycleDay:    prediction.CurrentCycleDay,
	}
}

func buildDailyLogView(entry models.DailyLog) dailyLogView {
	return dailyLogView{
		Date:            services.FormatCalendarDate(entry.LogDate),
		Mood:            entry.Mood,
		PainLevel:       entry.PainLevel,
		FlowIntensity:   entry.FlowIntensity,
		EnergyLevel:     entry.EnergyLevel,
		SleepHours:      entry.SleepHours,
		WaterGlasses:    entry.WaterGlasses,
		ExerciseMinutes: entry.ExerciseMinutes,
		CaloriesIntake:  entry.CaloriesIntake,
		Weight:          entry.Weight,
		Temperature:     entry.Temperature,
		Notes:           entry.Notes,
	}
}

// buildDayRecordView always carries a symptoms array, empty or not.
func buildDayRecordView(record services.DayRecord) any {
	symptoms := buildSymptomViews(record.Symptoms)
	if !record.Found {
		return emptyDayView{
			Date:     services.FormatCalendarDate(record.Date),
			Symptoms: symptoms,
		}
	}

	return dayRecordView{
		dailyLogView: buildDailyLogView(record.Log),
		Symptoms:     symptoms,
	}
}

func buildDailyLogViews(entries []models.DailyLog) []dailyLogView {
	views := make([]dailyLogView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, buildDailyLogView(entry))
	}
	return views
}

func buildSymptomViews(symptoms []models.Symptom) []symptomView {
	views := make([]symptomView, 0, len(symptoms))
	for _, symptom := range symptoms {
		views = append(views, symptomView{
			Type:     symptom.SymptomType,
			Severity: symptom.Severity,
			Notes:    symptom.Notes,
		})
	}
	return views
}
