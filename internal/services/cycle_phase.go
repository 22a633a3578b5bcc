package services

import (
	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

type Phase string

const (
	PhaseNotStarted    Phase = "not_started"
	PhaseMenstruation  Phase = "menstruation"
	PhaseFertileWindow Phase = "fertile_window"
	PhaseLuteal        Phase = "luteal"
	PhaseFollicular    Phase = "follicular"
	PhaseLate          Phase = "late"
)

type CycleStatus struct {
	// CycleDay is 1-based; zero when the cycle has not started yet.
	CycleDay      int   `json:"cycle_day"`
	Phase         Phase `json:"phase"`
	DaysUntilNext int   `json:"days_until_next"`
	IsFuture      bool  `json:"is_future"`
}

func ClassifyCycleDay(today dates.Date, active models.Cycle, smartLength int, periodLength int) CycleStatus {
	return defaultPrediction.ClassifyCycleDay(today, active, smartLength, periodLength)
}

// ClassifyCycleDay re-derives the phase from scratch; checks run top to bottom and the
// first match wins.
func (config PredictionConfig) ClassifyCycleDay(today dates.Date, active models.Cycle, smartLength int, periodLength int) CycleStatus {
	daysDiff := dates.DiffDays(active.StartDate, today)
	if daysDiff < 0 {
		return CycleStatus{
			Phase:         PhaseNotStarted,
			DaysUntilNext: -daysDiff,
			IsFuture:      true,
		}
	}

	cycleDay := daysDiff + 1
	daysLeft := smartLength - cycleDay
	ovulationDay := smartLength - config.LutealPhaseDays

	status := CycleStatus{CycleDay: cycleDay, DaysUntilNext: daysLeft}
	switch {
	case daysLeft < 0:
		status.Phase = PhaseLate
	case cycleDay <= periodLength:
		status.Phase = PhaseMenstruation
	case absInt(cycleDay-ovulationDay) <= config.FertilePhaseMargin:
		status.Phase = PhaseFertileWindow
	case cycleDay > ovulationDay+config.FertilePhaseMargin:
		status.Phase = PhaseLuteal
	default:
		status.Phase = PhaseFollicular
	}
	return status
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
