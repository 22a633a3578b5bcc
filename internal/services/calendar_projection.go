package services

import (
	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

// Projection is rebuilt on every call and never persisted.
type Projection struct {
	Markers     models.PredictionMap `json:"markers"`
	CycleLength int                  `json:"cycle_length"`
	Anchor      dates.Date           `json:"anchor"`
}

func ProjectCalendar(cycles []models.Cycle, smartLength int, periodLength int) Projection {
	return defaultPrediction.ProjectCalendar(cycles, smartLength, periodLength)
}

// ProjectCalendar marks HorizonCycles future periods after cycles[0] together with
// their fertile windows. A projected period day is never downgraded to fertile.
func (config PredictionConfig) ProjectCalendar(cycles []models.Cycle, smartLength int, periodLength int) Projection {
	projection := Projection{
		Markers:     models.PredictionMap{},
		CycleLength: smartLength,
	}
	if len(cycles) == 0 || smartLength <= 0 {
		return projection
	}

	anchor := cycles[0].StartDate
	projection.Anchor = anchor
	for cycle := 1; cycle <= config.HorizonCycles; cycle++ {
		nextStart := anchor.AddDays(smartLength * cycle)
		for offset := 0; offset < periodLength; offset++ {
			projection.Markers[nextStart.AddDays(offset).String()] = models.DayMarker{IsProjectedPeriod: true}
		}

		ovulation := nextStart.AddDays(-config.LutealPhaseDays)
		for offset := -config.FertileDaysBefore; offset <= config.FertileDaysAfter; offset++ {
			key := ovulation.AddDays(offset).String()
			if projection.Markers[key].IsProjectedPeriod {
				continue
			}
			projection.Markers[key] = models.DayMarker{
				IsFertile:      true,
				IsOvulationDay: offset == 0,
			}
		}
	}
	return projection
}

func (projection Projection) Marker(day dates.Date) (models.DayMarker, bool) {
	marker, ok := projection.Markers[day.String()]
	return marker, ok
}

// InRange returns markers for from..to inclusive.
func (projection Projection) InRange(from dates.Date, to dates.Date) models.PredictionMap {
	subset := models.PredictionMap{}
	for day := from; !day.After(to); day = day.AddDays(1) {
		if marker, ok := projection.Markers[day.String()]; ok {
			subset[day.String()] = marker
		}
	}
	return subset
}

// NextPeriodStart is the first projected cycle start strictly after today.
func (projection Projection) NextPeriodStart(today dates.Date) (dates.Date, bool) {
	if projection.Anchor.IsZero() || projection.CycleLength <= 0 {
		return dates.Date{}, false
	}
	for start := projection.Anchor.AddDays(projection.CycleLength); ; start = start.AddDays(projection.CycleLength) {
		if _, ok := projection.Markers[start.String()]; !ok {
			return dates.Date{}, false
		}
		if start.After(today) {
			return start, true
		}
	}
}

// NextOvulation is the first projected ovulation day on or after today.
func (projection Projection) NextOvulation(today dates.Date) (dates.Date, bool) {
	found := dates.Date{}
	for key, marker := range projection.Markers {
		if !marker.IsOvulationDay {
			continue
		}
		day, err := dates.Parse(key)
		if err != nil || day.Before(today) {
			continue
		}
		if found.IsZero() || day.Before(found) {
			found = day
		}
	}
	return found, !found.IsZero()
}
