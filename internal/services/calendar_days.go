package services

import (
	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

const calendarGridDays = 42

type CalendarDayState struct {
	Date              dates.Date  `json:"date"`
	Day               int         `json:"day"`
	InMonth           bool        `json:"in_month"`
	IsToday           bool        `json:"is_today"`
	IsPeriod          bool        `json:"is_period"`
	IsSpotting        bool        `json:"is_spotting"`
	IsProjectedPeriod bool        `json:"is_projected_period"`
	IsFertile         bool        `json:"is_fertile"`
	IsOvulationDay    bool        `json:"is_ovulation_day"`
	HasData           bool        `json:"has_data"`
	Flow              models.Flow `json:"flow,omitempty"`
}

// BuildCalendarDays lays out a Sunday-first grid of six full weeks starting on the
// Sunday on or before the 1st. Logged bleeding hides projected markers on the same day.
func BuildCalendarDays(month dates.Date, logs []models.DailyLog, projection Projection, today dates.Date) []CalendarDayState {
	monthStart := month.StartOfMonth()
	gridStart := monthStart.AddDays(-int(monthStart.Weekday()))
	gridEnd := gridStart.AddDays(calendarGridDays - 1)

	logByDate := make(map[string]models.DailyLog, len(logs))
	for _, entry := range logs {
		logByDate[entry.Day.String()] = entry
	}

	days := make([]CalendarDayState, 0, calendarGridDays)
	for day := gridStart; !day.After(gridEnd); day = day.AddDays(1) {
		key := day.String()
		entry, logged := logByDate[key]
		marker := projection.Markers[key]

		state := CalendarDayState{
			Date:              day,
			Day:               day.Day,
			InMonth:           day.Month == monthStart.Month,
			IsToday:           day.Equal(today),
			IsProjectedPeriod: marker.IsProjectedPeriod,
			IsFertile:         marker.IsFertile,
			IsOvulationDay:    marker.IsOvulationDay,
		}
		if logged {
			state.Flow = entry.Flow
			state.IsPeriod = entry.Flow.CountsAsPeriod()
			state.IsSpotting = entry.Flow == models.FlowSpotting
			state.HasData = entry.HasData()
		}
		if state.IsPeriod {
			state.IsProjectedPeriod = false
			state.IsFertile = false
			state.IsOvulationDay = false
		}
		days = append(days, state)
	}
	return days
}
