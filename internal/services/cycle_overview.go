package services

import (
	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

// CycleOverview is the current-cycle summary behind the status endpoint.
type CycleOverview struct {
	Today           dates.Date       `json:"today"`
	HasCycles       bool             `json:"has_cycles"`
	CycleStart      *dates.Date      `json:"cycle_start"`
	Status          *CycleStatus     `json:"status"`
	CycleLength     LengthEstimate   `json:"cycle_length"`
	PeriodLength    int              `json:"period_length"`
	Regularity      int              `json:"regularity"`
	NextPeriodStart *dates.Date      `json:"next_period_start"`
	NextOvulation   *dates.Date      `json:"next_ovulation"`
	TodayLog        *models.DailyLog `json:"today_log"`
	Insight         string           `json:"insight"`
}

// BuildCycleOverview classifies today against the active cycle and looks up the
// next projected period and ovulation.
func (config PredictionConfig) BuildCycleOverview(snapshot models.Snapshot, today dates.Date) CycleOverview {
	settings := snapshot.Settings
	overview := CycleOverview{
		Today:        today,
		CycleLength:  config.SmartLength(snapshot.Cycles, settings.AvgCycleLength),
		PeriodLength: settings.AvgPeriodLength,
		Regularity:   config.RegularityScore(snapshot.Cycles),
	}

	for index := range snapshot.Logs {
		if snapshot.Logs[index].Day.Equal(today) {
			entry := snapshot.Logs[index]
			overview.TodayLog = &entry
			break
		}
	}

	if len(snapshot.Cycles) > 0 {
		active := snapshot.Cycles[0]
		start := active.StartDate
		status := config.ClassifyCycleDay(today, active, overview.CycleLength.Length, settings.AvgPeriodLength)

		overview.HasCycles = true
		overview.CycleStart = &start
		overview.Status = &status

		projection := config.ProjectCalendar(snapshot.Cycles, overview.CycleLength.Length, settings.AvgPeriodLength)
		if next, ok := projection.NextPeriodStart(today); ok {
			overview.NextPeriodStart = &next
		}
		if ovulation, ok := projection.NextOvulation(today); ok {
			overview.NextOvulation = &ovulation
		}
	}

	overview.Insight = BuildInsightContext(overview, recentLogs(snapshot.Logs, today, insightLookbackDays))
	return overview
}

// CalendarMonth is one month grid with logged and projected markers.
type CalendarMonth struct {
	Month       string             `json:"month"`
	CycleLength int                `json:"cycle_length"`
	Days        []CalendarDayState `json:"days"`
}

func (config PredictionConfig) BuildCalendarMonth(snapshot models.Snapshot, month dates.Date, today dates.Date) CalendarMonth {
	smartLength := config.SmartAverage(snapshot.Cycles, snapshot.Settings.AvgCycleLength)
	projection := config.ProjectCalendar(snapshot.Cycles, smartLength, snapshot.Settings.AvgPeriodLength)
	return CalendarMonth{
		Month:       month.MonthString(),
		CycleLength: smartLength,
		Days:        BuildCalendarDays(month, snapshot.Logs, projection, today),
	}
}

// recentLogs returns logs from the lookback window ending today, oldest first.
func recentLogs(logs []models.DailyLog, today dates.Date, days int) []models.DailyLog {
	from := today.AddDays(-(days - 1))
	recent := make([]models.DailyLog, 0, days)
	for _, entry := range logs {
		if !entry.Day.Before(from) && !entry.Day.After(today) {
			recent = append(recent, entry)
		}
	}
	return recent
}
