package services

import (
	"sort"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

// SegmentCycles splits a log history into cycles, newest first, using the default
// boundary threshold.
func SegmentCycles(logs []models.DailyLog, defaultLength int) []models.Cycle {
	return defaultPrediction.SegmentCycles(logs, defaultLength)
}

// SegmentCycles closes the open cycle whenever the gap between two consecutive
// period days exceeds BoundaryGapDays. The last cycle stays open with defaultLength
// as its placeholder length.
func (config PredictionConfig) SegmentCycles(logs []models.DailyLog, defaultLength int) []models.Cycle {
	periodDays := periodDaysAscending(logs)
	if len(periodDays) == 0 {
		return []models.Cycle{}
	}

	chronological := make([]models.Cycle, 0)
	openStart := periodDays[0]
	previous := periodDays[0]
	for _, day := range periodDays[1:] {
		if dates.DiffDays(previous, day) > config.BoundaryGapDays {
			end := day.AddDays(-1)
			chronological = append(chronological, models.Cycle{
				StartDate: openStart,
				EndDate:   &end,
				Length:    dates.DiffDays(openStart, day),
			})
			openStart = day
		}
		previous = day
	}
	chronological = append(chronological, models.Cycle{
		StartDate: openStart,
		Length:    defaultLength,
	})

	newestFirst := make([]models.Cycle, len(chronological))
	for index, cycle := range chronological {
		newestFirst[len(chronological)-1-index] = cycle
	}
	return newestFirst
}

func periodDaysAscending(logs []models.DailyLog) []dates.Date {
	days := make([]dates.Date, 0, len(logs))
	for _, entry := range logs {
		if entry.Flow.CountsAsPeriod() {
			days = append(days, entry.Day)
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// CompletedCycleLengths returns measured lengths oldest first, skipping the open cycle.
func CompletedCycleLengths(cycles []models.Cycle) []int {
	if len(cycles) < 2 {
		return nil
	}
	lengths := make([]int, 0, len(cycles)-1)
	for index := len(cycles) - 1; index >= 1; index-- {
		lengths = append(lengths, cycles[index].Length)
	}
	return lengths
}

// PeriodRunLengths measures consecutive bleeding days from the start of each cycle.
func PeriodRunLengths(logs []models.DailyLog, cycles []models.Cycle) []int {
	isPeriod := make(map[string]bool, len(logs))
	for _, entry := range logs {
		if entry.Flow.CountsAsPeriod() {
			isPeriod[entry.Day.String()] = true
		}
	}

	lengths := make([]int, 0, len(cycles))
	for index := len(cycles) - 1; index >= 0; index-- {
		run := 0
		for day := cycles[index].StartDate; isPeriod[day.String()]; day = day.AddDays(1) {
			run++
		}
		if run > 0 {
			lengths = append(lengths, run)
		}
	}
	return lengths
}
