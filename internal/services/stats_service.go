package services

import (
	"context"
	"math"
	"sort"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

const maxTrendPoints = 12

type TrendPoint struct {
	Start  dates.Date `json:"start"`
	Length int        `json:"length"`
}

type TagFrequency struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Count     int    `json:"count"`
	TotalDays int    `json:"total_days"`
}

type CycleStats struct {
	LoggedDays          int            `json:"logged_days"`
	CompletedCycles     int            `json:"completed_cycles"`
	AverageCycleLength  float64        `json:"average_cycle_length"`
	ShortestCycle       int            `json:"shortest_cycle"`
	LongestCycle        int            `json:"longest_cycle"`
	SmartCycleLength    LengthEstimate `json:"smart_cycle_length"`
	AveragePeriodLength float64        `json:"average_period_length"`
	Regularity          int            `json:"regularity"`
	Trend               []TrendPoint   `json:"trend"`
	HasReliableTrend    bool           `json:"has_reliable_trend"`
	Moods               []TagFrequency `json:"moods"`
	Symptoms            []TagFrequency `json:"symptoms"`
}

type StatsService struct {
	store      SnapshotLoader
	prediction PredictionConfig
}

func NewStatsService(store SnapshotLoader, prediction PredictionConfig) *StatsService {
	return &StatsService{store: store, prediction: prediction}
}

func (service *StatsService) Stats(ctx context.Context, userID uint) (CycleStats, error) {
	snapshot, err := service.store.Load(ctx, userID)
	if err != nil {
		return CycleStats{}, err
	}
	return service.prediction.BuildCycleStats(snapshot), nil
}

// BuildCycleStats summarizes completed cycles. Period length falls back to the
// configured average when no bleeding run was logged.
func (config PredictionConfig) BuildCycleStats(snapshot models.Snapshot) CycleStats {
	stats := CycleStats{
		LoggedDays:          len(snapshot.Logs),
		SmartCycleLength:    config.SmartLength(snapshot.Cycles, snapshot.Settings.AvgCycleLength),
		AveragePeriodLength: float64(snapshot.Settings.AvgPeriodLength),
		Regularity:          config.RegularityScore(snapshot.Cycles),
		Trend:               TrimTrendPoints(completedTrend(snapshot.Cycles), maxTrendPoints),
		Moods:               TagFrequencies(snapshot.Logs, models.TagMood),
		Symptoms:            TagFrequencies(snapshot.Logs, models.TagSymptom),
	}

	lengths := CompletedCycleLengths(snapshot.Cycles)
	stats.CompletedCycles = len(lengths)
	if len(lengths) > 0 {
		stats.AverageCycleLength = roundTenth(mean(lengths))
		stats.ShortestCycle, stats.LongestCycle = lengths[0], lengths[0]
		for _, length := range lengths[1:] {
			stats.ShortestCycle = min(stats.ShortestCycle, length)
			stats.LongestCycle = max(stats.LongestCycle, length)
		}
	}

	if runs := PeriodRunLengths(snapshot.Logs, snapshot.Cycles); len(runs) > 0 {
		stats.AveragePeriodLength = roundTenth(mean(runs))
	}
	stats.HasReliableTrend = len(stats.Trend) >= 3
	return stats
}

// TrimTrendPoints keeps the most recent maxPoints entries.
func TrimTrendPoints(points []TrendPoint, maxPoints int) []TrendPoint {
	if maxPoints <= 0 || len(points) <= maxPoints {
		return points
	}
	return points[len(points)-maxPoints:]
}

// completedTrend lists completed cycles oldest first.
func completedTrend(cycles []models.Cycle) []TrendPoint {
	points := make([]TrendPoint, 0, len(cycles))
	for index := len(cycles) - 1; index >= 1; index-- {
		points = append(points, TrendPoint{Start: cycles[index].StartDate, Length: cycles[index].Length})
	}
	return points
}

// TagFrequencies counts how many logged days carry each tag of kind, most frequent
// first.
func TagFrequencies(logs []models.DailyLog, kind models.TagKind) []TagFrequency {
	counts := make(map[string]int)
	for _, entry := range logs {
		for _, tag := range tagsOfKind(entry, kind) {
			counts[models.NormalizeTag(tag)]++
		}
	}
	if len(counts) == 0 {
		return []TagFrequency{}
	}

	icons := make(map[string]string)
	for _, tag := range models.DefaultTagCatalog() {
		if tag.Kind == kind {
			icons[models.NormalizeTag(tag.Name)] = tag.Icon
		}
	}

	result := make([]TagFrequency, 0, len(counts))
	for name, count := range counts {
		result = append(result, TagFrequency{Name: name, Icon: icons[name], Count: count, TotalDays: len(logs)})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Name < result[j].Name
		}
		return result[i].Count > result[j].Count
	})
	return result
}

func tagsOfKind(entry models.DailyLog, kind models.TagKind) []string {
	switch kind {
	case models.TagMood:
		return entry.Moods
	case models.TagSymptom:
		return entry.Symptoms
	case models.TagSexualActivity:
		return entry.SexualActivity
	case models.TagDischarge:
		if entry.Discharge == "" {
			return nil
		}
		return []string{entry.Discharge}
	default:
		return nil
	}
}

func mean(values []int) float64 {
	total := 0
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
