package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Flow",
	"Period",
	"Moods",
	"Symptoms",
	"Discharge",
	"Sexual activity",
	"Water (ml)",
	"Sleep (h)",
	"Weight (kg)",
	"Temperature (C)",
	"Notes",
}

type ExportSummary struct {
	TotalEntries int        `json:"total_entries"`
	HasData      bool       `json:"has_data"`
	DateFrom     dates.Date `json:"date_from"`
	DateTo       dates.Date `json:"date_to"`
}

type ExportDocument struct {
	ExportedAt time.Time            `json:"exported_at"`
	Summary    ExportSummary        `json:"summary"`
	Settings   models.CycleSettings `json:"settings"`
	Cycles     []models.Cycle       `json:"cycles"`
	Entries    []models.DailyLog    `json:"entries"`
}

type ExportService struct {
	store SnapshotLoader
	now   func() time.Time
}

func NewExportService(store SnapshotLoader) *ExportService {
	return &ExportService{store: store, now: time.Now}
}

// BuildDocument exports logs in [from, to] (nil bounds are open) plus every derived
// cycle that overlaps the range.
func (service *ExportService) BuildDocument(ctx context.Context, userID uint, from *dates.Date, to *dates.Date) (ExportDocument, error) {
	if from != nil && to != nil && to.Before(*from) {
		return ExportDocument{}, ErrInvalidDayRange
	}
	snapshot, err := service.store.Load(ctx, userID)
	if err != nil {
		return ExportDocument{}, err
	}

	entries := make([]models.DailyLog, 0, len(snapshot.Logs))
	for _, entry := range snapshot.Logs {
		if inOptionalRange(entry.Day, from, to) {
			entries = append(entries, normalizeExportEntry(entry))
		}
	}

	cycles := make([]models.Cycle, 0, len(snapshot.Cycles))
	for _, cycle := range snapshot.Cycles {
		if cycleOverlaps(cycle, from, to) {
			cycles = append(cycles, cycle)
		}
	}

	return ExportDocument{
		ExportedAt: service.now().UTC(),
		Summary:    summarizeExport(entries),
		Settings:   snapshot.Settings,
		Cycles:     cycles,
		Entries:    entries,
	}, nil
}

func (service *ExportService) BuildCSVRows(ctx context.Context, userID uint, from *dates.Date, to *dates.Date) ([][]string, error) {
	document, err := service.BuildDocument(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(document.Entries))
	for _, entry := range document.Entries {
		rows = append(rows, ExportCSVColumns(entry))
	}
	return rows, nil
}

func ExportCSVColumns(entry models.DailyLog) []string {
	return []string{
		entry.Day.String(),
		csvFlowLabel(entry.Flow),
		csvYesNo(entry.Flow.CountsAsPeriod()),
		strings.Join(entry.Moods, "; "),
		strings.Join(entry.Symptoms, "; "),
		entry.Discharge,
		strings.Join(entry.SexualActivity, "; "),
		csvInt(entry.WaterMl),
		csvFloat(entry.SleepHours),
		csvFloat(entry.WeightKg),
		csvFloat(entry.TemperatureC),
		entry.Note,
	}
}

func summarizeExport(entries []models.DailyLog) ExportSummary {
	if len(entries) == 0 {
		return ExportSummary{}
	}
	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].Day,
		DateTo:       entries[len(entries)-1].Day,
	}
}

func normalizeExportEntry(entry models.DailyLog) models.DailyLog {
	if entry.Moods == nil {
		entry.Moods = []string{}
	}
	if entry.Symptoms == nil {
		entry.Symptoms = []string{}
	}
	if entry.SexualActivity == nil {
		entry.SexualActivity = []string{}
	}
	return entry
}

func inOptionalRange(day dates.Date, from *dates.Date, to *dates.Date) bool {
	if from != nil && day.Before(*from) {
		return false
	}
	return to == nil || !day.After(*to)
}

func cycleOverlaps(cycle models.Cycle, from *dates.Date, to *dates.Date) bool {
	if to != nil && cycle.StartDate.After(*to) {
		return false
	}
	return from == nil || cycle.EndDate == nil || !cycle.EndDate.Before(*from)
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvFlowLabel(flow models.Flow) string {
	switch flow {
	case models.FlowLight:
		return "Light"
	case models.FlowMedium:
		return "Medium"
	case models.FlowHeavy:
		return "Heavy"
	case models.FlowSpotting:
		return "Spotting"
	default:
		return "None"
	}
}

func csvInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
