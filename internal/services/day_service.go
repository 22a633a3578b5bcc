package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

var (
	ErrDayEntryLoadFailed = errors.New("load day entry failed")
	ErrDayEntrySaveFailed = errors.New("save day entry failed")
	ErrDeleteDayFailed    = errors.New("delete day failed")
	ErrRebuildCycles      = errors.New("rebuild cycles failed")
	ErrInvalidDayRange    = errors.New("invalid day range")
)

type DayLogRepository interface {
	ListByUserRange(ctx context.Context, userID uint, from *dates.Date, to *dates.Date) ([]models.DailyLog, error)
	FindByDay(ctx context.Context, userID uint, day dates.Date) (models.DailyLog, bool, error)
}

type DaySettingsReader interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
}

// DayWriter applies a log mutation and replaces the stored cycles with the
// segmenter's output atomically. Nothing is kept when either step fails.
type DayWriter interface {
	SaveDay(ctx context.Context, entry models.DailyLog, segment models.CycleSegmenter) ([]models.Cycle, error)
	DeleteDay(ctx context.Context, userID uint, day dates.Date, segment models.CycleSegmenter) (bool, []models.Cycle, error)
	RebuildCycles(ctx context.Context, userID uint, segment models.CycleSegmenter) ([]models.Cycle, error)
}

type DayService struct {
	logs       DayLogRepository
	users      DaySettingsReader
	writer     DayWriter
	prediction PredictionConfig
}

func NewDayService(logs DayLogRepository, users DaySettingsReader, writer DayWriter, prediction PredictionConfig) *DayService {
	return &DayService{
		logs:       logs,
		users:      users,
		writer:     writer,
		prediction: prediction,
	}
}

// FetchLogs returns logs in [from, to]; nil bounds are open.
func (service *DayService) FetchLogs(ctx context.Context, userID uint, from *dates.Date, to *dates.Date) ([]models.DailyLog, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidDayRange
	}
	return service.logs.ListByUserRange(ctx, userID, from, to)
}

// FetchDay returns the stored log or an empty one for the date.
func (service *DayService) FetchDay(ctx context.Context, userID uint, day dates.Date) (models.DailyLog, bool, error) {
	entry, found, err := service.logs.FindByDay(ctx, userID, day)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDayEntryLoadFailed, err)
	}
	if !found {
		return emptyDayLog(userID, day), false, nil
	}
	return entry, true, nil
}

// UpsertDay saves one day and resegments the user's cycles. An input with no
// content deletes the day instead.
func (service *DayService) UpsertDay(ctx context.Context, userID uint, day dates.Date, input DayEntryInput) (models.DailyLog, []models.Cycle, error) {
	entry, err := NormalizeDayEntryInput(userID, day, input)
	if err != nil {
		return models.DailyLog{}, nil, err
	}
	segment, err := service.segmenter(ctx, userID)
	if err != nil {
		return models.DailyLog{}, nil, err
	}

	var cycles []models.Cycle
	if entry.HasData() {
		if cycles, err = service.writer.SaveDay(ctx, entry, segment); err != nil {
			return models.DailyLog{}, nil, fmt.Errorf("%w: %v", ErrDayEntrySaveFailed, err)
		}
	} else if _, cycles, err = service.writer.DeleteDay(ctx, userID, day, segment); err != nil {
		return models.DailyLog{}, nil, fmt.Errorf("%w: %v", ErrDeleteDayFailed, err)
	}

	saved, _, err := service.FetchDay(ctx, userID, day)
	if err != nil {
		return models.DailyLog{}, nil, err
	}
	return saved, cycles, nil
}

// DeleteDay removes the day's log. Cycles are resegmented even when nothing was stored.
func (service *DayService) DeleteDay(ctx context.Context, userID uint, day dates.Date) (bool, []models.Cycle, error) {
	segment, err := service.segmenter(ctx, userID)
	if err != nil {
		return false, nil, err
	}
	deleted, cycles, err := service.writer.DeleteDay(ctx, userID, day, segment)
	if err != nil {
		return false, nil, fmt.Errorf("%w: %v", ErrDeleteDayFailed, err)
	}
	return deleted, cycles, nil
}

// RebuildCycles segments the full log history and replaces the stored cycles. An
// empty segmentation clears them.
func (service *DayService) RebuildCycles(ctx context.Context, userID uint) ([]models.Cycle, error) {
	segment, err := service.segmenter(ctx, userID)
	if err != nil {
		return nil, err
	}
	cycles, err := service.writer.RebuildCycles(ctx, userID, segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRebuildCycles, err)
	}
	return cycles, nil
}

// segmenter binds the user's current average cycle length for the open cycle.
func (service *DayService) segmenter(ctx context.Context, userID uint) (models.CycleSegmenter, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load settings: %v", ErrRebuildCycles, err)
	}
	averageLength := user.CycleSettings().AvgCycleLength
	return func(logs []models.DailyLog) []models.Cycle {
		return service.prediction.SegmentCycles(logs, averageLength)
	}, nil
}

func emptyDayLog(userID uint, day dates.Date) models.DailyLog {
	return models.DailyLog{
		UserID:         userID,
		Day:            day,
		Moods:          []string{},
		Symptoms:       []string{},
		SexualActivity: []string{},
	}
}
