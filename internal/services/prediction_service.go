package services

import (
	"context"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

type SnapshotLoader interface {
	Load(ctx context.Context, userID uint) (models.Snapshot, error)
}

// PredictionService runs the engine over a freshly loaded snapshot per request.
type PredictionService struct {
	store      SnapshotLoader
	prediction PredictionConfig
}

func NewPredictionService(store SnapshotLoader, prediction PredictionConfig) *PredictionService {
	return &PredictionService{store: store, prediction: prediction}
}

func (service *PredictionService) Status(ctx context.Context, userID uint, today dates.Date) (CycleOverview, error) {
	snapshot, err := service.store.Load(ctx, userID)
	if err != nil {
		return CycleOverview{}, err
	}
	return service.prediction.BuildCycleOverview(snapshot, today), nil
}

func (service *PredictionService) Calendar(ctx context.Context, userID uint, month dates.Date, today dates.Date) (CalendarMonth, error) {
	snapshot, err := service.store.Load(ctx, userID)
	if err != nil {
		return CalendarMonth{}, err
	}
	return service.prediction.BuildCalendarMonth(snapshot, month, today), nil
}

// Cycles returns the stored cycles, newest first.
func (service *PredictionService) Cycles(ctx context.Context, userID uint) ([]models.Cycle, error) {
	snapshot, err := service.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snapshot.Cycles == nil {
		return []models.Cycle{}, nil
	}
	return snapshot.Cycles, nil
}
