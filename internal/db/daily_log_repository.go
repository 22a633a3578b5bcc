package db

import (
	"context"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var dailyLogContentColumns = []string{
	"flow", "moods", "symptoms", "discharge", "sexual_activity",
	"water_ml", "sleep_hours", "weight_kg", "temperature_c", "note", "updated_at",
}

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListByUser(ctx context.Context, userID uint) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.WithContext(ctx).Where("user_id = ?", userID).Order("day ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListByUserRange returns logs with from <= day <= to; nil bounds are open.
func (repo *DailyLogRepository) ListByUserRange(ctx context.Context, userID uint, from *dates.Date, to *dates.Date) ([]models.DailyLog, error) {
	query := repo.database.WithContext(ctx).Model(&models.DailyLog{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("day >= ?", from.String())
	}
	if to != nil {
		query = query.Where("day <= ?", to.String())
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("day ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByDay(ctx context.Context, userID uint, day dates.Date) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day.String()).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

// Upsert writes entry as the single log of its day, replacing any earlier content.
func (repo *DailyLogRepository) Upsert(ctx context.Context, entry *models.DailyLog) error {
	entry.ID = 0
	return upsertDailyLogs(repo.database.WithContext(ctx), entry)
}

// SaveLogs upserts a batch of logs for one user in a single transaction.
func (repo *DailyLogRepository) SaveLogs(ctx context.Context, userID uint, logs []models.DailyLog) error {
	if len(logs) == 0 {
		return nil
	}
	batch := make([]models.DailyLog, len(logs))
	for index, entry := range logs {
		entry.ID = 0
		entry.UserID = userID
		batch[index] = entry
	}
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertDailyLogs(tx, &batch)
	})
}

func (repo *DailyLogRepository) DeleteByDay(ctx context.Context, userID uint, day dates.Date) (bool, error) {
	result := repo.database.WithContext(ctx).Where("user_id = ? AND day = ?", userID, day.String()).Delete(&models.DailyLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// upsertDailyLogs accepts *models.DailyLog or *[]models.DailyLog.
func upsertDailyLogs(tx *gorm.DB, logs any) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns(dailyLogContentColumns),
	}).Create(logs).Error
}
