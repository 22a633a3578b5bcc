package db

import (
	"context"

	"github.com/terraincognita07/flowcast/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// ListByUser returns cycles newest first.
func (repo *CycleRepository) ListByUser(ctx context.Context, userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.WithContext(ctx).Where("user_id = ?", userID).Order("start_date DESC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// ReplaceForUser swaps the stored cycle list wholesale. An empty list clears it.
func (repo *CycleRepository) ReplaceForUser(ctx context.Context, userID uint, cycles []models.Cycle) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Cycle{}).Error; err != nil {
			return err
		}
		if len(cycles) == 0 {
			return nil
		}
		rows := make([]models.Cycle, len(cycles))
		for index, cycle := range cycles {
			cycle.ID = 0
			cycle.UserID = userID
			rows[index] = cycle
		}
		return tx.Create(&rows).Error
	})
}
