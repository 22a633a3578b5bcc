package services

import (
	"context"
	"errors"
	"strings"

	"github.com/terraincognita07/flowcast/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrSettingsPasswordMissing = errors.New("settings password missing")
	ErrSettingsPasswordInvalid = errors.New("settings password invalid")
)

type SettingsUserReader interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
}

// SettingsWriter owns every settings-page mutation so each one is announced to
// change subscribers.
type SettingsWriter interface {
	SaveSettings(ctx context.Context, userID uint, settings models.CycleSettings) error
	ClearAllData(ctx context.Context, userID uint) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type CycleRebuilder interface {
	RebuildCycles(ctx context.Context, userID uint) ([]models.Cycle, error)
}

type SettingsService struct {
	users      SettingsUserReader
	writer     SettingsWriter
	cycles     CycleRebuilder
	prediction PredictionConfig
}

func NewSettingsService(users SettingsUserReader, writer SettingsWriter, cycles CycleRebuilder, prediction PredictionConfig) *SettingsService {
	return &SettingsService{users: users, writer: writer, cycles: cycles, prediction: prediction}
}

func (service *SettingsService) LoadSettings(ctx context.Context, userID uint) (models.CycleSettings, error) {
	user, err := service.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CycleSettings{}, ErrUserNotFound
	}
	if err != nil {
		return models.CycleSettings{}, err
	}
	return user.CycleSettings(), nil
}

// SaveCycleSettings persists validated settings. The open cycle's placeholder length
// follows the average cycle length, so cycles are rebuilt afterwards.
func (service *SettingsService) SaveCycleSettings(ctx context.Context, userID uint, settings models.CycleSettings) (models.CycleSettings, error) {
	if err := service.prediction.ValidateCycleSettings(settings); err != nil {
		return models.CycleSettings{}, err
	}
	if err := service.writer.SaveSettings(ctx, userID, settings); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CycleSettings{}, ErrUserNotFound
		}
		return models.CycleSettings{}, err
	}
	if _, err := service.cycles.RebuildCycles(ctx, userID); err != nil {
		return models.CycleSettings{}, err
	}
	return settings, nil
}

func (service *SettingsService) ClearAllData(ctx context.Context, userID uint) error {
	return service.writer.ClearAllData(ctx, userID)
}

// DeleteAccount requires the account password.
func (service *SettingsService) DeleteAccount(ctx context.Context, userID uint, rawPassword string) error {
	user, err := service.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := ValidateDeleteAccountPassword(user.PasswordHash, rawPassword); err != nil {
		return err
	}
	return service.writer.DeleteAccount(ctx, userID)
}

func ValidateDeleteAccountPassword(passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrSettingsPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrSettingsPasswordInvalid
	}
	return nil
}
