package services

import (
	"errors"

	"github.com/terraincognita07/flowcast/internal/models"
)

const (
	MinCycleLength  = 15
	MaxCycleLength  = 90
	MinPeriodLength = 1
	MaxPeriodLength = 14
)

var (
	ErrSettingsCycleLengthOutOfRange    = errors.New("settings cycle length out of range")
	ErrSettingsPeriodLengthOutOfRange   = errors.New("settings period length out of range")
	ErrSettingsPeriodLengthIncompatible = errors.New("settings period length incompatible with cycle length")
)

func IsValidCycleLength(value int) bool {
	return value >= MinCycleLength && value <= MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= MinPeriodLength && value <= MaxPeriodLength
}

// ValidateCycleSettings rejects settings whose projected ovulation would fall inside
// the period itself.
func (config PredictionConfig) ValidateCycleSettings(settings models.CycleSettings) error {
	if !IsValidCycleLength(settings.AvgCycleLength) {
		return ErrSettingsCycleLengthOutOfRange
	}
	if !IsValidPeriodLength(settings.AvgPeriodLength) {
		return ErrSettingsPeriodLengthOutOfRange
	}
	if settings.AvgCycleLength-config.LutealPhaseDays <= settings.AvgPeriodLength {
		return ErrSettingsPeriodLengthIncompatible
	}
	return nil
}
