package services

import (
	"errors"
	"fmt"
)

var ErrInvalidPredictionConfig = errors.New("invalid prediction config")

// PredictionConfig holds the tunables of the cycle engine. The zero value is not
// usable; start from DefaultPredictionConfig.
type PredictionConfig struct {
	// A gap between two period days larger than this starts a new cycle.
	BoundaryGapDays    int `yaml:"boundary_gap_days" json:"boundary_gap_days"`
	HorizonCycles      int `yaml:"horizon_cycles" json:"horizon_cycles"`
	LutealPhaseDays    int `yaml:"luteal_phase_days" json:"luteal_phase_days"`
	FertileDaysBefore  int `yaml:"fertile_days_before" json:"fertile_days_before"`
	FertileDaysAfter   int `yaml:"fertile_days_after" json:"fertile_days_after"`
	FertilePhaseMargin int `yaml:"fertile_phase_margin" json:"fertile_phase_margin"`
	MinPlausibleLength int `yaml:"min_plausible_length" json:"min_plausible_length"`
	MaxPlausibleLength int `yaml:"max_plausible_length" json:"max_plausible_length"`
	RegularityWindow   int `yaml:"regularity_window" json:"regularity_window"`
}

func DefaultPredictionConfig() PredictionConfig {
	return PredictionConfig{
		BoundaryGapDays:    7,
		HorizonCycles:      12,
		LutealPhaseDays:    14,
		FertileDaysBefore:  5,
		FertileDaysAfter:   1,
		FertilePhaseMargin: 2,
		MinPlausibleLength: 21,
		MaxPlausibleLength: 45,
		RegularityWindow:   6,
	}
}

var defaultPrediction = DefaultPredictionConfig()

func (config PredictionConfig) Validate() error {
	switch {
	case config.BoundaryGapDays < 1:
		return fmt.Errorf("%w: boundary_gap_days must be positive", ErrInvalidPredictionConfig)
	case config.HorizonCycles < 1:
		return fmt.Errorf("%w: horizon_cycles must be positive", ErrInvalidPredictionConfig)
	case config.LutealPhaseDays < 1:
		return fmt.Errorf("%w: luteal_phase_days must be positive", ErrInvalidPredictionConfig)
	case config.FertileDaysBefore < 0 || config.FertileDaysAfter < 0 || config.FertilePhaseMargin < 0:
		return fmt.Errorf("%w: fertile window offsets must not be negative", ErrInvalidPredictionConfig)
	case config.MinPlausibleLength < 1 || config.MaxPlausibleLength < config.MinPlausibleLength:
		return fmt.Errorf("%w: plausible length range is empty", ErrInvalidPredictionConfig)
	case config.RegularityWindow < 2:
		return fmt.Errorf("%w: regularity_window must be at least 2", ErrInvalidPredictionConfig)
	}
	return nil
}

func (config PredictionConfig) plausibleLength(length int) bool {
	return length >= config.MinPlausibleLength && length <= config.MaxPlausibleLength
}
