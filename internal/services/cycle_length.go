package services

import (
	"math"

	"github.com/terraincognita07/flowcast/internal/models"
)

type LengthSource string

const (
	LengthSourceSmart  LengthSource = "smart"
	LengthSourceStatic LengthSource = "static"
)

// smartWeights apply to the three most recent completed cycles, newest first.
var smartWeights = [3]float64{0.5, 0.3, 0.2}

type LengthEstimate struct {
	Length int          `json:"length"`
	Source LengthSource `json:"source"`
}

func SmartAverage(cycles []models.Cycle, userDefault int) int {
	return defaultPrediction.SmartAverage(cycles, userDefault)
}

// SmartAverage estimates the next cycle length from completed cycles. cycles must be
// newest first; index 0 is the open cycle and never contributes.
func (config PredictionConfig) SmartAverage(cycles []models.Cycle, userDefault int) int {
	return config.SmartLength(cycles, userDefault).Length
}

func SmartLength(cycles []models.Cycle, userDefault int) LengthEstimate {
	return defaultPrediction.SmartLength(cycles, userDefault)
}

func (config PredictionConfig) SmartLength(cycles []models.Cycle, userDefault int) LengthEstimate {
	valid := config.plausibleCompletedLengths(cycles, len(cycles))
	switch {
	case len(valid) == 0:
		return LengthEstimate{Length: userDefault, Source: LengthSourceStatic}
	case len(valid) < len(smartWeights):
		total := 0
		for _, length := range valid {
			total += length
		}
		mean := float64(total) / float64(len(valid))
		return LengthEstimate{Length: int(math.Round(mean)), Source: LengthSourceSmart}
	default:
		weighted := 0.0
		for index, weight := range smartWeights {
			weighted += float64(valid[index]) * weight
		}
		return LengthEstimate{Length: int(math.Round(weighted)), Source: LengthSourceSmart}
	}
}

// plausibleCompletedLengths keeps newest-first order and looks at most at limit
// completed cycles.
func (config PredictionConfig) plausibleCompletedLengths(cycles []models.Cycle, limit int) []int {
	valid := make([]int, 0, len(cycles))
	for index := 1; index < len(cycles) && index <= limit; index++ {
		if config.plausibleLength(cycles[index].Length) {
			valid = append(valid, cycles[index].Length)
		}
	}
	return valid
}
