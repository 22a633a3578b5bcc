package services

import "github.com/terraincognita07/flowcast/internal/models"

// minCyclesForRegularity counts the open cycle too.
const minCyclesForRegularity = 4

func RegularityScore(cycles []models.Cycle) int {
	return defaultPrediction.RegularityScore(cycles)
}

// RegularityScore maps the spread of recent completed cycle lengths onto fixed steps.
// Short histories score 100.
func (config PredictionConfig) RegularityScore(cycles []models.Cycle) int {
	if len(cycles) < minCyclesForRegularity {
		return 100
	}

	lengths := config.plausibleCompletedLengths(cycles, config.RegularityWindow)
	if len(lengths) < 2 {
		return 100
	}

	shortest, longest := lengths[0], lengths[0]
	for _, length := range lengths[1:] {
		shortest = min(shortest, length)
		longest = max(longest, length)
	}
	return regularityStep(longest - shortest)
}

func regularityStep(variation int) int {
	switch {
	case variation <= 2:
		return 100
	case variation <= 4:
		return 80
	case variation <= 7:
		return 60
	case variation <= 10:
		return 40
	default:
		return 20
	}
}
