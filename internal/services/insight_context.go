package services

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/flowcast/internal/models"
)

const insightLookbackDays = 7

// BuildInsightContext renders the overview as plain text for an assistant prompt.
// Notes are never included.
func BuildInsightContext(overview CycleOverview, recent []models.DailyLog) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Today: %s\n", overview.Today)

	if !overview.HasCycles || overview.Status == nil {
		builder.WriteString("No period has been logged yet.\n")
	} else {
		status := overview.Status
		if status.Phase == PhaseNotStarted {
			fmt.Fprintf(&builder, "Current cycle starts in %d days (%s).\n", status.DaysUntilNext, overview.CycleStart)
		} else {
			fmt.Fprintf(&builder, "Cycle day: %d (%s), started %s\n", status.CycleDay, strings.ReplaceAll(string(status.Phase), "_", " "), overview.CycleStart)
		}
		if status.Phase == PhaseLate {
			fmt.Fprintf(&builder, "Period is %d days late.\n", -status.DaysUntilNext)
		}
	}

	fmt.Fprintf(&builder, "Estimated cycle length: %d days (%s)\n", overview.CycleLength.Length, overview.CycleLength.Source)
	fmt.Fprintf(&builder, "Period length: %d days\n", overview.PeriodLength)
	fmt.Fprintf(&builder, "Regularity: %d/100\n", overview.Regularity)
	if overview.NextPeriodStart != nil {
		fmt.Fprintf(&builder, "Next period: %s\n", overview.NextPeriodStart)
	}
	if overview.NextOvulation != nil {
		fmt.Fprintf(&builder, "Next ovulation: %s\n", overview.NextOvulation)
	}

	if symptoms := TagFrequencies(recent, models.TagSymptom); len(symptoms) > 0 {
		fmt.Fprintf(&builder, "Symptoms in the last %d days: %s\n", insightLookbackDays, formatFrequencies(symptoms))
	}
	if moods := TagFrequencies(recent, models.TagMood); len(moods) > 0 {
		fmt.Fprintf(&builder, "Moods in the last %d days: %s\n", insightLookbackDays, formatFrequencies(moods))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func formatFrequencies(frequencies []TagFrequency) string {
	parts := make([]string, 0, len(frequencies))
	for _, frequency := range frequencies {
		parts = append(parts, fmt.Sprintf("%s (%d)", frequency.Name, frequency.Count))
	}
	return strings.Join(parts, ", ")
}
