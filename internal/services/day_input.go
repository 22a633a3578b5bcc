package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

const (
	MaxDayNotesLength = 2000
	maxWaterMl        = 10000
	maxSleepHours     = 24
	maxWeightKg       = 500
	minTemperatureC   = 34
	maxTemperatureC   = 43
)

var (
	ErrInvalidDayFlow   = errors.New("invalid day flow")
	ErrUnknownDayTag    = errors.New("unknown day tag")
	ErrDayMetricInvalid = errors.New("day metric out of range")
)

// DayEntryInput is the editable content of one day.
type DayEntryInput struct {
	Flow           string   `json:"flow"`
	Moods          []string `json:"moods"`
	Symptoms       []string `json:"symptoms"`
	Discharge      string   `json:"discharge"`
	SexualActivity []string `json:"sexual_activity"`
	WaterMl        *int     `json:"water_ml"`
	SleepHours     *float64 `json:"sleep_hours"`
	WeightKg       *float64 `json:"weight_kg"`
	TemperatureC   *float64 `json:"temperature_c"`
	Note           string   `json:"note"`
}

// NormalizeDayEntryInput validates input against the tag catalog and metric ranges
// and returns the log it describes.
func NormalizeDayEntryInput(userID uint, day dates.Date, input DayEntryInput) (models.DailyLog, error) {
	flow, ok := models.ParseFlow(input.Flow)
	if !ok {
		return models.DailyLog{}, fmt.Errorf("%w: %q", ErrInvalidDayFlow, input.Flow)
	}

	moods, err := normalizeTagList(models.TagMood, input.Moods)
	if err != nil {
		return models.DailyLog{}, err
	}
	symptoms, err := normalizeTagList(models.TagSymptom, input.Symptoms)
	if err != nil {
		return models.DailyLog{}, err
	}
	activity, err := normalizeTagList(models.TagSexualActivity, input.SexualActivity)
	if err != nil {
		return models.DailyLog{}, err
	}

	discharge := models.NormalizeTag(input.Discharge)
	if discharge != "" && !models.TagNames(models.TagDischarge)[discharge] {
		return models.DailyLog{}, fmt.Errorf("%w: discharge %q", ErrUnknownDayTag, input.Discharge)
	}

	if input.WaterMl != nil && (*input.WaterMl < 0 || *input.WaterMl > maxWaterMl) {
		return models.DailyLog{}, fmt.Errorf("%w: water_ml", ErrDayMetricInvalid)
	}
	if !floatInRange(input.SleepHours, 0, maxSleepHours) {
		return models.DailyLog{}, fmt.Errorf("%w: sleep_hours", ErrDayMetricInvalid)
	}
	if !floatInRange(input.WeightKg, 0, maxWeightKg) {
		return models.DailyLog{}, fmt.Errorf("%w: weight_kg", ErrDayMetricInvalid)
	}
	if !floatInRange(input.TemperatureC, minTemperatureC, maxTemperatureC) {
		return models.DailyLog{}, fmt.Errorf("%w: temperature_c", ErrDayMetricInvalid)
	}

	return models.DailyLog{
		UserID:         userID,
		Day:            day,
		Flow:           flow,
		Moods:          moods,
		Symptoms:       symptoms,
		Discharge:      discharge,
		SexualActivity: activity,
		WaterMl:        input.WaterMl,
		SleepHours:     input.SleepHours,
		WeightKg:       input.WeightKg,
		TemperatureC:   input.TemperatureC,
		Note:           TrimDayNotes(strings.TrimSpace(input.Note)),
	}, nil
}

// normalizeTagList drops duplicates and keeps input order.
func normalizeTagList(kind models.TagKind, raw []string) ([]string, error) {
	known := models.TagNames(kind)
	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, value := range raw {
		tag := models.NormalizeTag(value)
		if tag == "" || seen[tag] {
			continue
		}
		if !known[tag] {
			return nil, fmt.Errorf("%w: %s %q", ErrUnknownDayTag, kind, value)
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags, nil
}

func floatInRange(value *float64, min float64, max float64) bool {
	return value == nil || (*value >= min && *value <= max)
}

// TrimDayNotes cuts notes to MaxDayNotesLength runes.
func TrimDayNotes(value string) string {
	if utf8.RuneCountInString(value) <= MaxDayNotesLength {
		return value
	}
	return string([]rune(value)[:MaxDayNotesLength])
}
