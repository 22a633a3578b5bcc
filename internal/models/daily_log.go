package models

import (
	"strings"
	"time"

	"github.com/terraincognita07/flowcast/internal/dates"
)

type Flow string

const (
	FlowNone     Flow = ""
	FlowLight    Flow = "light"
	FlowMedium   Flow = "medium"
	FlowHeavy    Flow = "heavy"
	FlowSpotting Flow = "spotting"
)

// ParseFlow accepts the stored values case-insensitively; "none" maps to FlowNone.
func ParseFlow(raw string) (Flow, bool) {
	switch Flow(strings.ToLower(strings.TrimSpace(raw))) {
	case FlowNone, "none":
		return FlowNone, true
	case FlowLight:
		return FlowLight, true
	case FlowMedium:
		return FlowMedium, true
	case FlowHeavy:
		return FlowHeavy, true
	case FlowSpotting:
		return FlowSpotting, true
	default:
		return FlowNone, false
	}
}

// CountsAsPeriod reports whether the flow marks a bleeding day. Spotting never does.
func (flow Flow) CountsAsPeriod() bool {
	return flow == FlowLight || flow == FlowMedium || flow == FlowHeavy
}

type DailyLog struct {
	ID             uint       `gorm:"primaryKey" json:"-"`
	UserID         uint       `gorm:"not null;uniqueIndex:uidx_user_day" json:"-"`
	Day            dates.Date `gorm:"column:day;type:text;not null;uniqueIndex:uidx_user_day" json:"date"`
	Flow           Flow       `gorm:"not null;default:''" json:"flow,omitempty"`
	Moods          []string   `gorm:"serializer:json" json:"moods"`
	Symptoms       []string   `gorm:"serializer:json" json:"symptoms"`
	Discharge      string     `json:"discharge,omitempty"`
	SexualActivity []string   `gorm:"serializer:json" json:"sexual_activity"`
	WaterMl        *int       `json:"water_ml,omitempty"`
	SleepHours     *float64   `json:"sleep_hours,omitempty"`
	WeightKg       *float64   `json:"weight_kg,omitempty"`
	TemperatureC   *float64   `json:"temperature_c,omitempty"`
	Note           string     `json:"note,omitempty"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
}

// HasData reports whether anything beyond the date was recorded.
func (entry DailyLog) HasData() bool {
	if entry.Flow != FlowNone {
		return true
	}
	if len(entry.Moods) > 0 || len(entry.Symptoms) > 0 || len(entry.SexualActivity) > 0 {
		return true
	}
	if strings.TrimSpace(entry.Discharge) != "" || strings.TrimSpace(entry.Note) != "" {
		return true
	}
	return entry.WaterMl != nil || entry.SleepHours != nil || entry.WeightKg != nil || entry.TemperatureC != nil
}
