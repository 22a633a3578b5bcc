package models

import "github.com/terraincognita07/flowcast/internal/dates"

// Cycle runs from one period's first flow day up to, but not including, the next
// period's first flow day. Length is measured for completed cycles and a placeholder
// for the open one.
type Cycle struct {
	ID        uint        `gorm:"primaryKey" json:"-"`
	UserID    uint        `gorm:"not null;uniqueIndex:uidx_user_cycle_start" json:"-"`
	StartDate dates.Date  `gorm:"type:text;not null;uniqueIndex:uidx_user_cycle_start" json:"start_date"`
	EndDate   *dates.Date `gorm:"type:text" json:"end_date"`
	Length    int         `gorm:"not null" json:"length"`
}

// DayMarker flags one calendar date of a projection.
type DayMarker struct {
	IsProjectedPeriod bool `json:"is_projected_period"`
	IsFertile         bool `json:"is_fertile"`
	IsOvulationDay    bool `json:"is_ovulation_day"`
}

// PredictionMap is keyed by ISO date.
type PredictionMap map[string]DayMarker

// CycleSegmenter derives the full cycle list from a user's ascending log history.
type CycleSegmenter func(logs []DailyLog) []Cycle
