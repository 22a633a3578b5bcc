package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type User struct {
	ID                 uint      `gorm:"primaryKey"`
	Email              string    `gorm:"uniqueIndex;not null"`
	PasswordHash       string    `gorm:"not null"`
	MustChangePassword bool      `gorm:"not null;default:false"`
	CycleLength        int       `gorm:"not null;default:28"`
	PeriodLength       int       `gorm:"not null;default:5"`
	CreatedAt          time.Time `gorm:"not null"`
}

// CycleSettings is the slice of user settings the prediction engine reads.
type CycleSettings struct {
	AvgCycleLength  int `json:"avg_cycle_length"`
	AvgPeriodLength int `json:"avg_period_length"`
}

// CycleSettings falls back to the defaults for unset values.
func (user User) CycleSettings() CycleSettings {
	settings := CycleSettings{AvgCycleLength: user.CycleLength, AvgPeriodLength: user.PeriodLength}
	if settings.AvgCycleLength <= 0 {
		settings.AvgCycleLength = DefaultCycleLength
	}
	if settings.AvgPeriodLength <= 0 {
		settings.AvgPeriodLength = DefaultPeriodLength
	}
	return settings
}
