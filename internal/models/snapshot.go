package models

// Snapshot is everything the prediction engine needs for one user.
type Snapshot struct {
	Logs     []DailyLog
	Cycles   []Cycle
	Settings CycleSettings
}
