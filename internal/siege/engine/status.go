package engine

import "math"

// ShotLogLimit bounds the shot-log entries a status carries.
const ShotLogLimit = 10

// Status is a full read-only snapshot of an engine.
type Status struct {
	Name              string       `json:"name"`
	State             State        `json:"state"`
	Built             bool         `json:"built"`
	Durability        int          `json:"durability"`
	DurabilityMax     int          `json:"durability_max"`
	DurabilityPercent float64      `json:"durability_percent"`
	Power             int          `json:"power"`
	Range             int          `json:"range"`
	Precision         int          `json:"precision"`
	Stability         float64      `json:"stability"`
	ShotsTaken        int          `json:"shots_taken"`
	WearLevel         int          `json:"wear_level"`
	KillCount         int          `json:"kill_count"`
	Inventory         Inventory    `json:"inventory"`
	ShotLog           []ShotRecord `json:"shot_log"`
}

// Status returns the current snapshot. The shot log holds at most the last
// ShotLogLimit entries, oldest first.
func (e *Engine) Status() Status {
	stats := e.Characteristics()
	start := max(0, len(e.shotLog)-ShotLogLimit)
	log := append([]ShotRecord{}, e.shotLog[start:]...)

	percent := 0.0
	if e.durabilityMax > 0 {
		percent = math.Round(float64(e.durability)*1000/float64(e.durabilityMax)) / 10
	}
	return Status{
		Name:              e.name,
		State:             e.state,
		Built:             e.state.Built(),
		Durability:        e.durability,
		DurabilityMax:     e.durabilityMax,
		DurabilityPercent: percent,
		Power:             stats.Power,
		Range:             stats.Range,
		Precision:         stats.Precision,
		Stability:         stats.Stability,
		ShotsTaken:        e.shotsTaken,
		WearLevel:         e.wearLevel,
		KillCount:         e.killCount,
		Inventory:         e.Inventory(),
		ShotLog:           log,
	}
}

// ShotLog returns a copy of every recorded shot.
func (e *Engine) ShotLog() []ShotRecord {
	return append([]ShotRecord{}, e.shotLog...)
}
