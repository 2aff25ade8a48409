package engine

import (
	"github.com/louisbranch/catapult/internal/siege/enemy"
)

const (
	wearPerShot = 5
	// damagedPercent is the durability share below which the engine is Damaged.
	damagedPercent = 30
)

// ShotRecord is one shot-log entry.
type ShotRecord struct {
	Enemy      string `json:"enemy"`
	Hit        bool   `json:"hit"`
	Damage     int    `json:"damage"`
	Eliminated bool   `json:"eliminated"`
	OutOfRange bool   `json:"out_of_range"`
}

// ShotResult reports one resolved shot and the engine afterwards.
type ShotResult struct {
	Hit        bool   `json:"hit"`
	Damage     int    `json:"damage"`
	Eliminated bool   `json:"eliminated"`
	OutOfRange bool   `json:"out_of_range"`
	Roll       int    `json:"roll,omitempty"`
	Precision  int    `json:"precision"`
	Range      int    `json:"range"`
	Durability int    `json:"durability"`
	State      State  `json:"state"`
	Target     string `json:"target"`
}

// Fire resolves one shot against target. Only hits consume a pellet; every
// valid shot applies wear.
func (e *Engine) Fire(target *enemy.Enemy) (ShotResult, error) {
	if target == nil {
		return ShotResult{}, ErrTargetMissing
	}
	switch e.state {
	case StateBuilding:
		return ShotResult{}, ErrNotBuilt
	case StateDestroyed:
		return ShotResult{}, ErrDestroyed
	}
	if len(e.pellets) == 0 {
		return ShotResult{}, ErrNoAmmunition
	}
	if !target.Alive() {
		return ShotResult{}, ErrTargetEliminated
	}

	stats := e.Characteristics()
	result := ShotResult{
		Precision: stats.Precision,
		Range:     stats.Range,
		Target:    target.Name(),
	}

	if target.Distance() > stats.Range {
		result.OutOfRange = true
	} else {
		result.Roll = e.rng.Between(1, 100)
		result.Hit = result.Roll <= stats.Precision
	}

	if result.Hit {
		pellet := e.pellets[0]
		e.consumePellets(1)
		result.Damage = pellet.Damage() + stats.Power/10
		result.Eliminated = target.ReceiveDamage(result.Damage)
		if result.Eliminated {
			e.killCount++
		}
	}

	e.shotLog = append(e.shotLog, ShotRecord{
		Enemy:      result.Target,
		Hit:        result.Hit,
		Damage:     result.Damage,
		Eliminated: result.Eliminated,
		OutOfRange: result.OutOfRange,
	})
	e.applyWear()

	result.Durability = e.durability
	result.State = e.state
	return result, nil
}

func (e *Engine) applyWear() {
	e.shotsTaken++
	e.wearLevel++
	e.durability -= wearPerShot
	switch {
	case e.durability <= 0:
		e.durability = 0
		e.state = StateDestroyed
	case e.belowDamagedThreshold():
		e.state = StateDamaged
	}
}

func (e *Engine) belowDamagedThreshold() bool {
	return e.durability*100 < damagedPercent*e.durabilityMax
}
