package engine

import (
	"fmt"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
)

const (
	minSticks          = 2
	baseProbability    = 50
	maxProbability     = 95
	plugProbability    = 10
	qualityProbability = 3
	plugDurability     = 10
	durabilityCap      = 100
)

// Characteristics are the derived combat values of an engine.
type Characteristics struct {
	Power         int     `json:"power"`
	Range         int     `json:"range"`
	Precision     int     `json:"precision"`
	Stability     float64 `json:"stability"`
	Durability    int     `json:"durability"`
	DurabilityMax int     `json:"durability_max"`
}

// BuildResult reports one construction attempt.
type BuildResult struct {
	Success     bool            `json:"success"`
	Probability int             `json:"probability"`
	Roll        int             `json:"roll"`
	Stats       Characteristics `json:"stats"`
}

// MissingRequirements lists the build preconditions that are not met, in a
// stable order. An empty result means Build may roll.
func (e *Engine) MissingRequirements() []string {
	var missing []string
	if need := minSticks - len(e.sticks); need > 0 {
		if need == 1 {
			missing = append(missing, "1 stick")
		} else {
			missing = append(missing, fmt.Sprintf("%d sticks", need))
		}
	}
	if len(e.bands) == 0 {
		missing = append(missing, "band")
	}
	if e.adhesive == nil {
		missing = append(missing, "adhesive")
	}
	if len(e.pellets) == 0 {
		missing = append(missing, "pellet")
	}
	return missing
}

// SuccessProbability returns the chance, in percent, that Build succeeds with
// the current inventory.
func (e *Engine) SuccessProbability() int {
	return min(maxProbability, baseProbability+plugProbability*len(e.plugs)+qualityProbability*e.adhesiveQuality())
}

// Build attempts construction. A failed roll leaves the engine in Building
// with its inventory untouched so the caller can add materials and retry.
func (e *Engine) Build() (BuildResult, error) {
	if e.state != StateBuilding {
		return BuildResult{}, apperrors.New(apperrors.CodeEngineNotBuilding, "engine is already built")
	}
	if missing := e.MissingRequirements(); len(missing) > 0 {
		return BuildResult{}, apperrors.WithDetails(
			apperrors.CodeEngineMissingRequirements,
			fmt.Sprintf("build requirements missing: %v", missing),
			missing,
		)
	}

	p := e.SuccessProbability()
	roll := e.rng.Between(1, 100)
	result := BuildResult{Probability: p, Roll: roll}
	if roll > p {
		return result, nil
	}

	e.durabilityMax = e.structuralResistance()
	e.durability = e.durabilityMax
	e.state = StateReady
	result.Success = true
	result.Stats = e.Characteristics()
	return result, nil
}

func (e *Engine) structuralResistance() int {
	total := plugDurability * len(e.plugs)
	for _, s := range e.sticks {
		total += s.Resistance()
	}
	for _, b := range e.bands {
		total += b.Resistance()
	}
	if e.adhesive != nil {
		total += e.adhesive.Resistance()
	}
	return min(durabilityCap, total)
}

// Characteristics computes the derived combat values. Every value is zero
// while the engine is Building.
func (e *Engine) Characteristics() Characteristics {
	if !e.state.Built() || e.durabilityMax == 0 {
		return Characteristics{}
	}
	return Characteristics{
		Power:         e.power(),
		Range:         e.reach(),
		Precision:     e.precision(),
		Stability:     e.stability(),
		Durability:    e.durability,
		DurabilityMax: e.durabilityMax,
	}
}

func (e *Engine) power() int {
	base := 2 * e.adhesiveQuality()
	for _, s := range e.sticks {
		base += 2 * s.Parameter()
	}
	for _, b := range e.bands {
		base += 5 * b.Parameter()
	}
	return base * e.durability / e.durabilityMax
}

// reach is (0.5·Σlength + 3·Σelasticity) scaled by durability, kept in
// integers by doubling the numerator and denominator.
func (e *Engine) reach() int {
	base := 0
	for _, s := range e.sticks {
		base += s.Parameter()
	}
	for _, b := range e.bands {
		base += 6 * b.Parameter()
	}
	return base * e.durability / (2 * e.durabilityMax)
}

func (e *Engine) precision() int {
	p := 50 + 10*len(e.plugs) + 5*e.adhesiveQuality() - 2*e.wearLevel
	return max(5, min(95, p))
}

func (e *Engine) stability() float64 {
	total := 0.0
	for _, p := range e.plugs {
		total += p.Contribution()
	}
	if e.adhesive != nil {
		total += e.adhesive.Contribution()
	}
	return total
}
