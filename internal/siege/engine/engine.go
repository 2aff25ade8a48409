package engine

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/siege/material"
	"github.com/louisbranch/catapult/internal/siege/random"
)

// DefaultName is used when an engine is created without a name.
const DefaultName = "My Catapult"

var (
	// ErrNotBuilding indicates structural materials were added after construction.
	ErrNotBuilding = apperrors.New(apperrors.CodeEngineNotBuilding, "materials can only be added while building")
	// ErrNotBuilt indicates an operation that needs a built engine.
	ErrNotBuilt = apperrors.New(apperrors.CodeEngineNotBuilt, "engine is not built")
	// ErrDestroyed indicates an operation blocked by a destroyed engine.
	ErrDestroyed = apperrors.New(apperrors.CodeEngineDestroyed, "engine is destroyed")
	// ErrNoAmmunition indicates there is no pellet to fire.
	ErrNoAmmunition = apperrors.New(apperrors.CodeEngineNoAmmunition, "no pellets left")
	// ErrInsufficientPellets indicates a repair cannot be paid for.
	ErrInsufficientPellets = apperrors.New(apperrors.CodeEngineInsufficientPellets, "not enough pellets to repair")
	// ErrMissingRequirements indicates the build preconditions are not met.
	ErrMissingRequirements = apperrors.New(apperrors.CodeEngineMissingRequirements, "build requirements missing")
	// ErrTargetEliminated indicates a shot at an enemy that is already down.
	ErrTargetEliminated = apperrors.New(apperrors.CodeEngineTargetEliminated, "target already eliminated")
	// ErrTargetMissing indicates a shot without a target.
	ErrTargetMissing = apperrors.New(apperrors.CodeEngineTargetMissing, "target is required")
	// ErrUnknownUpgrade indicates an upgrade kind that does not exist.
	ErrUnknownUpgrade = apperrors.New(apperrors.CodeEngineUnknownUpgrade, "unknown upgrade")
)

// Engine is the player's siege engine.
type Engine struct {
	name string
	rng  random.Source

	sticks   []material.Material
	bands    []material.Material
	plugs    []material.Material
	pellets  []material.Material
	adhesive *material.Material

	state         State
	durability    int
	durabilityMax int
	shotsTaken    int
	wearLevel     int
	killCount     int
	shotLog       []ShotRecord
}

// New creates an engine in the Building state. src drives every draw the
// engine makes.
func New(name string, src random.Source) (*Engine, error) {
	if src == nil {
		return nil, fmt.Errorf("random source is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	return &Engine{
		name:  name,
		rng:   src,
		state: StateBuilding,
	}, nil
}

// Name returns the engine name.
func (e *Engine) Name() string { return e.name }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Durability returns the current structural health.
func (e *Engine) Durability() int { return e.durability }

// DurabilityMax returns the structural health ceiling; zero before build.
func (e *Engine) DurabilityMax() int { return e.durabilityMax }

// ShotsTaken returns how many shots have been resolved.
func (e *Engine) ShotsTaken() int { return e.shotsTaken }

// WearLevel returns the accumulated usage penalty.
func (e *Engine) WearLevel() int { return e.wearLevel }

// KillCount returns how many enemies this engine eliminated.
func (e *Engine) KillCount() int { return e.killCount }

// Pellets returns the remaining ammunition.
func (e *Engine) Pellets() int { return len(e.pellets) }

// AddMaterial adds one material to the inventory.
//
// Pellets are accepted in every state except Destroyed. Structural materials
// are accepted only while Building. A second adhesive replaces the first.
func (e *Engine) AddMaterial(m material.Material) error {
	if e.state == StateDestroyed {
		return ErrDestroyed
	}
	if m.Kind() != material.KindPellet && e.state != StateBuilding {
		return ErrNotBuilding
	}
	switch m.Kind() {
	case material.KindStick:
		e.sticks = append(e.sticks, m)
	case material.KindBand:
		e.bands = append(e.bands, m)
	case material.KindPlug:
		e.plugs = append(e.plugs, m)
	case material.KindPellet:
		e.pellets = append(e.pellets, m)
	case material.KindAdhesive:
		adhesive := m
		e.adhesive = &adhesive
	default:
		return apperrors.WithMetadata(
			apperrors.CodeMaterialInvalidKind,
			"unknown material kind",
			map[string]string{"Kind": m.Kind().String()},
		)
	}
	return nil
}

// AddPellets adds count pellets at once.
func (e *Engine) AddPellets(count int) error {
	if count < 1 {
		return apperrors.WithMetadata(
			apperrors.CodeMaterialInvalidCount,
			fmt.Sprintf("pellet count must be at least 1, got %d", count),
			map[string]string{"Value": strconv.Itoa(count)},
		)
	}
	if e.state == StateDestroyed {
		return ErrDestroyed
	}
	for range count {
		e.pellets = append(e.pellets, material.NewPellet())
	}
	return nil
}

// Inventory counts the materials an engine holds.
type Inventory struct {
	Sticks   int  `json:"sticks"`
	Bands    int  `json:"bands"`
	Plugs    int  `json:"plugs"`
	Pellets  int  `json:"pellets"`
	Adhesive bool `json:"adhesive"`
}

// Inventory returns the current material counts.
func (e *Engine) Inventory() Inventory {
	return Inventory{
		Sticks:   len(e.sticks),
		Bands:    len(e.bands),
		Plugs:    len(e.plugs),
		Pellets:  len(e.pellets),
		Adhesive: e.adhesive != nil,
	}
}

// consumePellets removes n pellets, oldest first. Callers check availability.
func (e *Engine) consumePellets(n int) {
	e.pellets = append(e.pellets[:0:0], e.pellets[n:]...)
}

func (e *Engine) adhesiveQuality() int {
	if e.adhesive == nil {
		return 0
	}
	return e.adhesive.Parameter()
}
