// Package game hosts one player's encounter: an engine, the current wave and
// the level and score progression around them.
package game

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/siege/enemy"
	"github.com/louisbranch/catapult/internal/siege/engine"
	"github.com/louisbranch/catapult/internal/siege/material"
	"github.com/louisbranch/catapult/internal/siege/random"
	"github.com/louisbranch/catapult/internal/siege/wave"
)

const (
	// KillPoints is awarded per eliminated enemy.
	KillPoints = 50
	// WavePoints is multiplied by the level when a wave is cleared.
	WavePoints = 100
	// StartLevel is the level of a fresh encounter.
	StartLevel = 1
)

// ErrEngineMissing indicates an operation before an engine was created.
var ErrEngineMissing = apperrors.New(apperrors.CodeSessionEngineMissing, "no engine created")

// Game is a single encounter. It is not safe for concurrent use; Store
// serializes access per session.
type Game struct {
	rng     random.Source
	engine  *engine.Engine
	enemies []*enemy.Enemy
	level   int
	score   int
}

// New returns an encounter without an engine.
func New(src random.Source) *Game {
	return &Game{rng: src, level: StartLevel}
}

// Level returns the current difficulty level.
func (g *Game) Level() int { return g.level }

// Score returns the accumulated points.
func (g *Game) Score() int { return g.score }

// Engine returns the engine, or nil before CreateEngine.
func (g *Game) Engine() *engine.Engine { return g.engine }

// CreateEngine starts a new engine and resets the encounter around it.
func (g *Game) CreateEngine(name string) (engine.Status, error) {
	e, err := engine.New(name, g.rng)
	if err != nil {
		return engine.Status{}, fmt.Errorf("create engine: %w", err)
	}
	g.engine = e
	g.enemies = nil
	g.level = StartLevel
	g.score = 0
	return e.Status(), nil
}

// AddMaterial adds count copies of a material. count is only meaningful for
// pellets; other kinds are added once.
func (g *Game) AddMaterial(kind material.Kind, parameter, count int) (engine.Inventory, error) {
	e, err := g.requireEngine()
	if err != nil {
		return engine.Inventory{}, err
	}
	if kind == material.KindPellet {
		if count == 0 {
			count = 1
		}
		if err := e.AddPellets(count); err != nil {
			return engine.Inventory{}, err
		}
		return e.Inventory(), nil
	}
	m, err := material.New(kind, parameter)
	if err != nil {
		return engine.Inventory{}, err
	}
	if err := e.AddMaterial(m); err != nil {
		return engine.Inventory{}, err
	}
	return e.Inventory(), nil
}

// Build attempts construction.
func (g *Game) Build() (engine.BuildResult, error) {
	e, err := g.requireEngine()
	if err != nil {
		return engine.BuildResult{}, err
	}
	return e.Build()
}

// GenerateWave replaces the enemy list. A level of zero keeps the current
// level; any other value moves the encounter to it.
func (g *Game) GenerateWave(level int) ([]enemy.Snapshot, error) {
	e, err := g.requireEngine()
	if err != nil {
		return nil, err
	}
	if !e.State().Built() {
		return nil, engine.ErrNotBuilt
	}
	if level == 0 {
		level = g.level
	}
	enemies, err := wave.Generate(level, g.rng)
	if err != nil {
		return nil, err
	}
	g.enemies = enemies
	g.level = level
	return g.Enemies(), nil
}

// Enemies returns snapshots of the current wave in order.
func (g *Game) Enemies() []enemy.Snapshot {
	out := make([]enemy.Snapshot, 0, len(g.enemies))
	for _, en := range g.enemies {
		out = append(out, en.Snapshot())
	}
	return out
}

// FireResult is a shot plus the encounter state it produced.
type FireResult struct {
	Shot     engine.ShotResult `json:"shot"`
	Enemies  []enemy.Snapshot  `json:"enemies"`
	Score    int               `json:"score"`
	Level    int               `json:"level"`
	Victory  bool              `json:"victory"`
	GameOver bool              `json:"game_over"`
}

// Fire shoots at the enemy at index in the current wave. Clearing the wave
// awards level bonus points and advances the level.
func (g *Game) Fire(index int) (FireResult, error) {
	e, err := g.requireEngine()
	if err != nil {
		return FireResult{}, err
	}
	if index < 0 || index >= len(g.enemies) {
		return FireResult{}, apperrors.WithMetadata(
			apperrors.CodeSessionEnemyNotFound,
			fmt.Sprintf("no enemy at index %d", index),
			map[string]string{"Index": strconv.Itoa(index)},
		)
	}

	shot, err := e.Fire(g.enemies[index])
	if err != nil {
		return FireResult{}, err
	}
	result := FireResult{Shot: shot}
	if shot.Eliminated {
		g.score += KillPoints
		if g.cleared() {
			result.Victory = true
			g.score += g.level * WavePoints
			g.level++
		}
	}
	result.GameOver = e.State() == engine.StateDestroyed
	result.Enemies = g.Enemies()
	result.Score = g.score
	result.Level = g.level
	return result, nil
}

func (g *Game) cleared() bool {
	for _, en := range g.enemies {
		if en.Alive() {
			return false
		}
	}
	return len(g.enemies) > 0
}

// Repair repairs the engine.
func (g *Game) Repair() (engine.RepairResult, error) {
	e, err := g.requireEngine()
	if err != nil {
		return engine.RepairResult{}, err
	}
	return e.Repair()
}

// Upgrade applies a named upgrade.
func (g *Game) Upgrade(kind string) (engine.UpgradeResult, error) {
	e, err := g.requireEngine()
	if err != nil {
		return engine.UpgradeResult{}, err
	}
	u, err := engine.ParseUpgrade(kind)
	if err != nil {
		return engine.UpgradeResult{}, err
	}
	return e.Upgrade(u)
}

// Status is the encounter snapshot.
type Status struct {
	Engine  engine.Status    `json:"engine"`
	Enemies []enemy.Snapshot `json:"enemies"`
	Level   int              `json:"level"`
	Score   int              `json:"score"`
}

// Status returns the encounter snapshot.
func (g *Game) Status() (Status, error) {
	e, err := g.requireEngine()
	if err != nil {
		return Status{}, err
	}
	return Status{
		Engine:  e.Status(),
		Enemies: g.Enemies(),
		Level:   g.level,
		Score:   g.score,
	}, nil
}

func (g *Game) requireEngine() (*engine.Engine, error) {
	if g.engine == nil {
		return nil, ErrEngineMissing
	}
	return g.engine, nil
}
