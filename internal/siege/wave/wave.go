// Package wave generates the enemy batches for each difficulty level.
package wave

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/siege/enemy"
	"github.com/louisbranch/catapult/internal/siege/random"
)

const (
	// BaseSize is the number of enemies added on top of the level.
	BaseSize = 3
	// GiantLevel is the first level whose pool includes giants.
	GiantLevel = 3
	// DistanceMin and DistanceMax bound spawn distances in meters.
	DistanceMin = 10
	DistanceMax = 50
)

// ErrInvalidLevel indicates a level below 1.
var ErrInvalidLevel = apperrors.New(apperrors.CodeWaveInvalidLevel, "wave level must be at least 1")

// Pool returns the archetypes available at level.
func Pool(level int) []enemy.Archetype {
	pool := []enemy.Archetype{enemy.ArchetypeSoldier, enemy.ArchetypeKnight, enemy.ArchetypeArcher}
	if level >= GiantLevel {
		pool = append(pool, enemy.ArchetypeGiant)
	}
	return pool
}

// Size returns the number of enemies in a wave at level.
func Size(level int) int {
	return BaseSize + level
}

// Generate produces Size(level) enemies. Each enemy draws its archetype
// uniformly from Pool(level), then its distance uniformly from
// [DistanceMin, DistanceMax].
func Generate(level int, src random.Source) ([]*enemy.Enemy, error) {
	if level < 1 {
		return nil, apperrors.WithMetadata(
			apperrors.CodeWaveInvalidLevel,
			fmt.Sprintf("wave level must be at least 1, got %d", level),
			map[string]string{"Value": strconv.Itoa(level)},
		)
	}
	if src == nil {
		return nil, fmt.Errorf("random source is required")
	}

	pool := Pool(level)
	enemies := make([]*enemy.Enemy, 0, Size(level))
	for range Size(level) {
		archetype := pool[src.Between(0, len(pool)-1)]
		distance := src.Between(DistanceMin, DistanceMax)
		e, err := enemy.New(archetype, distance)
		if err != nil {
			return nil, fmt.Errorf("spawn %s: %w", archetype, err)
		}
		enemies = append(enemies, e)
	}
	return enemies, nil
}
