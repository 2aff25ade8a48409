// Package enemy models the attackers a siege engine fires at.
package enemy

import "fmt"

// Archetype identifies an enemy variant. Variants differ only in base stats.
type Archetype int

const (
	ArchetypeUnspecified Archetype = iota
	ArchetypeSoldier
	ArchetypeKnight
	ArchetypeArcher
	ArchetypeGiant
)

// Stats are the fixed base values of an archetype.
type Stats struct {
	Health int
	Armor  int
}

var archetypeStats = map[Archetype]Stats{
	ArchetypeSoldier: {Health: 20, Armor: 2},
	ArchetypeKnight:  {Health: 35, Armor: 5},
	ArchetypeArcher:  {Health: 15, Armor: 1},
	ArchetypeGiant:   {Health: 50, Armor: 8},
}

func (a Archetype) String() string {
	switch a {
	case ArchetypeSoldier:
		return "Soldier"
	case ArchetypeKnight:
		return "Knight"
	case ArchetypeArcher:
		return "Archer"
	case ArchetypeGiant:
		return "Giant"
	default:
		return "Unspecified"
	}
}

// Stats returns the base stats of the archetype.
func (a Archetype) Stats() (Stats, bool) {
	s, ok := archetypeStats[a]
	return s, ok
}

// Enemy is a single attacker. Its distance is fixed at spawn; health only
// decreases, and once it reaches zero the enemy stays eliminated.
type Enemy struct {
	archetype Archetype
	maxHealth int
	health    int
	distance  int
	armor     int
	alive     bool
}

// New spawns an enemy of the archetype at distance meters.
func New(archetype Archetype, distance int) (*Enemy, error) {
	stats, ok := archetype.Stats()
	if !ok {
		return nil, fmt.Errorf("unknown archetype %d", int(archetype))
	}
	return &Enemy{
		archetype: archetype,
		maxHealth: stats.Health,
		health:    stats.Health,
		distance:  distance,
		armor:     stats.Armor,
		alive:     true,
	}, nil
}

// Archetype returns the enemy variant.
func (e *Enemy) Archetype() Archetype { return e.archetype }

// Name returns the display name of the enemy.
func (e *Enemy) Name() string { return e.archetype.String() }

// MaxHealth returns the spawn health.
func (e *Enemy) MaxHealth() int { return e.maxHealth }

// Health returns the current health.
func (e *Enemy) Health() int { return e.health }

// Distance returns the distance in meters.
func (e *Enemy) Distance() int { return e.distance }

// Armor returns the flat damage reduction.
func (e *Enemy) Armor() int { return e.armor }

// Alive reports whether the enemy is still in play.
func (e *Enemy) Alive() bool { return e.alive }

// ReceiveDamage applies amount reduced by armor and reports whether this hit
// eliminated the enemy. Damage to an eliminated enemy has no effect.
func (e *Enemy) ReceiveDamage(amount int) (eliminated bool) {
	if !e.alive {
		return false
	}
	effective := max(0, amount-e.armor)
	e.health -= effective
	if e.health <= 0 {
		e.health = 0
		e.alive = false
		return true
	}
	return false
}

// Snapshot is the read-only view of an enemy handed to callers.
type Snapshot struct {
	Archetype string `json:"archetype"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Distance  int    `json:"distance"`
	Armor     int    `json:"armor"`
	Alive     bool   `json:"alive"`
}

// Snapshot captures the current enemy state.
func (e *Enemy) Snapshot() Snapshot {
	return Snapshot{
		Archetype: e.Name(),
		Health:    e.health,
		MaxHealth: e.maxHealth,
		Distance:  e.distance,
		Armor:     e.armor,
		Alive:     e.alive,
	}
}

func (e *Enemy) String() string {
	status := "alive"
	if !e.alive {
		status = "eliminated"
	}
	return fmt.Sprintf("%s - health %d/%d, distance %dm, armor %d [%s]", e.Name(), e.health, e.maxHealth, e.distance, e.armor, status)
}
