package domain

import (
	"github.com/louisbranch/catapult/internal/siege/enemy"
	"github.com/louisbranch/catapult/internal/siege/engine"
	"github.com/louisbranch/catapult/internal/siege/game"
)

// InventoryPayload counts the materials an engine holds.
type InventoryPayload struct {
	Sticks   int  `json:"sticks" jsonschema:"structural sticks"`
	Bands    int  `json:"bands" jsonschema:"elastic bands"`
	Plugs    int  `json:"plugs" jsonschema:"joint reinforcements"`
	Pellets  int  `json:"pellets" jsonschema:"ammunition in stock"`
	Adhesive bool `json:"adhesive" jsonschema:"whether an adhesive is applied"`
}

// ShotPayload is one shot-log entry.
type ShotPayload struct {
	Enemy      string `json:"enemy" jsonschema:"target archetype"`
	Hit        bool   `json:"hit" jsonschema:"whether the shot landed"`
	Damage     int    `json:"damage" jsonschema:"damage delivered before armor"`
	Eliminated bool   `json:"eliminated" jsonschema:"whether the shot eliminated the target"`
	OutOfRange bool   `json:"out_of_range" jsonschema:"whether the target was beyond range"`
}

// EnginePayload is the engine snapshot handed to MCP clients.
type EnginePayload struct {
	Name              string           `json:"name" jsonschema:"engine name"`
	State             string           `json:"state" jsonschema:"lifecycle state (Building, Ready, Damaged, Destroyed)"`
	Built             bool             `json:"built" jsonschema:"whether construction succeeded"`
	Durability        int              `json:"durability" jsonschema:"current durability"`
	DurabilityMax     int              `json:"durability_max" jsonschema:"durability ceiling"`
	DurabilityPercent float64          `json:"durability_percent" jsonschema:"durability as a percentage of the ceiling"`
	Power             int              `json:"power" jsonschema:"effective power"`
	Range             int              `json:"range" jsonschema:"effective range in meters"`
	Precision         int              `json:"precision" jsonschema:"hit chance in percent"`
	Stability         float64          `json:"stability" jsonschema:"stability score"`
	ShotsTaken        int              `json:"shots_taken" jsonschema:"shots fired so far"`
	WearLevel         int              `json:"wear_level" jsonschema:"accumulated wear"`
	KillCount         int              `json:"kill_count" jsonschema:"enemies eliminated"`
	Inventory         InventoryPayload `json:"inventory" jsonschema:"material counts"`
	ShotLog           []ShotPayload    `json:"shot_log" jsonschema:"most recent shots, oldest first"`
}

// EnemyPayload is one enemy of the current wave.
type EnemyPayload struct {
	Index     int    `json:"index" jsonschema:"position in the wave, used as the fire target"`
	Archetype string `json:"archetype" jsonschema:"enemy archetype"`
	Health    int    `json:"health" jsonschema:"current health"`
	MaxHealth int    `json:"max_health" jsonschema:"spawn health"`
	Distance  int    `json:"distance" jsonschema:"distance in meters"`
	Armor     int    `json:"armor" jsonschema:"flat damage reduction"`
	Alive     bool   `json:"alive" jsonschema:"whether the enemy is still in play"`
}

func inventoryPayload(inv engine.Inventory) InventoryPayload {
	return InventoryPayload{
		Sticks:   inv.Sticks,
		Bands:    inv.Bands,
		Plugs:    inv.Plugs,
		Pellets:  inv.Pellets,
		Adhesive: inv.Adhesive,
	}
}

func enginePayload(status engine.Status) EnginePayload {
	log := make([]ShotPayload, 0, len(status.ShotLog))
	for _, shot := range status.ShotLog {
		log = append(log, ShotPayload(shot))
	}
	return EnginePayload{
		Name:              status.Name,
		State:             status.State.String(),
		Built:             status.Built,
		Durability:        status.Durability,
		DurabilityMax:     status.DurabilityMax,
		DurabilityPercent: status.DurabilityPercent,
		Power:             status.Power,
		Range:             status.Range,
		Precision:         status.Precision,
		Stability:         status.Stability,
		ShotsTaken:        status.ShotsTaken,
		WearLevel:         status.WearLevel,
		KillCount:         status.KillCount,
		Inventory:         inventoryPayload(status.Inventory),
		ShotLog:           log,
	}
}

func enemyPayloads(enemies []enemy.Snapshot) []EnemyPayload {
	out := make([]EnemyPayload, 0, len(enemies))
	for i, en := range enemies {
		out = append(out, EnemyPayload{
			Index:     i,
			Archetype: en.Archetype,
			Health:    en.Health,
			MaxHealth: en.MaxHealth,
			Distance:  en.Distance,
			Armor:     en.Armor,
			Alive:     en.Alive,
		})
	}
	return out
}

// StatusPayload is the full encounter snapshot.
type StatusPayload struct {
	Engine  EnginePayload  `json:"engine" jsonschema:"engine snapshot"`
	Enemies []EnemyPayload `json:"enemies" jsonschema:"current wave"`
	Level   int            `json:"level" jsonschema:"current difficulty level"`
	Score   int            `json:"score" jsonschema:"accumulated points"`
}

func statusPayload(status game.Status) StatusPayload {
	return StatusPayload{
		Engine:  enginePayload(status.Engine),
		Enemies: enemyPayloads(status.Enemies),
		Level:   status.Level,
		Score:   status.Score,
	}
}
