package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/catapult/internal/siege/enemy"
	"github.com/louisbranch/catapult/internal/siege/game"
)

// GenerateWaveInput represents the MCP tool input for spawning a wave.
type GenerateWaveInput struct {
	Level int `json:"level,omitempty" jsonschema:"difficulty level, at least 1 (defaults to the current level)"`
}

// GenerateWaveResult represents the MCP tool output for spawning a wave.
type GenerateWaveResult struct {
	Level   int            `json:"level" jsonschema:"level of the new wave"`
	Enemies []EnemyPayload `json:"enemies" jsonschema:"spawned enemies in target order"`
}

// GenerateWaveTool defines the MCP tool schema for spawning a wave.
func GenerateWaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_wave",
		Description: "Replaces the current wave with 3 + level enemies. Giants join from level 3. Requires a built engine.",
	}
}

// GenerateWaveHandler executes a wave generation.
func GenerateWaveHandler(session *Session, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[GenerateWaveInput, GenerateWaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateWaveInput) (*mcp.CallToolResult, GenerateWaveResult, error) {
		var (
			enemies []enemy.Snapshot
			level   int
		)
		err := session.Do(func(g *game.Game) error {
			var err error
			enemies, err = g.GenerateWave(input.Level)
			level = g.Level()
			return err
		})
		if err != nil {
			return nil, GenerateWaveResult{}, err
		}
		NotifyResourceUpdates(ctx, notify, StatusResourceURI)
		return nil, GenerateWaveResult{Level: level, Enemies: enemyPayloads(enemies)}, nil
	}
}

// FireInput represents the MCP tool input for a shot.
type FireInput struct {
	Target int `json:"target" jsonschema:"index of the enemy in the current wave"`
}

// FireResult represents the MCP tool output for a shot.
type FireResult struct {
	Target     string         `json:"target" jsonschema:"archetype of the targeted enemy"`
	Hit        bool           `json:"hit" jsonschema:"whether the shot landed"`
	Damage     int            `json:"damage" jsonschema:"damage delivered before armor"`
	Eliminated bool           `json:"eliminated" jsonschema:"whether the shot eliminated the target"`
	OutOfRange bool           `json:"out_of_range" jsonschema:"whether the target was beyond range"`
	Roll       int            `json:"roll,omitempty" jsonschema:"hit roll between 1 and 100, absent when out of range"`
	Precision  int            `json:"precision" jsonschema:"hit chance used for the roll"`
	Durability int            `json:"durability" jsonschema:"engine durability after wear"`
	State      string         `json:"state" jsonschema:"engine lifecycle state after the shot"`
	Score      int            `json:"score" jsonschema:"accumulated points"`
	Level      int            `json:"level" jsonschema:"current level, advanced when the wave is cleared"`
	Victory    bool           `json:"victory" jsonschema:"whether the shot cleared the wave"`
	GameOver   bool           `json:"game_over" jsonschema:"whether the engine was destroyed"`
	Enemies    []EnemyPayload `json:"enemies" jsonschema:"wave after the shot"`
}

// FireTool defines the MCP tool schema for a shot.
func FireTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fire",
		Description: "Fires at an enemy of the current wave. Hits consume a pellet; every shot wears the engine by 5 durability.",
	}
}

// FireHandler executes a shot.
func FireHandler(session *Session, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[FireInput, FireResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FireInput) (*mcp.CallToolResult, FireResult, error) {
		var result game.FireResult
		err := session.Do(func(g *game.Game) error {
			var err error
			result, err = g.Fire(input.Target)
			return err
		})
		if err != nil {
			return nil, FireResult{}, err
		}
		NotifyResourceUpdates(ctx, notify, StatusResourceURI)
		shot := result.Shot
		return nil, FireResult{
			Target:     shot.Target,
			Hit:        shot.Hit,
			Damage:     shot.Damage,
			Eliminated: shot.Eliminated,
			OutOfRange: shot.OutOfRange,
			Roll:       shot.Roll,
			Precision:  shot.Precision,
			Durability: shot.Durability,
			State:      shot.State.String(),
			Score:      result.Score,
			Level:      result.Level,
			Victory:    result.Victory,
			GameOver:   result.GameOver,
			Enemies:    enemyPayloads(result.Enemies),
		}, nil
	}
}
