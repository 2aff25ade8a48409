package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/catapult/internal/siege/engine"
	"github.com/louisbranch/catapult/internal/siege/game"
	"github.com/louisbranch/catapult/internal/siege/material"
)

// CreateEngineInput represents the MCP tool input for starting an engine.
type CreateEngineInput struct {
	Name string `json:"name,omitempty" jsonschema:"engine name (defaults to My Catapult)"`
}

// CreateEngineResult represents the MCP tool output for starting an engine.
type CreateEngineResult struct {
	Seed   int64         `json:"seed" jsonschema:"random seed of the encounter, for replay"`
	Engine EnginePayload `json:"engine" jsonschema:"new engine in the Building state"`
}

// CreateEngineTool defines the MCP tool schema for starting an engine.
func CreateEngineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_engine",
		Description: "Starts a new catapult in the Building state. Resets the wave, level and score.",
	}
}

// CreateEngineHandler executes an engine creation.
func CreateEngineHandler(session *Session, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[CreateEngineInput, CreateEngineResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateEngineInput) (*mcp.CallToolResult, CreateEngineResult, error) {
		var status engine.Status
		err := session.Do(func(g *game.Game) error {
			var err error
			status, err = g.CreateEngine(input.Name)
			return err
		})
		if err != nil {
			return nil, CreateEngineResult{}, err
		}
		NotifyResourceUpdates(ctx, notify, StatusResourceURI)
		return nil, CreateEngineResult{Seed: session.Seed(), Engine: enginePayload(status)}, nil
	}
}

// AddMaterialInput represents the MCP tool input for adding a material.
type AddMaterialInput struct {
	Kind      string `json:"kind" jsonschema:"material kind (stick, band, plug, pellet, adhesive)"`
	Parameter int    `json:"parameter,omitempty" jsonschema:"stick length 10-50, band elasticity 1-10 or adhesive quality 1-10"`
	Count     int    `json:"count,omitempty" jsonschema:"number of pellets to add (defaults to 1)"`
}

// AddMaterialResult represents the MCP tool output for adding a material.
type AddMaterialResult struct {
	Inventory InventoryPayload `json:"inventory" jsonschema:"material counts after the addition"`
}

// AddMaterialTool defines the MCP tool schema for adding a material.
func AddMaterialTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_material",
		Description: "Adds a material to the engine. Structural parts only while Building; pellets any time before destruction. A second adhesive replaces the first.",
	}
}

// AddMaterialHandler executes a material addition.
func AddMaterialHandler(session *Session, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[AddMaterialInput, AddMaterialResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddMaterialInput) (*mcp.CallToolResult, AddMaterialResult, error) {
		kind, err := material.ParseKind(input.Kind)
		if err != nil {
			return nil, AddMaterialResult{}, session.toolError(err)
		}
		var inv engine.Inventory
		err = session.Do(func(g *game.Game) error {
			var err error
			inv, err = g.AddMaterial(kind, input.Parameter, input.Count)
			return err
		})
		if err != nil {
			return nil, AddMaterialResult{}, err
		}
		NotifyResourceUpdates(ctx, notify, StatusResourceURI)
		return nil, AddMaterialResult{Inventory: inventoryPayload(inv)}, nil
	}
}

// BuildInput represents the MCP tool input for a construction attempt.
type BuildInput struct{}

// BuildResult represents the MCP tool output for a construction attempt.
type BuildResult struct {
	Success       bool    `json:"success" jsonschema:"whether the roll succeeded"`
	Probability   int     `json:"probability" jsonschema:"success chance in percent"`
	Roll          int     `json:"roll" jsonschema:"roll between 1 and 100"`
	Power         int     `json:"power" jsonschema:"effective power, zero when the roll failed"`
	Range         int     `json:"range" jsonschema:"effective range in meters"`
	Precision     int     `json:"precision" jsonschema:"hit chance in percent"`
	Stability     float64 `json:"stability" jsonschema:"stability score"`
	Durability    int     `json:"durability" jsonschema:"current durability"`
	DurabilityMax int     `json:"durability_max" jsonschema:"durability ceiling"`
}

// BuildTool defines the MCP tool schema for a construction attempt.
func BuildTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "build",
		Description: "Rolls to construct the engine. Needs two sticks, a band, an adhesive and a pellet. A failed roll keeps every material so the build can be retried.",
	}
}

// BuildHandler executes a construction attempt.
func BuildHandler(session *Session, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[BuildInput, BuildResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ BuildInput) (*mcp.CallToolResult, BuildResult, error) {
		var result engine.BuildResult
		err := session.Do(func(g *game.Game) error {
			var err error
			result, err = g.Build()
			return err
		})
		if err != nil {
			return nil, BuildResult{}, err
		}
		if result.Success {
			NotifyResourceUpdates(ctx, notify, StatusResourceURI)
		}
		return nil, BuildResult{
			Success:       result.Success,
			Probability:   result.Probability,
			Roll:          result.Roll,
			Power:         result.Stats.Power,
			Range:         result.Stats.Range,
			Precision:     result.Stats.Precision,
			Stability:     result.Stats.Stability,
			Durability:    result.Stats.Durability,
			DurabilityMax: result.Stats.DurabilityMax,
		}, nil
	}
}

// RepairInput represents the MCP tool input for a repair.
type RepairInput struct{}

// RepairResult represents the MCP tool output for a repair.
type RepairResult struct {
	Cost       int    `json:"cost" jsonschema:"pellets consumed"`
	Durability int    `json:"durability" jsonschema:"durability after the repair"`
	WearLevel  int    `json:"wear_level" jsonschema:"wear after the repair"`
	State      string `json:"state" jsonschema:"lifecycle state after the repair"`
}

// RepairTool defines the MCP tool schema for a repair.
func RepairTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "repair",
		Description: "Restores half of the maximum durability for one pellet, or three pellets when the engine is Destroyed.",
	}
}

// RepairHandler executes a repair.
func RepairHandler(session *Session, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[RepairInput, RepairResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ RepairInput) (*mcp.CallToolResult, RepairResult, error) {
		var result engine.RepairResult
		err := session.Do(func(g *game.Game) error {
			var err error
			result, err = g.Repair()
			return err
		})
		if err != nil {
			return nil, RepairResult{}, err
		}
		NotifyResourceUpdates(ctx, notify, StatusResourceURI)
		return nil, RepairResult{
			Cost:       result.Cost,
			Durability: result.Durability,
			WearLevel:  result.WearLevel,
			State:      result.State.String(),
		}, nil
	}
}

// UpgradeInput represents the MCP tool input for an upgrade.
type UpgradeInput struct {
	Kind string `json:"kind" jsonschema:"upgrade kind (reinforcement, power)"`
}

// UpgradeResult represents the MCP tool output for an upgrade.
type UpgradeResult struct {
	Kind          string `json:"kind" jsonschema:"applied upgrade"`
	Material      string `json:"material" jsonschema:"material the upgrade added"`
	Parameter     int    `json:"parameter,omitempty" jsonschema:"band elasticity for power upgrades"`
	DurabilityMax int    `json:"durability_max" jsonschema:"durability ceiling after the upgrade"`
}

// UpgradeTool defines the MCP tool schema for an upgrade.
func UpgradeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "upgrade",
		Description: "Adds a plug (reinforcement) or a strong band (power) to the engine, bypassing the Building restriction.",
	}
}

// UpgradeHandler executes an upgrade.
func UpgradeHandler(session *Session, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[UpgradeInput, UpgradeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpgradeInput) (*mcp.CallToolResult, UpgradeResult, error) {
		var result engine.UpgradeResult
		err := session.Do(func(g *game.Game) error {
			var err error
			result, err = g.Upgrade(input.Kind)
			return err
		})
		if err != nil {
			return nil, UpgradeResult{}, err
		}
		NotifyResourceUpdates(ctx, notify, StatusResourceURI)
		return nil, UpgradeResult{
			Kind:          string(result.Kind),
			Material:      result.Material,
			Parameter:     result.Parameter,
			DurabilityMax: result.DurabilityMax,
		}, nil
	}
}
