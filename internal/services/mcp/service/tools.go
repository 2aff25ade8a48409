package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/catapult/internal/services/mcp/domain"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

func registerEngineTools(registrar mcpRegistrationTarget, session *domain.Session, notify domain.ResourceUpdateNotifier) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.CreateEngineTool(), handler: domain.CreateEngineHandler(session, notify)},
		{tool: domain.AddMaterialTool(), handler: domain.AddMaterialHandler(session, notify)},
		{tool: domain.BuildTool(), handler: domain.BuildHandler(session, notify)},
		{tool: domain.RepairTool(), handler: domain.RepairHandler(session, notify)},
		{tool: domain.UpgradeTool(), handler: domain.UpgradeHandler(session, notify)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerCombatTools(registrar mcpRegistrationTarget, session *domain.Session, notify domain.ResourceUpdateNotifier) error {
	if err := registerTool(registrar, domain.GenerateWaveTool(), domain.GenerateWaveHandler(session, notify)); err != nil {
		return err
	}
	return registerTool(registrar, domain.FireTool(), domain.FireHandler(session, notify))
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
