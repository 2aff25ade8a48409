package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/catapult/internal/services/mcp/domain"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(mcpRegistrationTarget) error
}

const (
	mcpEngineToolsModuleName     = "engine-tools"
	mcpCombatToolsModuleName     = "combat-tools"
	mcpStatusToolsModuleName     = "status-tools"
	mcpStatusResourcesModuleName = "status-resources"
)

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.CreateEngineInput, domain.CreateEngineResult](),
	newMCPToolRegistrar[domain.AddMaterialInput, domain.AddMaterialResult](),
	newMCPToolRegistrar[domain.BuildInput, domain.BuildResult](),
	newMCPToolRegistrar[domain.RepairInput, domain.RepairResult](),
	newMCPToolRegistrar[domain.UpgradeInput, domain.UpgradeResult](),
	newMCPToolRegistrar[domain.GenerateWaveInput, domain.GenerateWaveResult](),
	newMCPToolRegistrar[domain.FireInput, domain.FireResult](),
	newMCPToolRegistrar[domain.StatusInput, domain.StatusPayload](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(session *domain.Session, notify domain.ResourceUpdateNotifier) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpEngineToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerEngineTools(registrar, session, notify)
			},
		},
		{
			name: mcpCombatToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerCombatTools(registrar, session, notify)
			},
		},
		{
			name: mcpStatusToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTool(registrar, domain.StatusTool(), domain.StatusHandler(session))
			},
		},
		{
			name: mcpStatusResourcesModuleName,
			kind: mcpRegistrationKindResources,
			register: func(registrar mcpRegistrationTarget) error {
				registrar.AddResource(domain.StatusResource(), domain.StatusResourceHandler(session))
				return nil
			},
		},
	}
}
