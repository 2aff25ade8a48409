// Package domain translates MCP tool calls into siege encounter commands.
//
// Every handler runs against one Session, which owns a single encounter in a
// game.Store. Inputs and outputs are flat payloads so MCP clients get a stable
// JSON schema that does not track internal Go types.
package domain
