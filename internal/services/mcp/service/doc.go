// Package service wires MCP transports to the siege tool handlers.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates game
// meaning to the handlers in the domain package.
package service
