package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/catapult/internal/services/mcp/domain"
	"github.com/louisbranch/catapult/internal/siege/game"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "Catapult Siege MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr keeps the HTTP transport on loopback unless configured.
	defaultHTTPAddr = "localhost:8082"
)

// TransportKind selects how the MCP server talks to its client.
type TransportKind string

const (
	// TransportStdio serves a single client over stdin/stdout.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves clients over the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// ParseTransport resolves a transport name, defaulting to stdio.
func ParseTransport(name string) (TransportKind, error) {
	switch TransportKind(strings.ToLower(strings.TrimSpace(name))) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP:
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("transport %q is not supported", name)
	}
}

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
	// Locale selects the language of tool error messages.
	Locale string
	// Seed fixes the encounter's random sequence. Zero draws a fresh seed.
	Seed int64
	// SessionTTL is how long the encounter survives without tool calls.
	SessionTTL time.Duration
}

// Server hosts siege encounters behind MCP. Stdio plays one encounter; the
// HTTP transport opens one per MCP session.
type Server struct {
	store  *game.Store
	locale string

	mcpServer *mcp.Server
	session   *domain.Session
}

// New builds an MCP server with every siege tool and resource registered.
func New(cfg Config) (*Server, error) {
	store := game.NewStore(game.StoreConfig{TTL: cfg.SessionTTL, Seed: cfg.Seed})
	return newServer(store, cfg.Locale)
}

func newServer(store *game.Store, locale string) (*Server, error) {
	if store == nil {
		return nil, errors.New("game store is required")
	}
	server := &Server{store: store, locale: locale}
	mcpServer, session, err := server.newEncounter()
	if err != nil {
		return nil, err
	}
	server.mcpServer = mcpServer
	server.session = session
	return server, nil
}

// newEncounter opens a store session and returns an MCP server whose tools
// and resources act on it alone.
func (s *Server) newEncounter() (*mcp.Server, *domain.Session, error) {
	session, err := domain.NewSession(s.store, s.locale)
	if err != nil {
		return nil, nil, err
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})

	notify := func(ctx context.Context, uri string) {
		if ctx == nil {
			ctx = context.Background()
		}
		if err := mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
			log.Printf("mcp resource updated notify failed: uri=%s err=%v", uri, err)
		}
	}

	registrar := mcpServerRegistrationAdapter{server: mcpServer}
	for _, module := range newMCPRegistrationModules(session, notify) {
		if err := module.register(registrar); err != nil {
			return nil, nil, fmt.Errorf("register %s: %w", module.name, err)
		}
	}
	return mcpServer, session, nil
}

// Session returns the stdio encounter.
func (s *Server) Session() *domain.Session {
	return s.session
}

// resourceSubscribeHandler accepts subscriptions to known resources.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil {
		return checkResourceURI("")
	}
	return checkResourceURI(req.Params.URI)
}

// resourceUnsubscribeHandler accepts unsubscriptions from known resources.
func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil {
		return checkResourceURI("")
	}
	return checkResourceURI(req.Params.URI)
}

func checkResourceURI(uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return errors.New("resource uri is required")
	}
	if uri != domain.StatusResourceURI {
		return mcp.ResourceNotFoundError(uri)
	}
	return nil
}
