package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/siege/game"
)

// StatusResourceURI addresses the encounter snapshot resource.
const StatusResourceURI = "siege://status"

// ResourceUpdateNotifier publishes a resource change to subscribed clients.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

// NotifyResourceUpdates calls notify for every non-empty uri.
func NotifyResourceUpdates(ctx context.Context, notify ResourceUpdateNotifier, uris ...string) {
	if notify == nil {
		return
	}
	for _, uri := range uris {
		if uri != "" {
			notify(ctx, uri)
		}
	}
}

// Session is the encounter an MCP server plays. A session that expired in the
// store is replaced on the next call, and that call reports the expiry.
type Session struct {
	store  *game.Store
	locale string

	mu   sync.Mutex
	id   string
	seed int64
}

// NewSession opens an encounter in store. Errors are rendered in locale.
func NewSession(store *game.Store, locale string) (*Session, error) {
	if store == nil {
		return nil, errors.New("game store is required")
	}
	s := &Session{store: store, locale: locale}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the current store session id.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Seed returns the random seed of the current encounter.
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

func (s *Session) open() error {
	sessionID, seed, err := s.store.Create()
	if err != nil {
		return fmt.Errorf("open siege session: %w", err)
	}
	s.mu.Lock()
	s.id = sessionID
	s.seed = seed
	s.mu.Unlock()
	return nil
}

// Do runs fn against the encounter. Domain errors come back as ToolError so
// the client sees a localized message and a stable code.
func (s *Session) Do(fn func(*game.Game) error) error {
	err := s.store.Do(s.ID(), fn)
	if err == nil {
		return nil
	}
	if errors.Is(err, game.ErrSessionNotFound) {
		if openErr := s.open(); openErr != nil {
			return openErr
		}
	}
	return s.toolError(err)
}

// ToolError is a domain failure rendered for an MCP client.
type ToolError struct {
	Code    apperrors.Code
	Kind    apperrors.Kind
	Message string
	Details []string
	cause   error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.cause
}

func (s *Session) toolError(err error) error {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return err
	}
	loc := apperrors.Localize(err, s.locale)
	return &ToolError{
		Code:    loc.Code,
		Kind:    loc.Kind,
		Message: loc.Message,
		Details: loc.Details,
		cause:   err,
	}
}
