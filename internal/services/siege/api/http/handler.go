// Package httpapi serves the siege JSON API. Each browser session maps to
// one game.Store entry through a signed cookie.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/platform/i18n/catalog"
	"github.com/louisbranch/catapult/internal/siege/game"
)

const (
	maxBodyBytes = 1 << 16
	tracerName   = "github.com/louisbranch/catapult/internal/services/siege/api/http"
)

// Config wires a Handler.
type Config struct {
	Store   *game.Store
	Signer  *SessionSigner
	Catalog *catalog.Bundle
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

// Handler serves the siege JSON API.
type Handler struct {
	store   *game.Store
	signer  *SessionSigner
	catalog *catalog.Bundle
	secure  bool
	tracer  trace.Tracer
}

// NewHandler validates cfg and returns a Handler.
func NewHandler(cfg Config) (*Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("game store is required")
	}
	if cfg.Signer == nil {
		return nil, errors.New("session signer is required")
	}
	bundle := cfg.Catalog
	if bundle == nil {
		bundle = catalog.Default()
	}
	return &Handler{
		store:   cfg.Store,
		signer:  cfg.Signer,
		catalog: bundle,
		secure:  cfg.SecureCookies,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// RegisterRoutes mounts the API on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/engine", h.traced("siege.create_engine", h.handleCreateEngine))
	mux.HandleFunc("POST /api/materials", h.traced("siege.add_material", h.handleAddMaterial))
	mux.HandleFunc("POST /api/build", h.traced("siege.build", h.handleBuild))
	mux.HandleFunc("POST /api/wave", h.traced("siege.generate_wave", h.handleGenerateWave))
	mux.HandleFunc("POST /api/fire", h.traced("siege.fire", h.handleFire))
	mux.HandleFunc("POST /api/repair", h.traced("siege.repair", h.handleRepair))
	mux.HandleFunc("POST /api/upgrade", h.traced("siege.upgrade", h.handleUpgrade))
	mux.HandleFunc("GET /api/status", h.traced("siege.status", h.handleStatus))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
}

// Routes returns a mux with every API route mounted.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

// apiFunc handles one request and returns the success payload or an error.
type apiFunc func(w http.ResponseWriter, r *http.Request) (any, error)

func (h *Handler) traced(name string, fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := h.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		span.SetAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", r.URL.Path),
		)

		payload, err := fn(w, r.WithContext(ctx))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

type errorResponse struct {
	Success bool     `json:"success"`
	Code    string   `json:"code"`
	Kind    string   `json:"kind"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := h.catalog.Negotiate(r.Header.Get("Accept-Language"))
	localized := apperrors.Localize(err, locale)
	w.Header().Set("Content-Language", localized.Locale)
	writeJSON(w, localized.Status, errorResponse{
		Success: false,
		Code:    string(localized.Code),
		Kind:    string(localized.Kind),
		Error:   localized.Message,
		Details: localized.Details,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

// decodeBody reads an optional JSON body into dst. An empty body leaves dst
// untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(apperrors.CodeSessionInvalidRequest, "decode request body", err)
	}
	return nil
}

// withGame runs fn against the request's session. A session the store still
// holds gets a fresh cookie so the token expires no sooner than the idle TTL.
func (h *Handler) withGame(w http.ResponseWriter, r *http.Request, fn func(*game.Game) error) error {
	sessionID, err := h.signer.sessionFromRequest(r)
	if err != nil {
		return err
	}
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("siege.session_id", sessionID))
	err = h.store.Do(sessionID, fn)
	if errors.Is(err, game.ErrSessionNotFound) {
		return err
	}
	if refreshErr := h.setSessionCookie(w, sessionID); refreshErr != nil {
		return refreshErr
	}
	return err
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) error {
	token, err := h.signer.Issue(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, h.signer.Cookie(token, h.secure))
	return nil
}

// ensureSession returns the caller's live session id, creating a session and
// setting its cookie when the request carries none.
func (h *Handler) ensureSession(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	if sessionID, err := h.signer.sessionFromRequest(r); err == nil {
		if err := h.store.Do(sessionID, func(*game.Game) error { return nil }); err == nil {
			return sessionID, h.setSessionCookie(w, sessionID)
		}
	}
	sessionID, seed, err := h.store.Create()
	if err != nil {
		return "", err
	}
	if err := h.setSessionCookie(w, sessionID); err != nil {
		h.store.Delete(sessionID)
		return "", err
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("siege.session_id", sessionID),
		attribute.Int64("siege.seed", seed),
	)
	return sessionID, nil
}
