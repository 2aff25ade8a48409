package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/catapult/internal/siege/game"
	"github.com/louisbranch/catapult/internal/siege/random"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	store   *game.Store
	signer  *SessionSigner
	cookie  *http.Cookie
}

func newAPIClient(t *testing.T, script ...int) *apiClient {
	t.Helper()
	return newAPIClientAt(t, nil, script...)
}

// newAPIClientAt builds a client whose store and signer share the now clock.
func newAPIClientAt(t *testing.T, now func() time.Time, script ...int) *apiClient {
	t.Helper()
	store := game.NewStore(game.StoreConfig{
		TTL:    time.Hour,
		Seed:   1,
		Now:    now,
		Source: func(int64) random.Source { return random.NewScripted(script...) },
	})
	signer, err := NewSessionSigner("test-secret", time.Hour, now)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	h, err := NewHandler(Config{Store: store, Signer: signer})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return &apiClient{t: t, handler: h.Routes(), store: store, signer: signer}
}

func (c *apiClient) sessionID() string {
	c.t.Helper()
	if c.cookie == nil {
		c.t.Fatal("expected session cookie")
	}
	sessionID, err := c.signer.Verify(c.cookie.Value)
	if err != nil {
		c.t.Fatalf("verify session cookie: %v", err)
	}
	return sessionID
}

func (c *apiClient) do(method, path, body string, header ...string) (int, map[string]any, http.Header) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			c.cookie = cookie
		}
	}
	var payload map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			c.t.Fatalf("decode %s %s response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, payload, rec.Header()
}

func (c *apiClient) mustOK(method, path, body string) map[string]any {
	c.t.Helper()
	status, payload, _ := c.do(method, path, body)
	if status != http.StatusOK {
		c.t.Fatalf("%s %s status = %d, payload %v", method, path, status, payload)
	}
	return payload
}

func field(t *testing.T, payload map[string]any, path ...string) any {
	t.Helper()
	var current any = payload
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			t.Fatalf("path %v: %v is not an object", path, current)
		}
		current = obj[key]
	}
	return current
}

func TestEncounterFlow(t *testing.T) {
	script := []int{
		40,                         // build roll
		0, 10, 0, 10, 0, 10, 0, 10, // four soldiers at 10m
		1, // hit
	}
	c := newAPIClient(t, script...)

	created := c.mustOK(http.MethodPost, "/api/engine", `{"name":"Ballista"}`)
	if c.cookie == nil {
		t.Fatal("expected session cookie")
	}
	if got := field(t, created, "engine", "name"); got != "Ballista" {
		t.Fatalf("engine name = %v, want Ballista", got)
	}
	if got := field(t, created, "engine", "state"); got != "building" {
		t.Fatalf("engine state = %v, want building", got)
	}

	for _, body := range []string{
		`{"kind":"stick","parameter":30}`,
		`{"kind":"stick","parameter":30}`,
		`{"kind":"band","parameter":5}`,
		`{"kind":"adhesive","parameter":5}`,
	} {
		c.mustOK(http.MethodPost, "/api/materials", body)
	}
	inv := c.mustOK(http.MethodPost, "/api/materials", `{"kind":"pellet","count":3}`)
	if got := field(t, inv, "inventory", "pellets"); got != float64(3) {
		t.Fatalf("pellets = %v, want 3", got)
	}

	built := c.mustOK(http.MethodPost, "/api/build", "")
	if built["success"] != true {
		t.Fatalf("build = %v, want success", built)
	}
	if got := field(t, built, "build", "probability"); got != float64(65) {
		t.Fatalf("probability = %v, want 65", got)
	}
	if got := field(t, built, "build", "stats", "durability_max"); got != float64(35) {
		t.Fatalf("durability_max = %v, want 35", got)
	}

	wave := c.mustOK(http.MethodPost, "/api/wave", `{}`)
	enemies, ok := wave["enemies"].([]any)
	if !ok || len(enemies) != 4 {
		t.Fatalf("enemies = %v, want 4", wave["enemies"])
	}

	fired := c.mustOK(http.MethodPost, "/api/fire", `{"target":0}`)
	if got := field(t, fired, "shot", "hit"); got != true {
		t.Fatalf("hit = %v, want true", got)
	}
	if got := field(t, fired, "shot", "damage"); got != float64(20) {
		t.Fatalf("damage = %v, want 20", got)
	}
	if fired["victory"] != false || fired["game_over"] != false {
		t.Fatalf("fire flags = %v", fired)
	}

	status := c.mustOK(http.MethodGet, "/api/status", "")
	if got := field(t, status, "engine", "shots_taken"); got != float64(1) {
		t.Fatalf("shots_taken = %v, want 1", got)
	}
	if got := field(t, status, "engine", "durability_percent"); got != 85.7 {
		t.Fatalf("durability_percent = %v, want 85.7", got)
	}
	log, ok := field(t, status, "engine", "shot_log").([]any)
	if !ok || len(log) != 1 {
		t.Fatalf("shot_log = %v, want one entry", field(t, status, "engine", "shot_log"))
	}

	repaired := c.mustOK(http.MethodPost, "/api/repair", "")
	if got := field(t, repaired, "repair", "cost"); got != float64(1) {
		t.Fatalf("repair cost = %v, want 1", got)
	}
	c.mustOK(http.MethodPost, "/api/upgrade", `{"kind":"reinforcement"}`)
	status = c.mustOK(http.MethodGet, "/api/status", "")
	if got := field(t, status, "engine", "durability_max"); got != float64(45) {
		t.Fatalf("durability_max = %v, want 45", got)
	}
}

func TestErrorsAreLocalized(t *testing.T) {
	c := newAPIClient(t)
	c.mustOK(http.MethodPost, "/api/engine", `{}`)

	status, payload, header := c.do(http.MethodPost, "/api/materials", `{"kind":"band","parameter":11}`, "Accept-Language", "es-ES,es;q=0.9")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload["success"] != false || payload["code"] != "MATERIAL_INVALID_ELASTICITY" || payload["kind"] != "validation" {
		t.Fatalf("payload = %v", payload)
	}
	if payload["error"] != "La elasticidad debe estar entre 1 y 10, se recibió 11." {
		t.Fatalf("error = %q", payload["error"])
	}
	if header.Get("Content-Language") != "es-ES" {
		t.Fatalf("Content-Language = %q, want es-ES", header.Get("Content-Language"))
	}

	status, payload, _ = c.do(http.MethodPost, "/api/build", "")
	if status != http.StatusBadRequest || payload["code"] != "ENGINE_MISSING_REQUIREMENTS" {
		t.Fatalf("build status = %d, payload %v", status, payload)
	}
	if payload["error"] != "The catapult cannot be built: missing 2 sticks, band, adhesive, pellet." {
		t.Fatalf("error = %q", payload["error"])
	}
	if details, ok := payload["details"].([]any); !ok || len(details) != 4 {
		t.Fatalf("details = %v, want 4 entries", payload["details"])
	}
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		setup      bool
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"status without session", false, http.MethodGet, "/api/status", "", http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"malformed body", true, http.MethodPost, "/api/materials", `{"kind":`, http.StatusBadRequest, "SESSION_INVALID_REQUEST"},
		{"unknown field", true, http.MethodPost, "/api/upgrade", `{"type":"power"}`, http.StatusBadRequest, "SESSION_INVALID_REQUEST"},
		{"unknown material", true, http.MethodPost, "/api/materials", `{"kind":"rope"}`, http.StatusBadRequest, "MATERIAL_INVALID_KIND"},
		{"unknown upgrade", true, http.MethodPost, "/api/upgrade", `{"kind":"turbo"}`, http.StatusBadRequest, "ENGINE_UNKNOWN_UPGRADE"},
		{"wave before build", true, http.MethodPost, "/api/wave", "", http.StatusBadRequest, "ENGINE_NOT_BUILT"},
		{"fire without wave", true, http.MethodPost, "/api/fire", `{"target":2}`, http.StatusNotFound, "SESSION_ENEMY_NOT_FOUND"},
		{"repair while building", true, http.MethodPost, "/api/repair", "", http.StatusBadRequest, "ENGINE_NOT_BUILT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newAPIClient(t)
			if tc.setup {
				c.mustOK(http.MethodPost, "/api/engine", "")
			}
			status, payload, _ := c.do(tc.method, tc.path, tc.body)
			if status != tc.wantStatus || payload["code"] != tc.wantCode {
				t.Fatalf("%s %s = %d %v, want %d %s", tc.method, tc.path, status, payload, tc.wantStatus, tc.wantCode)
			}
		})
	}
}

func TestTamperedCookieIsRejected(t *testing.T) {
	c := newAPIClient(t)
	c.mustOK(http.MethodPost, "/api/engine", "")
	c.cookie.Value += "x"

	status, payload, _ := c.do(http.MethodGet, "/api/status", "")
	if status != http.StatusNotFound || payload["code"] != "SESSION_NOT_FOUND" {
		t.Fatalf("status = %d %v, want 404 SESSION_NOT_FOUND", status, payload)
	}
}

func TestCreateEngineReusesSession(t *testing.T) {
	c := newAPIClient(t)
	c.mustOK(http.MethodPost, "/api/engine", `{"name":"First"}`)
	first := c.sessionID()

	c.mustOK(http.MethodPost, "/api/engine", `{"name":"Second"}`)
	if got := c.sessionID(); got != first {
		t.Fatalf("session id = %q, want %q", got, first)
	}
	if got := c.store.Len(); got != 1 {
		t.Fatalf("store sessions = %d, want 1", got)
	}
	status := c.mustOK(http.MethodGet, "/api/status", "")
	if got := field(t, status, "engine", "name"); got != "Second" {
		t.Fatalf("engine name = %v, want Second", got)
	}
}

func TestActiveSessionOutlivesTokenTTL(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newAPIClientAt(t, func() time.Time { return clock })
	c.mustOK(http.MethodPost, "/api/engine", "")
	sessionID := c.sessionID()

	for step := 1; step <= 12; step++ {
		clock = clock.Add(10 * time.Minute)
		status, payload, _ := c.do(http.MethodGet, "/api/status", "")
		if status != http.StatusOK {
			t.Fatalf("t+%dm status = %d %v, want 200", step*10, status, payload)
		}
	}
	if got := c.sessionID(); got != sessionID {
		t.Fatalf("session id = %q, want %q", got, sessionID)
	}

	clock = clock.Add(time.Hour + time.Minute)
	status, payload, _ := c.do(http.MethodGet, "/api/status", "")
	if status != http.StatusNotFound || payload["code"] != "SESSION_NOT_FOUND" {
		t.Fatalf("idle status = %d %v, want 404 SESSION_NOT_FOUND", status, payload)
	}
}

func TestDomainErrorRefreshesCookie(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newAPIClientAt(t, func() time.Time { return clock })
	c.mustOK(http.MethodPost, "/api/engine", "")
	issued := c.cookie.Value

	clock = clock.Add(30 * time.Minute)
	status, _, _ := c.do(http.MethodPost, "/api/build", "")
	if status == http.StatusOK {
		t.Fatal("expected build without materials to fail")
	}
	if c.cookie.Value == issued {
		t.Fatal("expected refreshed session cookie")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	c := newAPIClient(t)
	req := httptest.NewRequest(http.MethodGet, "/api/build", nil)
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/build = %d, want 405", rec.Code)
	}
}

func TestNewHandlerValidatesConfig(t *testing.T) {
	if _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected missing store error")
	}
	if _, err := NewHandler(Config{Store: game.NewStore(game.StoreConfig{})}); err == nil {
		t.Fatal("expected missing signer error")
	}
}
