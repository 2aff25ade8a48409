package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"
	"time"

	platformgrpc "github.com/louisbranch/catapult/internal/platform/grpc"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(Config{
		HTTPAddr:      "127.0.0.1:0",
		GRPCAddr:      "127.0.0.1:0",
		MaxConns:      8,
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		Seed:          5,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})
	return srv
}

func TestServerServesHealthAndAPI(t *testing.T) {
	srv := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	conn, err := platformgrpc.DialHealthy(ctx, srv.GRPCAddr(), HealthService, 0, nil)
	if err != nil {
		t.Fatalf("dial healthy: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar, Timeout: 3 * time.Second}
	base := "http://" + srv.HTTPAddr()

	resp, err := client.Post(base+"/api/engine", "application/json", strings.NewReader(`{"name":"Scorpion"}`))
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create engine status = %d", resp.StatusCode)
	}
	if srv.Store().Len() != 1 {
		t.Fatalf("Store().Len() = %d, want 1", srv.Store().Len())
	}

	resp, err = client.Get(base + "/api/status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	defer resp.Body.Close()
	var payload struct {
		Success bool `json:"success"`
		Engine  struct {
			Name  string `json:"name"`
			State string `json:"state"`
		} `json:"engine"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !payload.Success || payload.Engine.Name != "Scorpion" || payload.Engine.State != "building" {
		t.Fatalf("status payload = %+v", payload)
	}
}

func TestNewRequiresSessionSecret(t *testing.T) {
	if _, err := New(Config{HTTPAddr: "127.0.0.1:0", GRPCAddr: "127.0.0.1:0"}); err == nil {
		t.Fatal("expected missing secret error")
	}
}

func TestNewReportsListenError(t *testing.T) {
	if _, err := New(Config{HTTPAddr: "bad-address", GRPCAddr: "127.0.0.1:0", SessionSecret: "s"}); err == nil {
		t.Fatal("expected listen error")
	}
}
