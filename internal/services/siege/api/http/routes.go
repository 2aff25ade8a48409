package httpapi

import (
	"net/http"

	"github.com/louisbranch/catapult/internal/siege/enemy"
	"github.com/louisbranch/catapult/internal/siege/engine"
	"github.com/louisbranch/catapult/internal/siege/game"
	"github.com/louisbranch/catapult/internal/siege/material"
)

type createEngineRequest struct {
	Name string `json:"name"`
}

type engineResponse struct {
	Success bool          `json:"success"`
	Engine  engine.Status `json:"engine"`
}

func (h *Handler) handleCreateEngine(w http.ResponseWriter, r *http.Request) (any, error) {
	var req createEngineRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	sessionID, err := h.ensureSession(r.Context(), w, r)
	if err != nil {
		return nil, err
	}
	var status engine.Status
	err = h.store.Do(sessionID, func(g *game.Game) error {
		status, err = g.CreateEngine(req.Name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return engineResponse{Success: true, Engine: status}, nil
}

type addMaterialRequest struct {
	Kind      string `json:"kind"`
	Parameter int    `json:"parameter"`
	Count     int    `json:"count"`
}

type inventoryResponse struct {
	Success   bool             `json:"success"`
	Inventory engine.Inventory `json:"inventory"`
}

func (h *Handler) handleAddMaterial(w http.ResponseWriter, r *http.Request) (any, error) {
	var req addMaterialRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	kind, err := material.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	var inv engine.Inventory
	err = h.withGame(w, r, func(g *game.Game) error {
		inv, err = g.AddMaterial(kind, req.Parameter, req.Count)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inventoryResponse{Success: true, Inventory: inv}, nil
}

type buildResponse struct {
	Success bool               `json:"success"`
	Build   engine.BuildResult `json:"build"`
}

func (h *Handler) handleBuild(w http.ResponseWriter, r *http.Request) (any, error) {
	var result engine.BuildResult
	err := h.withGame(w, r, func(g *game.Game) error {
		var err error
		result, err = g.Build()
		return err
	})
	if err != nil {
		return nil, err
	}
	return buildResponse{Success: result.Success, Build: result}, nil
}

type waveRequest struct {
	Level int `json:"level"`
}

type waveResponse struct {
	Success bool             `json:"success"`
	Level   int              `json:"level"`
	Enemies []enemy.Snapshot `json:"enemies"`
}

func (h *Handler) handleGenerateWave(w http.ResponseWriter, r *http.Request) (any, error) {
	var req waveRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	var resp waveResponse
	err := h.withGame(w, r, func(g *game.Game) error {
		enemies, err := g.GenerateWave(req.Level)
		if err != nil {
			return err
		}
		resp = waveResponse{Success: true, Level: g.Level(), Enemies: enemies}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

type fireRequest struct {
	Target int `json:"target"`
}

type fireResponse struct {
	Success bool `json:"success"`
	game.FireResult
}

func (h *Handler) handleFire(w http.ResponseWriter, r *http.Request) (any, error) {
	var req fireRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	var result game.FireResult
	err := h.withGame(w, r, func(g *game.Game) error {
		var err error
		result, err = g.Fire(req.Target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fireResponse{Success: true, FireResult: result}, nil
}

type repairResponse struct {
	Success bool                `json:"success"`
	Repair  engine.RepairResult `json:"repair"`
}

func (h *Handler) handleRepair(w http.ResponseWriter, r *http.Request) (any, error) {
	var result engine.RepairResult
	err := h.withGame(w, r, func(g *game.Game) error {
		var err error
		result, err = g.Repair()
		return err
	})
	if err != nil {
		return nil, err
	}
	return repairResponse{Success: true, Repair: result}, nil
}

type upgradeRequest struct {
	Kind string `json:"kind"`
}

type upgradeResponse struct {
	Success bool                 `json:"success"`
	Upgrade engine.UpgradeResult `json:"upgrade"`
}

func (h *Handler) handleUpgrade(w http.ResponseWriter, r *http.Request) (any, error) {
	var req upgradeRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	var result engine.UpgradeResult
	err := h.withGame(w, r, func(g *game.Game) error {
		var err error
		result, err = g.Upgrade(req.Kind)
		return err
	})
	if err != nil {
		return nil, err
	}
	return upgradeResponse{Success: true, Upgrade: result}, nil
}

type statusResponse struct {
	Success bool `json:"success"`
	game.Status
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) (any, error) {
	var status game.Status
	err := h.withGame(w, r, func(g *game.Game) error {
		var err error
		status, err = g.Status()
		return err
	})
	if err != nil {
		return nil, err
	}
	return statusResponse{Success: true, Status: status}, nil
}
