package engine

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/siege/material"
)

const (
	repairCost          = 1
	repairCostDestroyed = 3
	repairWearRelief    = 5
	upgradeDurability   = 10
	upgradeBandMin      = 7
	upgradeBandMax      = 10
)

// RepairResult reports a completed repair.
type RepairResult struct {
	Cost       int   `json:"cost"`
	Durability int   `json:"durability"`
	WearLevel  int   `json:"wear_level"`
	State      State `json:"state"`
}

// RepairCost returns the pellets a repair would consume in the current state.
func (e *Engine) RepairCost() int {
	if e.state == StateDestroyed {
		return repairCostDestroyed
	}
	return repairCost
}

// Repair spends pellets to restore half of the maximum durability and relieve
// wear. A destroyed engine comes back Ready.
func (e *Engine) Repair() (RepairResult, error) {
	if e.state == StateBuilding {
		return RepairResult{}, ErrNotBuilt
	}
	cost := e.RepairCost()
	if len(e.pellets) < cost {
		return RepairResult{}, apperrors.WithMetadata(
			apperrors.CodeEngineInsufficientPellets,
			fmt.Sprintf("repair needs %d pellets, %d available", cost, len(e.pellets)),
			map[string]string{
				"Cost":      strconv.Itoa(cost),
				"Available": strconv.Itoa(len(e.pellets)),
			},
		)
	}

	e.consumePellets(cost)
	e.durability = min(e.durabilityMax, e.durability+e.durabilityMax/2)
	e.wearLevel = max(0, e.wearLevel-repairWearRelief)
	switch e.state {
	case StateDestroyed:
		e.state = StateReady
	case StateDamaged:
		if e.durability*2 > e.durabilityMax {
			e.state = StateReady
		}
	}
	return RepairResult{
		Cost:       cost,
		Durability: e.durability,
		WearLevel:  e.wearLevel,
		State:      e.state,
	}, nil
}

// Upgrade names an upgrade kind.
type Upgrade string

const (
	UpgradeReinforcement Upgrade = "reinforcement"
	UpgradePower         Upgrade = "power"
)

// ParseUpgrade resolves an upgrade name, case-insensitively.
func ParseUpgrade(name string) (Upgrade, error) {
	switch u := Upgrade(strings.ToLower(strings.TrimSpace(name))); u {
	case UpgradeReinforcement, UpgradePower:
		return u, nil
	default:
		return "", apperrors.WithMetadata(
			apperrors.CodeEngineUnknownUpgrade,
			fmt.Sprintf("unknown upgrade %q", name),
			map[string]string{"Kind": name},
		)
	}
}

// UpgradeResult reports the material an upgrade installed.
type UpgradeResult struct {
	Kind          Upgrade `json:"kind"`
	Material      string  `json:"material"`
	Parameter     int     `json:"parameter,omitempty"`
	DurabilityMax int     `json:"durability_max"`
}

// Upgrade installs an extra plug (reinforcement) or a strong band (power).
// Upgrades bypass the Building-only rule for structural materials.
func (e *Engine) Upgrade(kind Upgrade) (UpgradeResult, error) {
	if e.state == StateDestroyed {
		return UpgradeResult{}, ErrDestroyed
	}
	switch kind {
	case UpgradeReinforcement:
		plug := material.NewPlug()
		e.plugs = append(e.plugs, plug)
		// Before build the plug reaches durabilityMax through the build formula.
		if e.state.Built() {
			e.durabilityMax += upgradeDurability
		}
		return UpgradeResult{Kind: kind, Material: plug.Kind().String(), DurabilityMax: e.durabilityMax}, nil
	case UpgradePower:
		band, err := material.NewBand(e.rng.Between(upgradeBandMin, upgradeBandMax))
		if err != nil {
			return UpgradeResult{}, err
		}
		e.bands = append(e.bands, band)
		return UpgradeResult{
			Kind:          kind,
			Material:      band.Kind().String(),
			Parameter:     band.Parameter(),
			DurabilityMax: e.durabilityMax,
		}, nil
	default:
		return UpgradeResult{}, ErrUnknownUpgrade
	}
}
