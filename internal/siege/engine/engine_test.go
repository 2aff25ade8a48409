package engine

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/siege/enemy"
	"github.com/louisbranch/catapult/internal/siege/material"
	"github.com/louisbranch/catapult/internal/siege/random"
)

func mustMaterial(t *testing.T, m material.Material, err error) material.Material {
	t.Helper()
	if err != nil {
		t.Fatalf("create material: %v", err)
	}
	return m
}

func mustAdd(t *testing.T, e *Engine, materials ...material.Material) {
	t.Helper()
	for _, m := range materials {
		if err := e.AddMaterial(m); err != nil {
			t.Fatalf("add %s: %v", m.Kind(), err)
		}
	}
}

func mustEnemy(t *testing.T, archetype enemy.Archetype, distance int) *enemy.Enemy {
	t.Helper()
	target, err := enemy.New(archetype, distance)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}
	return target
}

// newLightEngine returns an unbuilt engine with two 30cm sticks, one band of
// elasticity 5, adhesive quality 5 and three pellets.
func newLightEngine(t *testing.T, src random.Source) *Engine {
	t.Helper()
	e, err := New("Trebuchet", src)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	stick, err := material.NewStick(30)
	mustAdd(t, e, mustMaterial(t, stick, err), stick)
	band, err := material.NewBand(5)
	mustAdd(t, e, mustMaterial(t, band, err))
	adhesive, err := material.NewAdhesive(5)
	mustAdd(t, e, mustMaterial(t, adhesive, err))
	if err := e.AddPellets(3); err != nil {
		t.Fatalf("add pellets: %v", err)
	}
	return e
}

// newHeavyEngine returns a built engine with durabilityMax 100 and a range of
// 13 at full durability.
func newHeavyEngine(t *testing.T, pellets int) *Engine {
	t.Helper()
	e, err := New("", random.NewScripted(1))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	stick, err := material.NewStick(10)
	mustAdd(t, e, mustMaterial(t, stick, err), stick)
	band, err := material.NewBand(1)
	mustAdd(t, e, mustMaterial(t, band, err))
	adhesive, err := material.NewAdhesive(10)
	mustAdd(t, e, mustMaterial(t, adhesive, err))
	for range 7 {
		mustAdd(t, e, material.NewPlug())
	}
	if err := e.AddPellets(pellets); err != nil {
		t.Fatalf("add pellets: %v", err)
	}
	result, err := e.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !result.Success || e.DurabilityMax() != 100 {
		t.Fatalf("build = %+v, durabilityMax = %d", result, e.DurabilityMax())
	}
	return e
}

func TestNewDefaultsName(t *testing.T) {
	e, err := New("  ", random.NewScripted())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if e.Name() != DefaultName {
		t.Fatalf("Name() = %q, want %q", e.Name(), DefaultName)
	}
	if e.State() != StateBuilding {
		t.Fatalf("State() = %s, want building", e.State())
	}
	if _, err := New("x", nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestBuildLightEngine(t *testing.T) {
	e := newLightEngine(t, random.NewScripted(40))
	if got := e.SuccessProbability(); got != 65 {
		t.Fatalf("SuccessProbability() = %d, want 65", got)
	}

	result, err := e.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := BuildResult{
		Success:     true,
		Probability: 65,
		Roll:        40,
		Stats: Characteristics{
			Power:         155,
			Range:         45,
			Precision:     75,
			Stability:     7.5,
			Durability:    35,
			DurabilityMax: 35,
		},
	}
	if result != want {
		t.Fatalf("Build() = %+v, want %+v", result, want)
	}
	if e.State() != StateReady {
		t.Fatalf("State() = %s, want ready", e.State())
	}
}

func TestBuildFailedRollKeepsInventory(t *testing.T) {
	e := newLightEngine(t, random.NewScripted(66, 66))

	result, err := e.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Success || e.State() != StateBuilding {
		t.Fatalf("Build() = %+v in %s, want failure in building", result, e.State())
	}
	if got := e.Inventory(); got != (Inventory{Sticks: 2, Bands: 1, Pellets: 3, Adhesive: true}) {
		t.Fatalf("Inventory() = %+v", got)
	}
	if e.Durability() != 0 || e.DurabilityMax() != 0 {
		t.Fatalf("durability = %d/%d, want 0/0", e.Durability(), e.DurabilityMax())
	}

	mustAdd(t, e, material.NewPlug())
	result, err = e.Build()
	if err != nil {
		t.Fatalf("retry build: %v", err)
	}
	if !result.Success || result.Probability != 75 {
		t.Fatalf("retry Build() = %+v, want success at 75", result)
	}
	if e.DurabilityMax() != 45 {
		t.Fatalf("DurabilityMax() = %d, want 45", e.DurabilityMax())
	}
}

func TestBuildMissingRequirements(t *testing.T) {
	e, err := New("empty", random.NewScripted())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	stick, err := material.NewStick(20)
	mustAdd(t, e, mustMaterial(t, stick, err))

	_, err = e.Build()
	if !errors.Is(err, ErrMissingRequirements) {
		t.Fatalf("Build() error = %v, want missing requirements", err)
	}
	if apperrors.KindOf(err) != apperrors.KindResource {
		t.Fatalf("KindOf = %s, want resource", apperrors.KindOf(err))
	}
	want := []string{"1 stick", "band", "adhesive", "pellet"}
	if got := apperrors.GetDetails(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("details = %v, want %v", got, want)
	}
	if e.State() != StateBuilding {
		t.Fatalf("State() = %s, want building", e.State())
	}
}

func TestBuildRejectedWhenBuilt(t *testing.T) {
	e := newHeavyEngine(t, 1)
	if _, err := e.Build(); !apperrors.IsCode(err, apperrors.CodeEngineNotBuilding) {
		t.Fatalf("Build() error = %v, want not building", err)
	}
}

func TestSuccessProbabilityBounds(t *testing.T) {
	tests := []struct {
		plugs   int
		quality int
		want    int
	}{
		{0, 1, 53},
		{1, 5, 75},
		{3, 10, 95},
		{10, 10, 95},
	}
	for _, tc := range tests {
		e, err := New("", random.NewScripted())
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}
		adhesive, err := material.NewAdhesive(tc.quality)
		mustAdd(t, e, mustMaterial(t, adhesive, err))
		for range tc.plugs {
			mustAdd(t, e, material.NewPlug())
		}
		if got := e.SuccessProbability(); got != tc.want {
			t.Fatalf("SuccessProbability(plugs=%d, quality=%d) = %d, want %d", tc.plugs, tc.quality, got, tc.want)
		}
	}
}

func TestAddMaterialAfterBuild(t *testing.T) {
	e := newLightEngine(t, random.NewScripted(1))
	if _, err := e.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}

	stick, err := material.NewStick(15)
	stick = mustMaterial(t, stick, err)
	if err := e.AddMaterial(stick); !errors.Is(err, ErrNotBuilding) {
		t.Fatalf("AddMaterial(stick) error = %v, want ErrNotBuilding", err)
	}
	if apperrors.KindOf(ErrNotBuilding) != apperrors.KindState {
		t.Fatal("expected ErrNotBuilding to be a state error")
	}
	if err := e.AddMaterial(material.NewPellet()); err != nil {
		t.Fatalf("AddMaterial(pellet) after build: %v", err)
	}
	if got := e.Inventory(); got.Sticks != 2 || got.Pellets != 4 {
		t.Fatalf("Inventory() = %+v, want 2 sticks and 4 pellets", got)
	}
}

func TestAddMaterialReplacesAdhesive(t *testing.T) {
	e, err := New("", random.NewScripted())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	weak, err := material.NewAdhesive(2)
	mustAdd(t, e, mustMaterial(t, weak, err))
	strong, err := material.NewAdhesive(5)
	mustAdd(t, e, mustMaterial(t, strong, err))

	if got := e.SuccessProbability(); got != 65 {
		t.Fatalf("SuccessProbability() = %d, want 65", got)
	}
	if !e.Inventory().Adhesive {
		t.Fatal("expected adhesive in inventory")
	}
}

func TestAddPelletsRejectsNonPositiveCount(t *testing.T) {
	e, err := New("", random.NewScripted())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := e.AddPellets(0); !apperrors.IsCode(err, apperrors.CodeMaterialInvalidCount) {
		t.Fatalf("AddPellets(0) error = %v, want invalid count", err)
	}
	if err := e.AddMaterial(material.Material{}); !apperrors.IsCode(err, apperrors.CodeMaterialInvalidKind) {
		t.Fatalf("AddMaterial(zero) error = %v, want invalid kind", err)
	}
	if e.Pellets() != 0 {
		t.Fatalf("Pellets() = %d, want 0", e.Pellets())
	}
}

func TestCharacteristicsZeroWhileBuilding(t *testing.T) {
	e := newLightEngine(t, random.NewScripted())
	if got := e.Characteristics(); got != (Characteristics{}) {
		t.Fatalf("Characteristics() = %+v, want zero", got)
	}
	status := e.Status()
	if status.Built || status.Power != 0 || status.Precision != 0 || status.DurabilityPercent != 0 {
		t.Fatalf("Status() = %+v, want zero characteristics", status)
	}
}
