// Package material defines the immutable building blocks of a siege engine.
//
// Every material is a single tagged value: Kind selects which kind-specific
// parameter is meaningful and how the derived contribution was computed.
// Derived values are fixed at construction.
package material

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
)

// Kind identifies a material variant.
type Kind int

const (
	KindUnspecified Kind = iota
	KindStick
	KindBand
	KindPlug
	KindPellet
	KindAdhesive
)

func (k Kind) String() string {
	switch k {
	case KindStick:
		return "stick"
	case KindBand:
		return "band"
	case KindPlug:
		return "plug"
	case KindPellet:
		return "pellet"
	case KindAdhesive:
		return "adhesive"
	default:
		return "unspecified"
	}
}

// ParseKind resolves a material name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stick":
		return KindStick, nil
	case "band":
		return KindBand, nil
	case "plug":
		return KindPlug, nil
	case "pellet":
		return KindPellet, nil
	case "adhesive":
		return KindAdhesive, nil
	default:
		return KindUnspecified, apperrors.WithMetadata(
			apperrors.CodeMaterialInvalidKind,
			fmt.Sprintf("unknown material kind %q", name),
			map[string]string{"Kind": name},
		)
	}
}

// Parameter bounds.
const (
	StickLengthMin   = 10
	StickLengthMax   = 50
	ElasticityMin    = 1
	ElasticityMax    = 10
	AdhesiveQualMin  = 1
	AdhesiveQualMax  = 10
	stickResistance  = 10
	bandResistance   = 5
	plugResistance   = 8
	pelletResistance = 2
	plugStability    = 3
	pelletDamage     = 5
)

var (
	// ErrInvalidLength indicates a stick length outside [10,50].
	ErrInvalidLength = apperrors.New(apperrors.CodeMaterialInvalidLength, "stick length out of range")
	// ErrInvalidElasticity indicates a band elasticity outside [1,10].
	ErrInvalidElasticity = apperrors.New(apperrors.CodeMaterialInvalidElasticity, "band elasticity out of range")
	// ErrInvalidQuality indicates an adhesive quality outside [1,10].
	ErrInvalidQuality = apperrors.New(apperrors.CodeMaterialInvalidQuality, "adhesive quality out of range")
)

// Material is one immutable component.
type Material struct {
	kind         Kind
	resistance   int
	weight       float64
	parameter    int
	contribution float64
}

// NewStick creates a structural stick; contributes power = 2·length.
func NewStick(length int) (Material, error) {
	if err := checkRange(apperrors.CodeMaterialInvalidLength, "stick length", length, StickLengthMin, StickLengthMax); err != nil {
		return Material{}, err
	}
	return Material{
		kind:         KindStick,
		resistance:   stickResistance,
		weight:       5,
		parameter:    length,
		contribution: float64(2 * length),
	}, nil
}

// NewBand creates an elastic band; contributes thrust = 5·elasticity.
func NewBand(elasticity int) (Material, error) {
	if err := checkRange(apperrors.CodeMaterialInvalidElasticity, "band elasticity", elasticity, ElasticityMin, ElasticityMax); err != nil {
		return Material{}, err
	}
	return Material{
		kind:         KindBand,
		resistance:   bandResistance,
		weight:       1,
		parameter:    elasticity,
		contribution: float64(5 * elasticity),
	}, nil
}

// NewPlug creates a joint reinforcement; contributes stability 3.
func NewPlug() Material {
	return Material{
		kind:         KindPlug,
		resistance:   plugResistance,
		weight:       2,
		contribution: plugStability,
	}
}

// NewPellet creates one unit of ammunition; contributes damage 5.
func NewPellet() Material {
	return Material{
		kind:         KindPellet,
		resistance:   pelletResistance,
		weight:       1,
		contribution: pelletDamage,
	}
}

// NewAdhesive creates the binding agent; resistance 2·quality, bonding 1.5·quality.
func NewAdhesive(quality int) (Material, error) {
	if err := checkRange(apperrors.CodeMaterialInvalidQuality, "adhesive quality", quality, AdhesiveQualMin, AdhesiveQualMax); err != nil {
		return Material{}, err
	}
	return Material{
		kind:         KindAdhesive,
		resistance:   2 * quality,
		weight:       0.5,
		parameter:    quality,
		contribution: 1.5 * float64(quality),
	}, nil
}

// New builds a material of the given kind. parameter is ignored for kinds
// that take none.
func New(kind Kind, parameter int) (Material, error) {
	switch kind {
	case KindStick:
		return NewStick(parameter)
	case KindBand:
		return NewBand(parameter)
	case KindPlug:
		return NewPlug(), nil
	case KindPellet:
		return NewPellet(), nil
	case KindAdhesive:
		return NewAdhesive(parameter)
	default:
		return Material{}, apperrors.WithMetadata(
			apperrors.CodeMaterialInvalidKind,
			fmt.Sprintf("unknown material kind %d", int(kind)),
			map[string]string{"Kind": kind.String()},
		)
	}
}

// Kind returns the variant discriminant.
func (m Material) Kind() Kind { return m.kind }

// Resistance returns the structural resistance contributed to durability.
func (m Material) Resistance() int { return m.resistance }

// Weight returns the material weight.
func (m Material) Weight() float64 { return m.weight }

// Parameter returns the kind-specific parameter: stick length, band
// elasticity or adhesive quality. Zero for plugs and pellets.
func (m Material) Parameter() int { return m.parameter }

// Contribution returns the derived combat value: power for sticks, thrust for
// bands, stability for plugs, damage for pellets, bonding for adhesive.
func (m Material) Contribution() float64 { return m.contribution }

// Damage returns the projectile damage of a pellet, zero otherwise.
func (m Material) Damage() int {
	if m.kind != KindPellet {
		return 0
	}
	return int(m.contribution)
}

func (m Material) String() string {
	switch m.kind {
	case KindStick:
		return fmt.Sprintf("stick (resistance %d, weight %g, length %dcm)", m.resistance, m.weight, m.parameter)
	case KindBand:
		return fmt.Sprintf("band (resistance %d, weight %g, elasticity %d)", m.resistance, m.weight, m.parameter)
	case KindAdhesive:
		return fmt.Sprintf("adhesive (resistance %d, weight %g, quality %d)", m.resistance, m.weight, m.parameter)
	default:
		return fmt.Sprintf("%s (resistance %d, weight %g)", m.kind, m.resistance, m.weight)
	}
}

func checkRange(code apperrors.Code, field string, value, lo, hi int) error {
	if value >= lo && value <= hi {
		return nil
	}
	return apperrors.WithMetadata(
		code,
		fmt.Sprintf("%s must be between %d and %d, got %d", field, lo, hi, value),
		map[string]string{
			"Min":   strconv.Itoa(lo),
			"Max":   strconv.Itoa(hi),
			"Value": strconv.Itoa(value),
		},
	)
}
