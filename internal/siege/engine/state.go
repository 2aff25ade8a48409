package engine

// State is the lifecycle state of an engine.
type State int

const (
	StateUnspecified State = iota
	StateBuilding
	StateReady
	StateDamaged
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateDamaged:
		return "damaged"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unspecified"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Built reports whether construction has completed.
func (s State) Built() bool {
	return s == StateReady || s == StateDamaged || s == StateDestroyed
}

// CanFire reports whether shots are allowed in this state.
func (s State) CanFire() bool {
	return s == StateReady || s == StateDamaged
}
