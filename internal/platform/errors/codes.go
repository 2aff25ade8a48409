// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Material errors
	CodeMaterialInvalidKind       Code = "MATERIAL_INVALID_KIND"
	CodeMaterialInvalidLength     Code = "MATERIAL_INVALID_LENGTH"
	CodeMaterialInvalidElasticity Code = "MATERIAL_INVALID_ELASTICITY"
	CodeMaterialInvalidQuality    Code = "MATERIAL_INVALID_QUALITY"
	CodeMaterialInvalidCount      Code = "MATERIAL_INVALID_COUNT"

	// Engine validation errors
	CodeEngineUnknownUpgrade   Code = "ENGINE_UNKNOWN_UPGRADE"
	CodeEngineTargetEliminated Code = "ENGINE_TARGET_ELIMINATED"
	CodeEngineTargetMissing    Code = "ENGINE_TARGET_MISSING"

	// Engine state errors
	CodeEngineNotBuilding Code = "ENGINE_NOT_BUILDING"
	CodeEngineNotBuilt    Code = "ENGINE_NOT_BUILT"
	CodeEngineDestroyed   Code = "ENGINE_DESTROYED"

	// Engine resource errors
	CodeEngineMissingRequirements Code = "ENGINE_MISSING_REQUIREMENTS"
	CodeEngineNoAmmunition        Code = "ENGINE_NO_AMMUNITION"
	CodeEngineInsufficientPellets Code = "ENGINE_INSUFFICIENT_PELLETS"

	// Wave errors
	CodeWaveInvalidLevel Code = "WAVE_INVALID_LEVEL"

	// Session errors
	CodeSessionNotFound       Code = "SESSION_NOT_FOUND"
	CodeSessionEngineMissing  Code = "SESSION_ENGINE_MISSING"
	CodeSessionEnemyNotFound  Code = "SESSION_ENEMY_NOT_FOUND"
	CodeSessionInvalidRequest Code = "SESSION_INVALID_REQUEST"
)

// Kind groups codes into the three recoverable failure families plus lookups.
type Kind string

const (
	KindUnknown    Kind = "unknown"
	KindValidation Kind = "validation"
	KindState      Kind = "state"
	KindResource   Kind = "resource"
	KindNotFound   Kind = "not_found"
)

// Kind reports which error family the code belongs to.
func (c Code) Kind() Kind {
	switch c {
	case CodeMaterialInvalidKind,
		CodeMaterialInvalidLength,
		CodeMaterialInvalidElasticity,
		CodeMaterialInvalidQuality,
		CodeMaterialInvalidCount,
		CodeEngineUnknownUpgrade,
		CodeEngineTargetEliminated,
		CodeEngineTargetMissing,
		CodeWaveInvalidLevel,
		CodeSessionInvalidRequest:
		return KindValidation

	case CodeEngineNotBuilding,
		CodeEngineNotBuilt,
		CodeEngineDestroyed,
		CodeSessionEngineMissing:
		return KindState

	case CodeEngineMissingRequirements,
		CodeEngineNoAmmunition,
		CodeEngineInsufficientPellets:
		return KindResource

	case CodeSessionNotFound,
		CodeSessionEnemyNotFound:
		return KindNotFound

	default:
		return KindUnknown
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c.Kind() {
	// InvalidArgument - validation failures, bad input
	case KindValidation:
		return codes.InvalidArgument
	// FailedPrecondition - state or inventory doesn't allow operation
	case KindState, KindResource:
		return codes.FailedPrecondition
	case KindNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}
