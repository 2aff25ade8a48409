// Package engine contains the siege engine aggregate: its material inventory,
// the construction and wear state machine, and shot resolution.
//
// State transitions:
//
//	Building --Build--> Ready --Fire--> Damaged --Repair--> Ready
//	Ready/Damaged --Fire--> Destroyed --Repair--> Ready
//
// Building and Destroyed block firing. Destroyed also blocks every material
// addition until a repair brings the engine back.
//
// An Engine is not safe for concurrent use. Hosts serving several sessions
// serialize calls per engine.
package engine
