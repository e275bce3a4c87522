package models

import "errors"

var (
	ErrUnauthorized        = errors.New("caller does not hold the required capability")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrParticipantNotFound = errors.New("participant has no stake in this campaign")
	ErrInvalidState        = errors.New("operation not valid for current campaign status")
	ErrCapacityExceeded    = errors.New("stake would exceed campaign hard cap")
	ErrAlreadyDone         = errors.New("operation already performed")
	ErrEnginePaused        = errors.New("engine is paused")
	ErrValidation          = errors.New("invalid campaign parameters")
	ErrProtectedToken      = errors.New("cannot recover the primary staking token")
	ErrReentrantCall       = errors.New("campaign operation already in progress")
)

// Capability is a named permission required to invoke an entry point.
// Capabilities are ordered: Owner implies Admin which implies Operator.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityOperator
	CapabilityAdmin
	CapabilityOwner
)

func (c Capability) String() string {
	switch c {
	case CapabilityOwner:
		return "owner"
	case CapabilityAdmin:
		return "admin"
	case CapabilityOperator:
		return "operator"
	default:
		return "none"
	}
}

// ParseCapability maps a role name to its capability. Unknown names map to
// CapabilityNone.
func ParseCapability(s string) Capability {
	switch s {
	case "owner":
		return CapabilityOwner
	case "admin":
		return CapabilityAdmin
	case "operator":
		return CapabilityOperator
	default:
		return CapabilityNone
	}
}
