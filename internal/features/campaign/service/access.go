package service

import (
	"context"
	"fmt"

	"stakeburn-backend/internal/features/campaign/models"
)

// capabilityOf resolves the capability a wallet holds. Callers hold e.mu.
func (e *campaignEngine) capabilityOf(wallet string) models.Capability {
	if wallet == e.owner {
		return models.CapabilityOwner
	}
	return e.roles[wallet]
}

// requireCapability is the single authorization choke point: every gated
// entry point asserts its minimum here, so the policy lives in one place.
func (e *campaignEngine) requireCapability(caller string, minimum models.Capability) error {
	if e.capabilityOf(caller) < minimum {
		return fmt.Errorf("%w: %s requires at least %s", models.ErrUnauthorized, caller, minimum)
	}
	return nil
}

// requireRunning rejects mutating calls while the global circuit breaker
// is engaged. Emergency and role-management entry points skip this check.
func (e *campaignEngine) requireRunning() error {
	if e.paused {
		return models.ErrEnginePaused
	}
	return nil
}

func (e *campaignEngine) GrantRole(ctx context.Context, caller string, wallet string, capability models.Capability) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityAdmin); err != nil {
		return err
	}
	if capability != models.CapabilityAdmin && capability != models.CapabilityOperator {
		return fmt.Errorf("%w: only admin and operator roles can be granted", models.ErrValidation)
	}
	if wallet == "" {
		return fmt.Errorf("%w: wallet must not be empty", models.ErrValidation)
	}
	if wallet == e.owner {
		return fmt.Errorf("%w: owner role is fixed at deployment", models.ErrValidation)
	}
	if e.roles[wallet] == capability {
		return nil
	}
	e.roles[wallet] = capability

	e.emit(ctx, models.NewEvent(models.EventRoleGranted, 0, e.now()).
		With("wallet", wallet).
		With("role", capability.String()).
		With("granted_by", caller))
	return nil
}

func (e *campaignEngine) RevokeRole(ctx context.Context, caller string, wallet string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireCapability(caller, models.CapabilityAdmin); err != nil {
		return err
	}
	if wallet == e.owner {
		return fmt.Errorf("%w: the owner cannot be revoked", models.ErrValidation)
	}
	role, ok := e.roles[wallet]
	if !ok {
		return nil
	}
	delete(e.roles, wallet)

	e.emit(ctx, models.NewEvent(models.EventRoleRevoked, 0, e.now()).
		With("wallet", wallet).
		With("role", role.String()).
		With("revoked_by", caller))
	return nil
}

func (e *campaignEngine) RoleOf(wallet string) models.Capability {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capabilityOf(wallet)
}
