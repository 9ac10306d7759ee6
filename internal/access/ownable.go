// Package access holds the owner and agent state every component guards its
// privileged operations with.
//
// Ownership moves in two steps: the owner names a candidate, and the candidate
// takes over only by accepting. An Ownable created WithImmediateFirstHandover
// lets the deployer hand the component over once without the accept step; every
// later transfer is two-step.
package access

import (
	"context"
	"log/slog"
	"sync"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
)

// Ownable is the {owner, pendingOwner} state of one component.
type Ownable struct {
	mu        sync.RWMutex
	component domain.Address
	owner     domain.Address
	pending   domain.Address
	immediate bool

	logger  *slog.Logger
	emitter audit.Emitter
}

// Option configures an Ownable or an AgentRole.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	emitter   audit.Emitter
	immediate bool
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(o *options) {
		o.emitter = emitter
	}
}

// WithImmediateFirstHandover makes the first TransferOwnership complete
// without an accept.
func WithImmediateFirstHandover() Option {
	return func(o *options) {
		o.immediate = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewOwnable creates the ownership state for component with owner as the
// initial owner.
func NewOwnable(component, owner domain.Address, opts ...Option) (*Ownable, error) {
	if err := domain.RequireNonZero(owner, "owner"); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Ownable{
		component: component,
		owner:     owner,
		immediate: o.immediate,
		logger:    o.logger,
		emitter:   o.emitter,
	}, nil
}

// Component is the address of the guarded component.
func (o *Ownable) Component() domain.Address {
	return o.component
}

func (o *Ownable) Owner() domain.Address {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.owner
}

// PendingOwner returns the zero address when no transfer is in flight.
func (o *Ownable) PendingOwner() domain.Address {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.pending
}

func (o *Ownable) IsOwner(addr domain.Address) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return addr == o.owner
}

// RequireOwner returns not_owner unless caller is the current owner.
func (o *Ownable) RequireOwner(caller domain.Address) error {
	if !o.IsOwner(caller) {
		return dErrors.New(dErrors.CodeNotOwner, "caller is not the owner")
	}
	return nil
}

// TransferOwnership names candidate as pending owner. The current owner is
// unchanged until the candidate accepts, except for the one immediate handover
// when enabled.
func (o *Ownable) TransferOwnership(ctx context.Context, caller, candidate domain.Address) error {
	if err := domain.RequireNonZero(candidate, "new owner"); err != nil {
		return err
	}

	o.mu.Lock()
	if caller != o.owner {
		o.mu.Unlock()
		return dErrors.New(dErrors.CodeNotOwner, "caller is not the owner")
	}
	previous := o.owner
	if o.immediate {
		o.immediate = false
		o.owner = candidate
		o.pending = domain.ZeroAddress
		o.mu.Unlock()
		o.logAudit(ctx, audit.EventOwnershipTransferred, caller, previous, candidate)
		return nil
	}
	o.pending = candidate
	o.mu.Unlock()

	o.logAudit(ctx, audit.EventOwnershipTransferStarted, caller, previous, candidate)
	return nil
}

// AcceptOwnership completes a pending transfer. Only the pending owner may
// call it.
func (o *Ownable) AcceptOwnership(ctx context.Context, caller domain.Address) error {
	o.mu.Lock()
	if o.pending == domain.ZeroAddress || caller != o.pending {
		o.mu.Unlock()
		return dErrors.New(dErrors.CodeNotPendingOwner, "caller is not the pending owner")
	}
	previous := o.owner
	o.owner = o.pending
	o.pending = domain.ZeroAddress
	o.immediate = false
	o.mu.Unlock()

	o.logAudit(ctx, audit.EventOwnershipTransferred, caller, previous, caller)
	return nil
}

// CancelOwnershipTransfer clears the pending candidate.
func (o *Ownable) CancelOwnershipTransfer(ctx context.Context, caller domain.Address) error {
	o.mu.Lock()
	if caller != o.owner {
		o.mu.Unlock()
		return dErrors.New(dErrors.CodeNotOwner, "caller is not the owner")
	}
	if o.pending == domain.ZeroAddress {
		o.mu.Unlock()
		return dErrors.New(dErrors.CodeInvalidState, "no ownership transfer in progress")
	}
	o.pending = domain.ZeroAddress
	owner := o.owner
	o.mu.Unlock()

	o.logAudit(ctx, audit.EventOwnershipTransferStarted, caller, owner, domain.ZeroAddress)
	return nil
}

func (o *Ownable) logAudit(ctx context.Context, event audit.AuditEvent, actor, previous, next domain.Address) {
	audit.Log(ctx, o.logger, o.emitter, audit.Event{
		Action:       string(event),
		Source:       o.component,
		Actor:        actor,
		Subject:      previous,
		Counterparty: next,
	})
}
