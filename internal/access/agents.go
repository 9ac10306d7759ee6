package access

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"sync"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
)

// AgentRole is the owner-managed set of privileged operators. The owner is
// implicitly privileged and never needs to be in the set.
type AgentRole struct {
	*Ownable

	mu      sync.RWMutex
	agents  map[domain.Address]struct{}
	logger  *slog.Logger
	emitter audit.Emitter
}

// NewAgentRole creates ownership plus an empty agent set for component.
func NewAgentRole(component, owner domain.Address, opts ...Option) (*AgentRole, error) {
	ownable, err := NewOwnable(component, owner, opts...)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &AgentRole{
		Ownable: ownable,
		agents:  make(map[domain.Address]struct{}),
		logger:  o.logger,
		emitter: o.emitter,
	}, nil
}

// AddAgent grants the agent role. Owner only.
func (r *AgentRole) AddAgent(ctx context.Context, caller, agent domain.Address) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(agent, "agent"); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.agents[agent]; ok {
		r.mu.Unlock()
		return dErrors.New(dErrors.CodeAccountAlreadyHasRole, "account already has role")
	}
	r.agents[agent] = struct{}{}
	r.mu.Unlock()

	r.logAudit(ctx, audit.EventAgentAdded, caller, agent)
	return nil
}

// RemoveAgent revokes the agent role. Owner only.
func (r *AgentRole) RemoveAgent(ctx context.Context, caller, agent domain.Address) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(agent, "agent"); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.agents[agent]; !ok {
		r.mu.Unlock()
		return dErrors.New(dErrors.CodeAccountDoesNotHaveRole, "account does not have role")
	}
	delete(r.agents, agent)
	r.mu.Unlock()

	r.logAudit(ctx, audit.EventAgentRemoved, caller, agent)
	return nil
}

// IsAgent reports explicit membership; it is false for the owner unless the
// owner was also added.
func (r *AgentRole) IsAgent(addr domain.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.agents[addr]
	return ok
}

// Agents returns the agent set in address order.
func (r *AgentRole) Agents() []domain.Address {
	r.mu.RLock()
	out := make([]domain.Address, 0, len(r.agents))
	for a := range r.agents {
		out = append(out, a)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

// RequireAgent passes for agents and for the owner.
func (r *AgentRole) RequireAgent(caller domain.Address) error {
	if r.IsOwner(caller) || r.IsAgent(caller) {
		return nil
	}
	return dErrors.New(dErrors.CodeNotAgent, "caller is not an agent")
}

func (r *AgentRole) logAudit(ctx context.Context, event audit.AuditEvent, actor, agent domain.Address) {
	audit.Log(ctx, r.logger, r.emitter, audit.Event{
		Action:  string(event),
		Source:  r.Component(),
		Actor:   actor,
		Subject: agent,
	})
}
