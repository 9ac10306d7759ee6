package compliance

import (
	"bytes"
	"context"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

type savedState struct {
	seq  uint64
	data []byte
}

// RestoreModules re-attaches every saved module that is not in the chain, in
// saved order. rebuild turns a record back into an unbound module. Owner
// only.
func (mc *ModularCompliance) RestoreModules(ctx context.Context, caller domain.Address, rebuild func(ModuleRecord) (Module, error)) error {
	if err := mc.RequireOwner(caller); err != nil {
		return err
	}
	if mc.state == nil {
		return nil
	}
	records, err := mc.state.Load(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "load module state")
	}
	for _, r := range records {
		if mc.IsModuleBound(r.Name) {
			continue
		}
		m, err := rebuild(r)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "rebuild module "+r.Name)
		}
		if err := mc.AddModule(ctx, caller, m); err != nil {
			return err
		}
	}
	return nil
}

// prepare brings a module that is joining the chain up to date: saved state
// first, then holdings. The result is saved. Callers hold writeMu.
func (mc *ModularCompliance) prepare(ctx context.Context, m Module) error {
	s, stateful := m.(Stateful)
	var seq uint64
	if stateful && mc.state != nil {
		records, err := mc.state.Load(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "load module state")
		}
		seq = 1
		for _, r := range records {
			if r.Name == m.Name() && r.Kind == m.Kind() {
				if err := s.UnmarshalState(r.State); err != nil {
					return dErrors.Wrap(err, dErrors.CodeInternal, "restore module "+r.Name)
				}
				seq = r.Seq
				break
			}
			seq = max(seq, r.Seq+1)
		}
	}
	if err := mc.restoreHoldings(ctx, mc.BoundToken(), m); err != nil {
		return err
	}
	if !stateful || mc.state == nil {
		return nil
	}
	mc.saveMu.Lock()
	defer mc.saveMu.Unlock()
	return mc.save(ctx, m, s, seq)
}

// interact runs fn and saves the result. Callers hold writeMu.
func (mc *ModularCompliance) interact(ctx context.Context, m Module, fn func(Module) error) error {
	s, ok := m.(Stateful)
	if !ok || mc.state == nil {
		return fn(m)
	}
	mc.saveMu.Lock()
	defer mc.saveMu.Unlock()
	before, err := s.MarshalState()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode module state")
	}
	if err := fn(m); err != nil {
		return err
	}
	if err := mc.save(ctx, m, s, mc.saved[m.Name()].seq); err != nil {
		if rerr := s.UnmarshalState(before); rerr != nil {
			mc.logError(ctx, "roll back module state failed", "module", m.Name(), "error", rerr)
		}
		return err
	}
	return nil
}

// forget deletes the saved state of name. Callers hold writeMu.
func (mc *ModularCompliance) forget(ctx context.Context, name string) error {
	if mc.state == nil {
		return nil
	}
	mc.saveMu.Lock()
	defer mc.saveMu.Unlock()
	if err := mc.state.Delete(ctx, name); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete module state")
	}
	delete(mc.saved, name)
	return nil
}

// persist saves every stateful module the hooks changed. The movement has
// settled by now, so failures are logged and not returned.
func (mc *ModularCompliance) persist(ctx context.Context, modules chain) {
	if mc.state == nil {
		return
	}
	mc.saveMu.Lock()
	defer mc.saveMu.Unlock()
	for _, m := range modules {
		s, ok := m.(Stateful)
		if !ok {
			continue
		}
		if err := mc.save(ctx, m, s, mc.saved[m.Name()].seq); err != nil {
			mc.logError(ctx, "save module state failed", "module", m.Name(), "error", err)
		}
	}
}

// save writes the state of m unless it matches what was saved last. Callers
// hold saveMu.
func (mc *ModularCompliance) save(ctx context.Context, m Module, s Stateful, seq uint64) error {
	data, err := s.MarshalState()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode module state")
	}
	if last, ok := mc.saved[m.Name()]; ok && last.seq == seq && bytes.Equal(last.data, data) {
		return nil
	}
	if err := mc.state.Save(ctx, ModuleRecord{Name: m.Name(), Kind: m.Kind(), Seq: seq, State: data}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save module state")
	}
	mc.saved[m.Name()] = savedState{seq: seq, data: data}
	return nil
}

// restoreHoldings rebuilds every holdings tracker among modules from token.
// Nothing happens without a token.
func (mc *ModularCompliance) restoreHoldings(ctx context.Context, token Token, modules ...Module) error {
	if token == nil {
		return nil
	}
	var trackers []HoldingsTracker
	for _, m := range modules {
		if t, ok := m.(HoldingsTracker); ok {
			trackers = append(trackers, t)
		}
	}
	if len(trackers) == 0 {
		return nil
	}
	holdings, err := token.Holdings(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "load holdings")
	}
	for _, t := range trackers {
		t.RestoreHoldings(holdings)
	}
	return nil
}

func (mc *ModularCompliance) logError(ctx context.Context, msg string, args ...any) {
	if mc.logger != nil {
		mc.logger.ErrorContext(ctx, msg, append(args, "compliance", mc.Address().Hex())...)
	}
}
