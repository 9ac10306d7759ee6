package token

import (
	"context"
	"strconv"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/requestcontext"
)

// ForcedTransfer moves amount from from to to, bypassing pause, freezes and
// the compliance check. Frozen tokens are unfrozen to cover any shortfall.
// The recipient must still be verified. Agent only.
func (t *Token) ForcedTransfer(ctx context.Context, caller, from, to domain.Address, amount uint64) (err error) {
	ctx, done := t.begin(ctx, "forced_transfer", transferAttrs(from, to, amount)...)
	defer done(&err)

	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(from, "sender"); err != nil {
		return err
	}
	if err := domain.RequireNonZero(to, "recipient"); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	shortfall, err := t.shortfall(ctx, from, amount)
	if err != nil {
		return err
	}
	if err := requireVerified(ctx, t.IdentityRegistry(), to); err != nil {
		return err
	}
	tr, err := t.resolve(ctx, from, to, amount)
	if err != nil {
		return err
	}

	u, err := t.movement(ctx, from, to, amount)
	if err != nil {
		return err
	}
	t.release(&u, from, shortfall)
	if err := t.commit(ctx, u); err != nil {
		return err
	}
	t.logReleased(ctx, caller, from, shortfall)
	t.notify(ctx, t.Compliance().Transferred(ctx, t.Address(), tr))

	t.logAudit(ctx, audit.Event{Action: string(audit.EventTransfer), Actor: caller, Subject: from, Counterparty: to, Amount: amount})
	return nil
}

// Mint creates amount on to. The recipient must be verified; the compliance
// check is skipped but modules observe the mint. Agent only.
func (t *Token) Mint(ctx context.Context, caller, to domain.Address, amount uint64) (err error) {
	ctx, done := t.begin(ctx, "mint", transferAttrs(domain.ZeroAddress, to, amount)...)
	defer done(&err)

	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(to, "recipient"); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := requireVerified(ctx, t.IdentityRegistry(), to); err != nil {
		return err
	}
	recipient, err := t.Investor(ctx, to)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "resolve recipient")
	}
	u, err := t.movement(ctx, domain.ZeroAddress, to, amount)
	if err != nil {
		return err
	}
	if err := t.commit(ctx, u); err != nil {
		return err
	}
	t.notify(ctx, t.Compliance().Created(ctx, t.Address(), recipient, amount, requestcontext.Now(ctx)))

	t.logAudit(ctx, audit.Event{Action: string(audit.EventTransfer), Actor: caller, Counterparty: to, Amount: amount})
	return nil
}

// Burn destroys amount held by from, unfreezing frozen tokens to cover any
// shortfall. Agent only.
func (t *Token) Burn(ctx context.Context, caller, from domain.Address, amount uint64) (err error) {
	ctx, done := t.begin(ctx, "burn", transferAttrs(from, domain.ZeroAddress, amount)...)
	defer done(&err)

	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(from, "holder"); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	shortfall, err := t.shortfall(ctx, from, amount)
	if err != nil {
		return err
	}
	holder, err := t.Investor(ctx, from)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "resolve holder")
	}
	u, err := t.movement(ctx, from, domain.ZeroAddress, amount)
	if err != nil {
		return err
	}
	t.release(&u, from, shortfall)
	if err := t.commit(ctx, u); err != nil {
		return err
	}
	t.logReleased(ctx, caller, from, shortfall)
	t.notify(ctx, t.Compliance().Destroyed(ctx, t.Address(), holder, amount, requestcontext.Now(ctx)))

	t.logAudit(ctx, audit.Event{Action: string(audit.EventTransfer), Actor: caller, Subject: from, Amount: amount})
	return nil
}

// shortfall checks that holder owns amount and returns how much of it is
// frozen and must be released first.
func (t *Token) shortfall(ctx context.Context, holder domain.Address, amount uint64) (uint64, error) {
	balance, err := t.BalanceOf(ctx, holder)
	if err != nil {
		return 0, err
	}
	if amount > balance {
		return 0, dErrors.Newf(dErrors.CodeInsufficientBalance, "balance %d is below %d", balance, amount)
	}
	free := freeBalance(balance, t.FrozenTokens(holder))
	if amount <= free {
		return 0, nil
	}
	return amount - free, nil
}

// release adds the unfreezing of amount of holder's frozen tokens to u.
func (t *Token) release(u *Update, holder domain.Address, amount uint64) {
	if amount == 0 {
		return
	}
	f := t.freezeOf(holder)
	f.Tokens -= min(amount, f.Tokens)
	u.Freezes = map[domain.Address]Freeze{holder: f}
}

func (t *Token) logReleased(ctx context.Context, caller, holder domain.Address, amount uint64) {
	if amount > 0 {
		t.logAudit(ctx, audit.Event{Action: string(audit.EventTokensUnfrozen), Actor: caller, Subject: holder, Amount: amount})
	}
}

// notify logs a hook that could not be delivered. Settlement has happened
// and is not undone.
func (t *Token) notify(ctx context.Context, err error) {
	if err != nil && t.logger != nil {
		t.logger.ErrorContext(ctx, "compliance notification failed", "token", t.Address().Hex(), "error", err)
	}
}

// SetAddressFrozen freezes or unfreezes every movement of holder except
// forced ones. Agent only.
func (t *Token) SetAddressFrozen(ctx context.Context, caller, holder domain.Address, freeze bool) error {
	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(holder, "holder"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	f := t.freezeOf(holder)
	f.Address = freeze
	if err := t.commit(ctx, Update{Freezes: map[domain.Address]Freeze{holder: f}}); err != nil {
		return err
	}

	t.logAudit(ctx, audit.Event{
		Action:  string(audit.EventAddressFrozen),
		Actor:   caller,
		Subject: holder,
		Detail:  strconv.FormatBool(freeze),
	})
	return nil
}

// FreezePartialTokens locks amount of holder's free balance. Agent only.
func (t *Token) FreezePartialTokens(ctx context.Context, caller, holder domain.Address, amount uint64) error {
	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	balance, err := t.BalanceOf(ctx, holder)
	if err != nil {
		return err
	}
	f := t.freezeOf(holder)
	if free := freeBalance(balance, f.Tokens); amount > free {
		return dErrors.Newf(dErrors.CodeInsufficientBalance, "free balance %d is below %d", free, amount)
	}
	f.Tokens += amount
	if err := t.commit(ctx, Update{Freezes: map[domain.Address]Freeze{holder: f}}); err != nil {
		return err
	}

	t.logAudit(ctx, audit.Event{Action: string(audit.EventTokensFrozen), Actor: caller, Subject: holder, Amount: amount})
	return nil
}

// UnfreezePartialTokens releases amount of holder's frozen tokens. Agent only.
func (t *Token) UnfreezePartialTokens(ctx context.Context, caller, holder domain.Address, amount uint64) error {
	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if locked := t.FrozenTokens(holder); amount > locked {
		return dErrors.Newf(dErrors.CodeInsufficientBalance, "frozen tokens %d are below %d", locked, amount)
	}
	var u Update
	t.release(&u, holder, amount)
	if err := t.commit(ctx, u); err != nil {
		return err
	}
	t.logReleased(ctx, caller, holder, amount)
	return nil
}

// Pause stops ordinary transfers. Agent only.
func (t *Token) Pause(ctx context.Context, caller domain.Address) error {
	return t.setPaused(ctx, caller, true)
}

// Unpause resumes ordinary transfers. Agent only.
func (t *Token) Unpause(ctx context.Context, caller domain.Address) error {
	return t.setPaused(ctx, caller, false)
}

func (t *Token) setPaused(ctx context.Context, caller domain.Address, paused bool) error {
	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stateMu.Lock()
	if t.paused == paused {
		t.stateMu.Unlock()
		if paused {
			return dErrors.New(dErrors.CodeInvalidState, "token is already paused")
		}
		return dErrors.New(dErrors.CodeInvalidState, "token is not paused")
	}
	t.paused = paused
	t.stateMu.Unlock()

	event := audit.EventUnpaused
	if paused {
		event = audit.EventPaused
	}
	t.logAudit(ctx, audit.Event{Action: string(event), Actor: caller})
	return nil
}

// RecoveryAddress moves everything held by a lost wallet to a new wallet of
// the same identity: balance, frozen tokens and the frozen flag. The new
// wallet is registered and the lost one deleted from the identity registry,
// so the token must be an agent there. Agent only.
func (t *Token) RecoveryAddress(ctx context.Context, caller, lost, replacement, identity domain.Address) (err error) {
	ctx, done := t.begin(ctx, "recovery", transferAttrs(lost, replacement, 0)...)
	defer done(&err)

	if err := t.RequireAgent(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(replacement, "new wallet"); err != nil {
		return err
	}
	if lost == replacement {
		return dErrors.New(dErrors.CodeInvalidInput, "new wallet must differ from the lost wallet")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	registry := t.IdentityRegistry()
	balance, err := t.BalanceOf(ctx, lost)
	if err != nil {
		return err
	}
	if balance == 0 {
		return dErrors.New(dErrors.CodeInsufficientBalance, "no tokens to recover")
	}
	lostIdentity, err := registry.Identity(ctx, lost)
	if err != nil {
		return err
	}
	if lostIdentity != identity {
		return dErrors.New(dErrors.CodeInvalidInput, "lost wallet does not belong to the identity")
	}
	country, err := registry.InvestorCountry(ctx, lost)
	if err != nil {
		return err
	}

	registered, err := t.ensureRegistered(ctx, registry, replacement, identity, country)
	if err != nil {
		return err
	}
	var (
		locked    uint64
		wasFrozen bool
	)
	u, err := t.movement(ctx, lost, replacement, balance)
	if err == nil {
		lostFreeze := t.freezeOf(lost)
		locked, wasFrozen = lostFreeze.Tokens, lostFreeze.Address
		if !lostFreeze.IsZero() {
			moved := t.freezeOf(replacement)
			moved.Tokens += locked
			moved.Address = moved.Address || wasFrozen
			u.Freezes = map[domain.Address]Freeze{lost: {}, replacement: moved}
		}
		err = t.commit(ctx, u)
	}
	if err != nil {
		if registered {
			t.notify(ctx, registry.DeleteIdentity(ctx, t.Address(), replacement))
		}
		return err
	}

	if err := registry.DeleteIdentity(ctx, t.Address(), lost); err != nil {
		t.notify(ctx, err)
	}

	t.logAudit(ctx, audit.Event{Action: string(audit.EventTransfer), Actor: caller, Subject: lost, Counterparty: replacement, Amount: balance})
	if locked > 0 {
		t.logAudit(ctx, audit.Event{Action: string(audit.EventTokensFrozen), Actor: caller, Subject: replacement, Amount: locked})
	}
	if wasFrozen {
		t.logAudit(ctx, audit.Event{Action: string(audit.EventAddressFrozen), Actor: caller, Subject: replacement, Detail: "true"})
	}
	t.logAudit(ctx, audit.Event{
		Action:       string(audit.EventRecoverySuccess),
		Actor:        caller,
		Subject:      lost,
		Counterparty: replacement,
		Detail:       identity.Hex(),
	})
	return nil
}

// ensureRegistered registers wallet under identity unless it already is.
// It reports whether it registered the wallet.
func (t *Token) ensureRegistered(ctx context.Context, registry IdentityRegistry, wallet, identity domain.Address, country domain.Country) (bool, error) {
	exists, err := registry.Contains(ctx, wallet)
	if err != nil {
		return false, err
	}
	if !exists {
		if err := registry.RegisterIdentity(ctx, t.Address(), wallet, identity, country); err != nil {
			return false, err
		}
		return true, nil
	}
	current, err := registry.Identity(ctx, wallet)
	if err != nil {
		return false, err
	}
	if current != identity {
		return false, dErrors.New(dErrors.CodeAlreadyRegistered, "new wallet belongs to another identity")
	}
	return false, nil
}

var _ compliance.Token = (*Token)(nil)
