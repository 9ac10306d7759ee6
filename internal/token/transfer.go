package token

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/requestcontext"
)

// Transfer moves amount from the caller to to through the full gate.
func (t *Token) Transfer(ctx context.Context, caller, to domain.Address, amount uint64) (err error) {
	ctx, done := t.begin(ctx, "transfer", transferAttrs(caller, to, amount)...)
	defer done(&err)

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.gate(ctx, caller, to, amount, nil); err != nil {
		return err
	}
	t.logAudit(ctx, audit.Event{Action: string(audit.EventTransfer), Actor: caller, Subject: caller, Counterparty: to, Amount: amount})
	return nil
}

// TransferFrom moves amount from from to to on behalf of the caller, spending
// the caller's allowance. The allowance is only spent when the transfer
// settles.
func (t *Token) TransferFrom(ctx context.Context, caller, from, to domain.Address, amount uint64) (err error) {
	ctx, done := t.begin(ctx, "transfer_from", transferAttrs(from, to, amount)...)
	defer done(&err)

	t.mu.Lock()
	defer t.mu.Unlock()

	allowance := t.Allowance(from, caller)
	if allowance < amount {
		return dErrors.Newf(dErrors.CodeInsufficientAllowance, "allowance %d is below %d", allowance, amount)
	}
	spend := map[Allowance]uint64{{Owner: from, Spender: caller}: allowance - amount}
	if err := t.gate(ctx, from, to, amount, spend); err != nil {
		return err
	}
	t.logAudit(ctx, audit.Event{Action: string(audit.EventApproval), Actor: caller, Subject: from, Counterparty: caller, Amount: allowance - amount})
	t.logAudit(ctx, audit.Event{Action: string(audit.EventTransfer), Actor: caller, Subject: from, Counterparty: to, Amount: amount})
	return nil
}

// gate runs the ordinary transfer state machine. allowances are written in
// the same ledger update as the balances.
func (t *Token) gate(ctx context.Context, from, to domain.Address, amount uint64, allowances map[Allowance]uint64) error {
	// REQUESTED
	if err := domain.RequireNonZero(to, "recipient"); err != nil {
		return err
	}
	t.stateMu.RLock()
	paused := t.paused
	frozen := t.freezes[from].Address || t.freezes[to].Address
	locked := t.freezes[from].Tokens
	registry := t.registry
	mc := t.compliance
	t.stateMu.RUnlock()

	if paused {
		return dErrors.New(dErrors.CodePaused, "token is paused")
	}
	if frozen {
		return dErrors.New(dErrors.CodeAccountFrozen, "sender or recipient is frozen")
	}
	balance, err := t.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if free := freeBalance(balance, locked); amount > free {
		return dErrors.Newf(dErrors.CodeInsufficientBalance, "free balance %d is below %d", free, amount)
	}

	// IDENTITY_CHECK
	for _, holder := range []domain.Address{from, to} {
		if err := requireVerified(ctx, registry, holder); err != nil {
			return err
		}
	}

	// COMPLIANCE_CHECK -> SETTLED
	tr, err := t.resolve(ctx, from, to, amount)
	if err != nil {
		return err
	}
	return mc.Settle(ctx, t.Address(), tr, func() error {
		u, err := t.movement(ctx, from, to, amount)
		if err != nil {
			return err
		}
		u.Allowances = allowances
		return t.commit(ctx, u)
	})
}

func requireVerified(ctx context.Context, registry IdentityRegistry, holder domain.Address) error {
	ok, err := registry.IsVerified(ctx, holder)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "verify identity")
	}
	if !ok {
		return dErrors.Newf(dErrors.CodeUnverifiedIdentity, "%s is not verified", holder.Hex())
	}
	return nil
}

func (t *Token) resolve(ctx context.Context, from, to domain.Address, amount uint64) (compliance.Transfer, error) {
	sender, err := t.Investor(ctx, from)
	if err != nil {
		return compliance.Transfer{}, dErrors.Wrap(err, dErrors.CodeInternal, "resolve sender")
	}
	recipient, err := t.Investor(ctx, to)
	if err != nil {
		return compliance.Transfer{}, dErrors.Wrap(err, dErrors.CodeInternal, "resolve recipient")
	}
	return compliance.Transfer{From: sender, To: recipient, Amount: amount, At: requestcontext.Now(ctx)}, nil
}

// movement computes the ledger update that moves amount from from to to. The
// zero address on either side mints or burns and adjusts the total supply.
// Callers hold t.mu.
func (t *Token) movement(ctx context.Context, from, to domain.Address, amount uint64) (Update, error) {
	supply, err := t.TotalSupply(ctx)
	if err != nil {
		return Update{}, err
	}
	updates := make(map[domain.Address]uint64, 2)

	if from == domain.ZeroAddress {
		if amount > math.MaxUint64-supply {
			return Update{}, dErrors.New(dErrors.CodeInvalidInput, "total supply would overflow")
		}
		supply += amount
	} else {
		bal, err := t.BalanceOf(ctx, from)
		if err != nil {
			return Update{}, err
		}
		if bal < amount {
			return Update{}, dErrors.Newf(dErrors.CodeInsufficientBalance, "balance %d is below %d", bal, amount)
		}
		updates[from] = bal - amount
	}

	if to == domain.ZeroAddress {
		supply -= amount
	} else {
		bal, ok := updates[to]
		if !ok {
			if bal, err = t.BalanceOf(ctx, to); err != nil {
				return Update{}, err
			}
		}
		updates[to] = bal + amount
	}

	return Update{Balances: updates, TotalSupply: supply}, nil
}

// Approve sets the allowance of spender over the caller's balance.
func (t *Token) Approve(ctx context.Context, caller, spender domain.Address, amount uint64) error {
	return t.adjustAllowance(ctx, caller, spender, func(uint64) (uint64, error) { return amount, nil })
}

// IncreaseAllowance raises the allowance of spender by added.
func (t *Token) IncreaseAllowance(ctx context.Context, caller, spender domain.Address, added uint64) error {
	return t.adjustAllowance(ctx, caller, spender, func(current uint64) (uint64, error) {
		if added > math.MaxUint64-current {
			return 0, dErrors.New(dErrors.CodeInvalidInput, "allowance would overflow")
		}
		return current + added, nil
	})
}

// DecreaseAllowance lowers the allowance of spender by removed.
func (t *Token) DecreaseAllowance(ctx context.Context, caller, spender domain.Address, removed uint64) error {
	return t.adjustAllowance(ctx, caller, spender, func(current uint64) (uint64, error) {
		if removed > current {
			return 0, dErrors.Newf(dErrors.CodeInsufficientAllowance, "allowance %d is below %d", current, removed)
		}
		return current - removed, nil
	})
}

func (t *Token) adjustAllowance(ctx context.Context, caller, spender domain.Address, fn func(current uint64) (uint64, error)) error {
	if err := domain.RequireNonZero(spender, "spender"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := fn(t.Allowance(caller, spender))
	if err != nil {
		return err
	}
	if err := t.commit(ctx, Update{Allowances: map[Allowance]uint64{{Owner: caller, Spender: spender}: next}}); err != nil {
		return err
	}

	t.logAudit(ctx, audit.Event{Action: string(audit.EventApproval), Actor: caller, Subject: caller, Counterparty: spender, Amount: next})
	return nil
}

// Allowance is what spender may still move out of owner's balance.
func (t *Token) Allowance(owner, spender domain.Address) uint64 {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.allowances[Allowance{Owner: owner, Spender: spender}]
}

func freeBalance(balance, locked uint64) uint64 {
	if locked >= balance {
		return 0
	}
	return balance - locked
}

func transferAttrs(from, to domain.Address, amount uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("from", from.Hex()),
		attribute.String("to", to.Hex()),
		attribute.Int64("amount", int64(min(amount, math.MaxInt64))),
	}
}
