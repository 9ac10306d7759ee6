package modules

import (
	"time"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

var (
	_ compliance.Module = (*MaxBalance)(nil)
	_ compliance.Module = (*CountryRestrict)(nil)
	_ compliance.Module = (*CountryAllow)(nil)
	_ compliance.Module = (*TransferLimit)(nil)
	_ compliance.Module = (*Lockup)(nil)
	_ compliance.Module = (*TransferRestrict)(nil)

	_ compliance.Stateful        = (*MaxBalance)(nil)
	_ compliance.Stateful        = (*CountryRestrict)(nil)
	_ compliance.Stateful        = (*CountryAllow)(nil)
	_ compliance.Stateful        = (*TransferLimit)(nil)
	_ compliance.Stateful        = (*Lockup)(nil)
	_ compliance.Stateful        = (*TransferRestrict)(nil)
	_ compliance.HoldingsTracker = (*MaxBalance)(nil)
)

// LimitConfig is the wire form of a Limit.
type LimitConfig struct {
	WindowSeconds uint64 `json:"window_seconds"`
	MaxTransfers  uint32 `json:"max_transfers"`
}

func (c LimitConfig) limit() Limit {
	return Limit{Window: time.Duration(c.WindowSeconds) * time.Second, MaxTransfers: c.MaxTransfers}
}

// Config describes a module to build. Only the fields of Kind are read.
type Config struct {
	Kind       string           `json:"kind"`
	Name       string           `json:"name"`
	MaxBalance uint64           `json:"max_balance,omitempty"`
	Countries  []domain.Country `json:"countries,omitempty"`
	Wallets    []domain.Address `json:"wallets,omitempty"`
	Limits     []LimitConfig    `json:"limits,omitempty"`
}

// Build constructs the module described by cfg.
func Build(cfg Config) (compliance.Module, error) {
	switch cfg.Kind {
	case KindMaxBalance:
		return built(NewMaxBalance(cfg.Name, cfg.MaxBalance))
	case KindCountryRestrict:
		return built(NewCountryRestrict(cfg.Name, cfg.Countries...))
	case KindCountryAllow:
		return built(NewCountryAllow(cfg.Name, cfg.Countries...))
	case KindTransferLimit:
		limits := make([]Limit, len(cfg.Limits))
		for i, l := range cfg.Limits {
			limits[i] = l.limit()
		}
		return built(NewTransferLimit(cfg.Name, limits...))
	case KindLockup:
		return built(NewLockup(cfg.Name))
	case KindTransferRestrict:
		return built(NewTransferRestrict(cfg.Name, cfg.Wallets...))
	default:
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown module kind %q", cfg.Kind)
	}
}

// Restore rebuilds a saved module of any kind Build understands.
func Restore(r compliance.ModuleRecord) (compliance.Module, error) {
	// the cap is a placeholder until the saved state is loaded
	m, err := Build(Config{Kind: r.Kind, Name: r.Name, MaxBalance: 1})
	if err != nil {
		return nil, err
	}
	s, ok := m.(compliance.Stateful)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "module kind %q keeps no state", r.Kind)
	}
	if err := s.UnmarshalState(r.State); err != nil {
		return nil, err
	}
	return m, nil
}

// built drops the typed nil a failed constructor returns.
func built[M compliance.Module](m M, err error) (compliance.Module, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Interaction actions.
const (
	ActionSetMaxBalance   = "set_max_balance"
	ActionPresetBalance   = "preset_balance"
	ActionAddCountries    = "add_countries"
	ActionRemoveCountries = "remove_countries"
	ActionSetLimit        = "set_limit"
	ActionRemoveLimit     = "remove_limit"
	ActionLock            = "lock"
	ActionUnlock          = "unlock"
	ActionAllow           = "allow"
	ActionDisallow        = "disallow"
)

// Interaction reconfigures a bound module. It is applied through
// ModularCompliance.CallModule so the change is owner-gated and audited.
type Interaction struct {
	Action     string           `json:"action"`
	MaxBalance uint64           `json:"max_balance,omitempty"`
	Identity   domain.Address   `json:"identity,omitempty"`
	Balance    uint64           `json:"balance,omitempty"`
	Countries  []domain.Country `json:"countries,omitempty"`
	Wallets    []domain.Address `json:"wallets,omitempty"`
	Limit      LimitConfig      `json:"limit"`
	Until      time.Time        `json:"until"`
}

// Apply runs in against m.
func Apply(m compliance.Module, in Interaction) error {
	switch mod := m.(type) {
	case *MaxBalance:
		switch in.Action {
		case ActionSetMaxBalance:
			return mod.SetMaxBalance(in.MaxBalance)
		case ActionPresetBalance:
			return mod.PresetBalance(in.Identity, in.Balance)
		}
	case *CountryRestrict:
		switch in.Action {
		case ActionAddCountries:
			return mod.AddCountryRestrictions(in.Countries...)
		case ActionRemoveCountries:
			return mod.RemoveCountryRestrictions(in.Countries...)
		}
	case *CountryAllow:
		switch in.Action {
		case ActionAddCountries:
			return mod.AddAllowedCountries(in.Countries...)
		case ActionRemoveCountries:
			return mod.RemoveAllowedCountries(in.Countries...)
		}
	case *TransferLimit:
		switch in.Action {
		case ActionSetLimit:
			return mod.SetLimit(in.Limit.limit())
		case ActionRemoveLimit:
			return mod.RemoveLimit(in.Limit.limit().Window)
		}
	case *Lockup:
		switch in.Action {
		case ActionLock:
			return applyEach(in.Wallets, func(w domain.Address) error { return mod.LockUntil(w, in.Until) })
		case ActionUnlock:
			return applyEach(in.Wallets, mod.Unlock)
		}
	case *TransferRestrict:
		switch in.Action {
		case ActionAllow:
			return mod.AllowUsers(in.Wallets...)
		case ActionDisallow:
			return mod.DisallowUsers(in.Wallets...)
		}
	}
	return dErrors.Newf(dErrors.CodeInvalidInput, "action %q not supported by %s module", in.Action, m.Kind())
}

func applyEach(wallets []domain.Address, fn func(domain.Address) error) error {
	if len(wallets) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "wallets are required")
	}
	for _, w := range wallets {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}
