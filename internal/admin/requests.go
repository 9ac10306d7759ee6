package admin

import (
	"encoding/hex"
	"strings"

	"assetgate/internal/compliance/modules"
	"assetgate/internal/identity/registry"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

// MaxBatchSize bounds batch registrations accepted over HTTP.
const MaxBatchSize = 100

// TransferRequest is the body of the transfer endpoints. From is only read
// where the endpoint moves someone else's tokens.
type TransferRequest struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`

	from domain.Address
	to   domain.Address
}

func (r *TransferRequest) Validate() error {
	var err error
	if r.From != "" {
		if r.from, err = domain.ParseAddress(r.From); err != nil {
			return err
		}
	}
	if r.to, err = domain.ParseAddress(r.To); err != nil {
		return err
	}
	if r.Amount == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must be positive")
	}
	return nil
}

// requireFrom is checked by the endpoints that move someone else's tokens.
func (r *TransferRequest) requireFrom() error {
	return domain.RequireNonZero(r.from, "from")
}

// HolderAmountRequest is the body of mint, burn, approve and the partial
// freeze endpoints. Holder is the recipient, the burned wallet or the spender.
type HolderAmountRequest struct {
	Holder string `json:"holder"`
	Amount uint64 `json:"amount"`

	holder domain.Address
}

func (r *HolderAmountRequest) Validate() error {
	var err error
	if r.holder, err = domain.ParseAddress(r.Holder); err != nil {
		return err
	}
	return nil
}

// FreezeRequest freezes or unfreezes a whole address.
type FreezeRequest struct {
	Holder string `json:"holder"`
	Freeze bool   `json:"freeze"`

	holder domain.Address
}

func (r *FreezeRequest) Validate() error {
	var err error
	r.holder, err = domain.ParseAddress(r.Holder)
	return err
}

// RecoveryRequest moves a lost wallet's position to a new wallet.
type RecoveryRequest struct {
	LostWallet string `json:"lost_wallet"`
	NewWallet  string `json:"new_wallet"`
	Identity   string `json:"identity"`

	lost        domain.Address
	replacement domain.Address
	identity    domain.Address
}

func (r *RecoveryRequest) Validate() error {
	var err error
	if r.lost, err = domain.ParseAddress(r.LostWallet); err != nil {
		return err
	}
	if r.replacement, err = domain.ParseAddress(r.NewWallet); err != nil {
		return err
	}
	r.identity, err = domain.ParseAddress(r.Identity)
	return err
}

// AddressRequest carries a single address: an agent, a new owner, a signer.
type AddressRequest struct {
	Address string `json:"address"`

	address domain.Address
}

func (r *AddressRequest) Validate() error {
	var err error
	r.address, err = domain.ParseAddress(r.Address)
	return err
}

// RegisterIdentityRequest registers one wallet, or a batch when Batch is set.
type RegisterIdentityRequest struct {
	Holder   string                    `json:"holder,omitempty"`
	Identity string                    `json:"identity,omitempty"`
	Country  uint16                    `json:"country,omitempty"`
	Batch    []RegisterIdentityRequest `json:"batch,omitempty"`

	regs []registry.Registration
}

func (r *RegisterIdentityRequest) Validate() error {
	if len(r.Batch) == 0 {
		reg, err := r.registration()
		if err != nil {
			return err
		}
		r.regs = []registry.Registration{reg}
		return nil
	}
	if r.Holder != "" || r.Identity != "" {
		return dErrors.New(dErrors.CodeInvalidInput, "use either a single registration or a batch")
	}
	if len(r.Batch) > MaxBatchSize {
		return dErrors.Newf(dErrors.CodeInvalidInput, "batch must contain at most %d registrations", MaxBatchSize)
	}
	r.regs = make([]registry.Registration, 0, len(r.Batch))
	for i := range r.Batch {
		reg, err := r.Batch[i].registration()
		if err != nil {
			return err
		}
		r.regs = append(r.regs, reg)
	}
	return nil
}

func (r *RegisterIdentityRequest) registration() (registry.Registration, error) {
	holder, err := domain.ParseAddress(r.Holder)
	if err != nil {
		return registry.Registration{}, err
	}
	identity, err := domain.ParseAddress(r.Identity)
	if err != nil {
		return registry.Registration{}, err
	}
	country, err := domain.NewCountry(r.Country)
	if err != nil {
		return registry.Registration{}, err
	}
	return registry.Registration{Holder: holder, Identity: identity, Country: country}, nil
}

// CountryRequest updates an investor country.
type CountryRequest struct {
	Country uint16 `json:"country"`

	country domain.Country
}

func (r *CountryRequest) Validate() error {
	var err error
	r.country, err = domain.NewCountry(r.Country)
	return err
}

// ModuleRequest adds a module built from its kind.
type ModuleRequest struct {
	modules.Config
}

func (r *ModuleRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "module name is required")
	}
	if r.Kind == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "module kind is required")
	}
	return nil
}

// ModuleCallRequest reconfigures a bound module.
type ModuleCallRequest struct {
	modules.Interaction
}

func (r *ModuleCallRequest) Validate() error {
	if strings.TrimSpace(r.Action) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "action is required")
	}
	return nil
}

// TopicRequest adds a claim topic.
type TopicRequest struct {
	Topic domain.Topic `json:"topic"`
}

func (r *TopicRequest) Validate() error { return nil }

// IssuerRequest adds a trusted issuer or replaces its topics. Issuer is
// ignored when the issuer comes from the path.
type IssuerRequest struct {
	Issuer string         `json:"issuer,omitempty"`
	Topics []domain.Topic `json:"topics"`

	issuer domain.Address
}

func (r *IssuerRequest) Validate() error {
	if len(r.Topics) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "at least one claim topic is required")
	}
	if r.Issuer == "" {
		return nil
	}
	var err error
	r.issuer, err = domain.ParseAddress(r.Issuer)
	return err
}

// ClaimRequest attaches an issuer-signed claim to an identity.
type ClaimRequest struct {
	Topic     domain.Topic `json:"topic"`
	Issuer    string       `json:"issuer"`
	Signature string       `json:"signature"`
	Data      string       `json:"data,omitempty"`
	URI       string       `json:"uri,omitempty"`

	issuer    domain.Address
	signature []byte
	data      []byte
}

func (r *ClaimRequest) Validate() error {
	var err error
	if r.issuer, err = domain.ParseAddress(r.Issuer); err != nil {
		return err
	}
	if r.signature, err = decodeHex(r.Signature, "signature"); err != nil {
		return err
	}
	if r.Data != "" {
		if r.data, err = decodeHex(r.Data, "data"); err != nil {
			return err
		}
	}
	return nil
}

// RevocationRequest revokes a claim signature on behalf of its issuer.
type RevocationRequest struct {
	Signature string `json:"signature"`

	signature []byte
}

func (r *RevocationRequest) Validate() error {
	var err error
	r.signature, err = decodeHex(r.Signature, "signature")
	return err
}

// CanTransferRequest asks the compliance chain about a hypothetical transfer.
type CanTransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`

	from domain.Address
	to   domain.Address
}

func (r *CanTransferRequest) Validate() error {
	var err error
	if r.from, err = domain.ParseAddress(r.From); err != nil {
		return err
	}
	r.to, err = domain.ParseAddress(r.To)
	return err
}

func decodeHex(s, field string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil || len(b) == 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be non-empty hex", field)
	}
	return b, nil
}
