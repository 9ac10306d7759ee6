// Package domain holds the value types shared by every component: addresses
// for holders, identities, issuers and components, claim topics and countries.
//
// Parse functions are the trust boundary. Direct conversion bypasses validation.
package domain

import (
	"strconv"
	"strings"

	dErrors "assetgate/pkg/domain-errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// Address identifies a holder wallet, an identity contract, a claim issuer or
// a deployed component.
type Address = common.Address

// ZeroAddress is the unset address.
var ZeroAddress Address

// ParseAddress parses a 0x-prefixed hex address. The zero address is rejected.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZeroAddress, dErrors.New(dErrors.CodeInvalidInput, "address is required")
	}
	if !common.IsHexAddress(s) {
		return ZeroAddress, dErrors.Newf(dErrors.CodeInvalidInput, "invalid address %q", s)
	}
	addr := common.HexToAddress(s)
	if addr == ZeroAddress {
		return ZeroAddress, dErrors.New(dErrors.CodeZeroAddress, "zero address")
	}
	return addr, nil
}

// ParseOptionalAddress is ParseAddress for fields where the zero address
// (or an empty string) means "unset".
func ParseOptionalAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZeroAddress, nil
	}
	if !common.IsHexAddress(s) {
		return ZeroAddress, dErrors.Newf(dErrors.CodeInvalidInput, "invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// RequireNonZero returns a zero_address error naming field when addr is unset.
func RequireNonZero(addr Address, field string) error {
	if addr == ZeroAddress {
		return dErrors.Newf(dErrors.CodeZeroAddress, "%s is the zero address", field)
	}
	return nil
}

// DeriveAddress returns the address whose bytes are the low 20 bytes of
// keccak256(label). Used to give deployed components a stable address.
func DeriveAddress(label string) Address {
	return common.BytesToAddress(crypto.Keccak256([]byte(label))[12:])
}

// NewComponentAddress returns a fresh random component address.
func NewComponentAddress() Address {
	id := uuid.New()
	return DeriveAddress(id.String())
}

// Topic is a claim topic identifier, e.g. 1 for KYC.
type Topic uint64

// ParseTopic parses a decimal topic id.
func ParseTopic(s string) (Topic, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid claim topic %q", s)
	}
	return Topic(v), nil
}

func (t Topic) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// ParseTopics parses a comma separated topic list, skipping blanks.
func ParseTopics(s string) ([]Topic, error) {
	var out []Topic
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := ParseTopic(part)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
