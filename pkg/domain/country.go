package domain

import (
	"strconv"
	"strings"

	dErrors "assetgate/pkg/domain-errors"
)

// Country is an ISO 3166-1 numeric country code.
// Invariant: 0 < Country <= 999 once parsed.
type Country uint16

// MaxCountry is the largest ISO 3166-1 numeric code.
const MaxCountry Country = 999

// ParseCountry constructs a Country from external input.
func ParseCountry(s string) (Country, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid country code %q", s)
	}
	return NewCountry(uint16(v))
}

// NewCountry validates a numeric country code.
func NewCountry(v uint16) (Country, error) {
	c := Country(v)
	if !c.IsValid() {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "country code %d out of range", v)
	}
	return c, nil
}

// IsValid reports whether the code is in the ISO numeric range.
func (c Country) IsValid() bool {
	return c > 0 && c <= MaxCountry
}

func (c Country) String() string {
	return strconv.FormatUint(uint64(c), 10)
}
