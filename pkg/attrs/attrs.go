// Package attrs builds and inspects slog key/value attribute slices.
package attrs

import (
	"strconv"

	"assetgate/pkg/domain"
)

// ExtractString extracts a string value from a key-value attribute slice.
// The slice should be formatted as [key1, value1, key2, value2, ...].
// Returns empty string if the key is not found or the value is not a string.
func ExtractString(attrs []any, key string) string {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok {
			continue
		}
		if k == key {
			if v, ok := attrs[i+1].(string); ok {
				return v
			}
		}
	}
	return ""
}

// Address appends key=hex(addr) unless addr is the zero address.
func Address(attrs []any, key string, addr domain.Address) []any {
	if addr == domain.ZeroAddress {
		return attrs
	}
	return append(attrs, key, addr.Hex())
}

// Uint appends key=v unless v is zero.
func Uint(attrs []any, key string, v uint64) []any {
	if v == 0 {
		return attrs
	}
	return append(attrs, key, strconv.FormatUint(v, 10))
}

// String appends key=v unless v is empty.
func String(attrs []any, key, v string) []any {
	if v == "" {
		return attrs
	}
	return append(attrs, key, v)
}
