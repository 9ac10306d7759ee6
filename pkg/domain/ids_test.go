package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "assetgate/pkg/domain-errors"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  dErrors.Code
	}{
		{"empty string", "", dErrors.CodeInvalidInput},
		{"whitespace only", "   ", dErrors.CodeInvalidInput},
		{"not hex", "not-an-address", dErrors.CodeInvalidInput},
		{"too short", "0x1234", dErrors.CodeInvalidInput},
		{"oversized input", "0x" + strings.Repeat("a", 100), dErrors.CodeInvalidInput},
		{"zero address", "0x0000000000000000000000000000000000000000", dErrors.CodeZeroAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.code))
		})
	}

	t.Run("accepts mixed case", func(t *testing.T) {
		addr, err := ParseAddress("0x52908400098527886E0F7030069857D2E4169EE7")
		require.NoError(t, err)
		assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", addr.Hex())
	})
}

func TestParseOptionalAddress(t *testing.T) {
	addr, err := ParseOptionalAddress("")
	require.NoError(t, err)
	assert.Equal(t, ZeroAddress, addr)

	_, err = ParseOptionalAddress("0xzz")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestRequireNonZero(t *testing.T) {
	err := RequireNonZero(ZeroAddress, "agent")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeZeroAddress))
	assert.Contains(t, err.Error(), "agent")
	assert.NoError(t, RequireNonZero(DeriveAddress("agent"), "agent"))
}

func TestDeriveAddress(t *testing.T) {
	assert.Equal(t, DeriveAddress("token"), DeriveAddress("token"))
	assert.NotEqual(t, DeriveAddress("token"), DeriveAddress("compliance"))
	assert.NotEqual(t, NewComponentAddress(), NewComponentAddress())
}

func TestParseTopics(t *testing.T) {
	topics, err := ParseTopics("1, 7,,42")
	require.NoError(t, err)
	assert.Equal(t, []Topic{1, 7, 42}, topics)

	_, err = ParseTopics("1,x")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseCountry(t *testing.T) {
	c, err := ParseCountry("250")
	require.NoError(t, err)
	assert.Equal(t, Country(250), c)

	for _, in := range []string{"0", "1000", "-1", "fr"} {
		_, err := ParseCountry(in)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), in)
	}
}
