package attrs

import (
	"testing"

	"assetgate/pkg/domain"

	"github.com/stretchr/testify/assert"
)

func TestExtractString(t *testing.T) {
	args := []any{"event", "transfer", 42, "ignored", "amount", 7}
	assert.Equal(t, "transfer", ExtractString(args, "event"))
	assert.Equal(t, "", ExtractString(args, "amount"))
	assert.Equal(t, "", ExtractString(args, "missing"))
}

func TestAppendSkipsUnsetValues(t *testing.T) {
	holder := domain.DeriveAddress("holder")
	var args []any
	args = Address(args, "subject", holder)
	args = Address(args, "counterparty", domain.ZeroAddress)
	args = Uint(args, "amount", 0)
	args = Uint(args, "topic", 7)
	args = String(args, "detail", "")

	assert.Equal(t, []any{"subject", holder.Hex(), "topic", "7"}, args)
}
