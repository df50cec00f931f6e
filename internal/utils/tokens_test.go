package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	tok, err := NewResetToken(32)
	require.NoError(t, err)
	assert.Len(t, tok, 64) // 32 байта в hex

	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)

	other, err := NewResetToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestNewResetToken_DefaultLength(t *testing.T) {
	tok, err := NewResetToken(0)
	require.NoError(t, err)
	assert.Len(t, tok, 64)
}

func TestNumericCode(t *testing.T) {
	code, err := NumericCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "non-digit in code: %q", code)
	}
}

func TestNumericCode_DefaultLength(t *testing.T) {
	code, err := NumericCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
