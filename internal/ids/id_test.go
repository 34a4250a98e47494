package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HexRoundTrip(t *testing.T) {
	id := New()

	hexStr := id.Hex()
	assert.Len(t, hexStr, 32, "hex form should be 32 characters with no separators")

	parsed, err := ParseHex(hexStr)
	require.NoError(t, err, "ParseHex should not return an error")
	assert.Equal(t, id, parsed, "round-tripped identifier should be bitwise equal")
}

func Test_IsZero(t *testing.T) {
	assert.True(t, Nil.IsZero(), "Nil should be zero")
	assert.False(t, New().IsZero(), "a freshly generated id should not be zero")
}

func Test_ParseHex_WrongLength(t *testing.T) {
	_, err := ParseHex("abcd")
	assert.Error(t, err, "a short hex string should fail to parse")
}
