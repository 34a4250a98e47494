package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WireRoundTrip_Scalars(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeU8(&buf, 7))
	require.NoError(t, writeU16(&buf, 4000))
	require.NoError(t, writeI32(&buf, -12345))
	require.NoError(t, writeF32(&buf, 3.5))
	require.NoError(t, writeBool(&buf, true))
	require.NoError(t, writeString(&buf, "hello"))
	require.NoError(t, writeDecPoint(&buf, DecPoint{X: 1920, Y: 1080}))
	require.NoError(t, writeBytes(&buf, []byte{0x00, 0x01, 0xff}))

	u8, err := readU8(&buf)
	require.NoError(t, err)
	assert.Equal(t, byte(7), u8)

	u16, err := readU16(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(4000), u16)

	i32, err := readI32(&buf)
	require.NoError(t, err)
	assert.Equal(t, int32(-12345), i32)

	f32, err := readF32(&buf)
	require.NoError(t, err)
	assert.InDelta(t, float32(3.5), f32, 0.0001)

	b, err := readBool(&buf)
	require.NoError(t, err)
	assert.True(t, b)

	s, err := readString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	dp, err := readDecPoint(&buf)
	require.NoError(t, err)
	assert.Equal(t, DecPoint{X: 1920, Y: 1080}, dp)

	blob, err := readBytes(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0xff}, blob)
}

func Test_StatusError(t *testing.T) {
	assert.NoError(t, statusError("engine", StatusSuccess))
	assert.Error(t, statusError("engine", StatusFailed))
	assert.Error(t, statusError("engine", StatusGameExited))
}
