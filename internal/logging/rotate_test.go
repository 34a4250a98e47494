package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RotateIfOversize(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "launcher.log")
	require.NoError(t, os.WriteFile(p, []byte("0123456789"), 0o644))

	require.NoError(t, RotateIfOversize(p, 5))

	_, err := os.Stat(p)
	assert.True(t, os.IsNotExist(err), "oversize log should be rotated away")

	rotated := p + ".1"
	data, err := os.ReadFile(rotated)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))
}

func Test_RotateIfOversize_Small(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "launcher.log")
	require.NoError(t, os.WriteFile(p, []byte("hi"), 0o644))

	require.NoError(t, RotateIfOversize(p, 100))

	_, err := os.Stat(p)
	assert.NoError(t, err, "a small log should not be rotated")
}
