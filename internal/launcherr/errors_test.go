package launcherr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WrapUnwrap(t *testing.T) {
	cause := errors.New("pipe closed")
	err := Wrap(ProtocolFailed, "engine", cause, "short read")

	assert.True(t, Is(err, ProtocolFailed), "Is should match the wrapped kind")
	assert.False(t, Is(err, IOFailed), "Is should not match an unrelated kind")
	assert.ErrorIs(t, err, cause, "Unwrap should expose the original cause")
}

func Test_KindStrings(t *testing.T) {
	cases := map[Kind]string{
		InvalidFormat:         "invalid-format",
		NotFound:              "not-found",
		IOFailed:              "io-failed",
		ProtocolFailed:        "protocol-failed",
		InvalidState:          "invalid-state",
		DependencyUnresolved:  "dependency-unresolved",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
