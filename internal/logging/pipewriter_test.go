package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PipeWriterSink_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPipeWriterSink(&buf)

	require.NoError(t, sink.frame(pipeLogWarn, "module", "disk full"))

	tag, source, message, err := ReadPipeLogFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, pipeLogWarn, tag)
	assert.Equal(t, "module", source)
	assert.Equal(t, "disk full", message)
}

func Test_PipeWriterSink_Exception(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPipeWriterSink(&buf)
	sink.Exception("engine", errors.New("boom"))

	tag, source, message, err := ReadPipeLogFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, pipeLogException, tag)
	assert.Equal(t, "engine", source)
	assert.Equal(t, "boom", message)
}
