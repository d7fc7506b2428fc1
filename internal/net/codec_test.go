package net_test

import (
	"bytes"
	"testing"

	gonet "github.com/gridhaven/server/internal/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{10, 1, 0xAA, 0xBB, 0xCC}

	require.NoError(t, gonet.WriteFrame(&buf, payload))
	// [len=7 LE][payload]
	assert.Equal(t, []byte{7, 0}, buf.Bytes()[:2])

	got, err := gonet.ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadFrame_RejectsBadLengths(t *testing.T) {
	// Length 2 means an empty payload, which is never valid.
	_, err := gonet.ReadFrame(bytes.NewReader([]byte{2, 0}))
	assert.Error(t, err)

	_, err = gonet.ReadFrame(bytes.NewReader([]byte{0, 0}))
	assert.Error(t, err)

	// Header promises more bytes than the stream holds.
	_, err = gonet.ReadFrame(bytes.NewReader([]byte{10, 0, 1, 2}))
	assert.Error(t, err)
}
