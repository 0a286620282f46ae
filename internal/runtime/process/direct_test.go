package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDirectSuccess(t *testing.T) {
	code, err := RunDirect([]string{"/bin/true"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestRunDirectPropagatesExitCode(t *testing.T) {
	code, err := RunDirect([]string{"/bin/sh", "-c", "exit 7"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestRunDirectPropagatesSignalDeath(t *testing.T) {
	code, err := RunDirect([]string{"/bin/sh", "-c", "kill -TERM $$"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 143, code)
}

func TestRunDirectUnknownExecutableFails(t *testing.T) {
	_, err := RunDirect([]string{"/no/such/binary"}, nil)
	assert.Error(t, err)
}
