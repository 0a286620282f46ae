package namespace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Spawning with an empty flag set exercises the exec/wait machinery
// without requiring namespace privileges, which the sandboxed test
// runner does not have.
func TestSpawnAndReapSuccess(t *testing.T) {
	m := New(zap.NewNop())
	var out bytes.Buffer

	leader, err := m.Spawn("/bin/true", nil, nil, Config{}, nil, &out, &out)
	require.NoError(t, err)
	assert.Greater(t, leader.Pid(), 0)

	code, err := m.Reap(leader)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestReapPropagatesExitCode(t *testing.T) {
	m := New(zap.NewNop())

	leader, err := m.Spawn("/bin/sh", []string{"-c", "exit 7"}, nil, Config{}, nil, nil, nil)
	require.NoError(t, err)

	code, err := m.Reap(leader)
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestSpawnUsesGivenArgvVerbatim(t *testing.T) {
	m := New(zap.NewNop())

	// Confirms Spawn does not inject anything ahead of argv: under -c the
	// operand after the script ("ignored") becomes "$0", so "$1" is "marker".
	leader, err := m.Spawn("/bin/sh", []string{"-c", `test "$1" = marker`, "ignored", "marker"}, nil, Config{}, nil, nil, nil)
	require.NoError(t, err)

	code, err := m.Reap(leader)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestSpawnUnknownExecutableFails(t *testing.T) {
	m := New(zap.NewNop())
	_, err := m.Spawn("/no/such/binary", nil, nil, Config{}, nil, nil, nil)
	assert.Error(t, err)
}
