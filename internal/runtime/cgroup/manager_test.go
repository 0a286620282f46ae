package cgroup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func withFakeV2Root(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cgroup.controllers"), []byte("cpu memory pids io"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cgroup.subtree_control"), []byte(""), 0o644))

	original := Root
	Root = dir
	t.Cleanup(func() { Root = original })
	return dir
}

func TestDetectV2(t *testing.T) {
	withFakeV2Root(t)
	assert.Equal(t, V2, Detect())
}

func TestDetectUnsupportedWhenRootMissing(t *testing.T) {
	original := Root
	Root = filepath.Join(t.TempDir(), "does-not-exist")
	t.Cleanup(func() { Root = original })
	assert.Equal(t, Unsupported, Detect())
}

func TestSetupWritesMemoryLimit(t *testing.T) {
	root := withFakeV2Root(t)
	logger := zap.NewNop()

	limit := uint64(64 * 1024 * 1024)
	h := New(logger, Config{Name: "test-group", MemoryLimitBytes: &limit})
	require.NoError(t, h.Setup())

	data, err := os.ReadFile(filepath.Join(root, "test-group", "memory.max"))
	require.NoError(t, err)
	assert.Equal(t, "67108864", string(data))

	swap, err := os.ReadFile(filepath.Join(root, "test-group", "memory.swap.max"))
	require.NoError(t, err)
	assert.Equal(t, "0", string(swap))
}

func TestSetupRejectsCgroupV1(t *testing.T) {
	original := Root
	Root = t.TempDir() // no cgroup.controllers -> looks like v1/unsupported
	t.Cleanup(func() { Root = original })

	h := New(zap.NewNop(), Config{Name: "whatever"})
	err := h.Setup()
	require.Error(t, err)
}

func TestPidsLimitMaxSentinel(t *testing.T) {
	root := withFakeV2Root(t)
	max := Unlimited
	h := New(zap.NewNop(), Config{Name: "pids-group", PidsLimit: &max})
	require.NoError(t, h.Setup())

	data, err := os.ReadFile(filepath.Join(root, "pids-group", "pids.max"))
	require.NoError(t, err)
	assert.Equal(t, "max", string(data))
}

func TestCPUPercentQuotaEqualsPeriod(t *testing.T) {
	assert.Equal(t, int64(DefaultCPUPeriodMicros), WithCPUPercent(DefaultCPUPeriodMicros, 100))
}

func TestAttachWritesPid(t *testing.T) {
	root := withFakeV2Root(t)
	h := New(zap.NewNop(), Config{Name: "attach-group"})
	require.NoError(t, h.Setup())

	require.NoError(t, h.Attach(4242))

	data, err := os.ReadFile(filepath.Join(root, "attach-group", "cgroup.procs"))
	require.NoError(t, err)
	assert.Equal(t, "4242", string(data))
}

func TestCleanupRemovesDirectoryViaKill(t *testing.T) {
	root := withFakeV2Root(t)
	h := New(zap.NewNop(), Config{Name: "cleanup-group"})
	require.NoError(t, h.Setup())
	require.NoError(t, os.WriteFile(filepath.Join(root, "cleanup-group", "cgroup.kill"), []byte("0"), 0o644))

	require.NoError(t, h.Cleanup())
	_, err := os.Stat(filepath.Join(root, "cleanup-group"))
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupIsIdempotent(t *testing.T) {
	withFakeV2Root(t)
	h := New(zap.NewNop(), Config{Name: "idempotent-group"})
	require.NoError(t, h.Setup())

	require.NoError(t, h.Cleanup())
	require.NoError(t, h.Cleanup())
}

func TestCleanupOnNeverSetupHandleIsNoop(t *testing.T) {
	h := New(zap.NewNop(), Config{})
	assert.NoError(t, h.Cleanup())
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "container-123", DefaultName(123))
}
