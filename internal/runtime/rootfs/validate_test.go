package rootfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateRejectsMissingPath(t *testing.T) {
	err := Validate(zap.NewNop(), filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestValidateRejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := Validate(zap.NewNop(), file)
	assert.Error(t, err)
}

func TestValidateAcceptsMinimalRootfsWithWarning(t *testing.T) {
	dir := t.TempDir()
	// No bin/lib/etc present: this must still succeed, only warn.
	err := Validate(zap.NewNop(), dir)
	assert.NoError(t, err)
}

func TestValidateAcceptsFullRootfs(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"bin", "lib", "etc"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	assert.NoError(t, Validate(zap.NewNop(), dir))
}
