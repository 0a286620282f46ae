// Package rootfs validates a candidate container root filesystem and
// performs the pivot_root sequence that makes it the process's "/".
package rootfs

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// essentialDirs are checked for by Validate; their absence is logged
// but not fatal — a minimal rootfs (e.g. a single static binary) is
// allowed.
var essentialDirs = []string{"bin", "lib", "etc"}

// Validate confirms path exists and is a directory, and warns (without
// failing) about missing conventional subdirectories.
func Validate(logger *zap.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errkind.Wrap(errkind.Filesystem, "stat rootfs", err).Context(path)
	}
	if !info.IsDir() {
		return errkind.New(errkind.Filesystem, fmt.Sprintf("rootfs %q is not a directory", path))
	}

	for _, dir := range essentialDirs {
		if _, err := os.Stat(filepath.Join(path, dir)); err != nil {
			logger.Warn("rootfs missing conventional subdirectory",
				zap.String("rootfs", path), zap.String("subdir", dir))
		}
	}
	return nil
}
