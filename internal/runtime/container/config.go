// Package container composes the cgroup, namespace, rootfs, and
// process managers into the single strictly-ordered boot sequence
// that turns a ContainerConfig into a running, reaped, torn-down
// container.
package container

import (
	"go.uber.org/zap"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
	"github.com/DeveloperWK/container-runtime/internal/runtime/rootfs"
)

// DefaultHostname matches the fixed HOSTNAME environment variable the
// process manager hands the child (internal/runtime/process.DefaultEnv)
// — the pair is part of the external contract, not an arbitrary choice.
const DefaultHostname = "rust-container"

// ContainerConfig is the external input contract: everything needed
// to boot one container run.
type ContainerConfig struct {
	RootfsPath string
	Command    string
	Args       []string
	Hostname   string

	MemoryLimitMB *uint64
	CPUPercent    *uint64
	PidsLimit     *int64
}

// Validate checks the parts of ContainerConfig that must hold before
// boot starts: rootfs must exist and be a directory, command must be
// non-empty. Hostname defaults when empty.
func (c *ContainerConfig) Validate(logger *zap.Logger) error {
	if c.Command == "" {
		return errkind.New(errkind.InvalidConfiguration, "command is required")
	}

	if err := rootfs.Validate(logger, c.RootfsPath); err != nil {
		return err
	}

	if c.Hostname == "" {
		c.Hostname = DefaultHostname
	}
	return nil
}
