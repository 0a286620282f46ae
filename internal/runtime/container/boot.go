package container

import (
	"os"

	"go.uber.org/zap"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
	"github.com/DeveloperWK/container-runtime/internal/runtime/cgroup"
	"github.com/DeveloperWK/container-runtime/internal/runtime/namespace"
)

// Boot runs the outer half of the strictly-ordered boot sequence:
// verify privilege, configure and attach the cgroup if limits were
// requested, then unshare namespaces and fork. It
// returns the reaped leader's mapped exit code. selfExe is this
// binary's own path, used to re-exec the in-namespace continuation.
func Boot(logger *zap.Logger, cfg *ContainerConfig, selfExe string) (int, error) {
	if err := cfg.Validate(logger); err != nil {
		return 0, err
	}

	if os.Geteuid() != 0 {
		return 0, errkind.New(errkind.RootRequired, "container-runtime must run as root")
	}

	cgCfg, wantsCgroup := cgroupConfigFrom(cfg)
	var handle *cgroup.Handle
	if wantsCgroup {
		handle = cgroup.New(logger, cgCfg)
		if err := handle.Setup(); err != nil {
			return 0, err
		}
		defer handle.Guard()()

		if err := handle.Attach(os.Getpid()); err != nil {
			return 0, err
		}
	}

	nsManager := namespace.New(logger)
	argv := append([]string{namespace.InitArg, cfg.RootfsPath, cfg.Hostname, cfg.Command}, cfg.Args...)

	leader, err := nsManager.Spawn(selfExe, argv, os.Environ(), namespace.Default(), os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return 0, err
	}

	code, reapErr := nsManager.Reap(leader)

	if handle != nil {
		stats := handle.Stats()
		logger.Info("container finished",
			zap.Int("exit_code", code),
			zap.Uint64("memory_current_bytes", stats.MemoryCurrentBytes),
			zap.Uint64("pids_current", stats.PidsCurrent),
		)
	}

	return code, reapErr
}

// cgroupConfigFrom translates the subset of ContainerConfig's limits
// into a cgroup.Config. The second return reports whether any limit
// was actually requested — an all-nil config means "don't create a
// cgroup at all".
func cgroupConfigFrom(cfg *ContainerConfig) (cgroup.Config, bool) {
	var c cgroup.Config
	requested := false

	if cfg.MemoryLimitMB != nil {
		bytes := *cfg.MemoryLimitMB * 1024 * 1024
		c.MemoryLimitBytes = u64ptr(bytes)
		requested = true
	}
	if cfg.CPUPercent != nil {
		period := cgroup.DefaultCPUPeriodMicros
		quota := cgroup.WithCPUPercent(period, *cfg.CPUPercent)
		c.CPUQuotaMicros = i64ptr(quota)
		requested = true
	}
	if cfg.PidsLimit != nil {
		c.PidsLimit = cfg.PidsLimit
		requested = true
	}
	return c, requested
}

func u64ptr(v uint64) *uint64 { return &v }
func i64ptr(v int64) *int64   { return &v }
