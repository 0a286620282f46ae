// Package cgroup manages a single cgroup v2 group across its lifecycle:
// create, configure limits, attach the leader process, reclaim
// processes, and remove the group.
package cgroup

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// retryAttempts and backoff bound the rmdir retry loop: the kernel
// needs time to flush memory accounting after the last member exits,
// so an immediate rmdir often returns EBUSY.
const (
	retryAttempts  = 6
	retryBaseDelay = 20 * time.Millisecond
	retryCeiling   = 500 * time.Millisecond
)

// Handle owns a single cgroup v2 directory for the lifetime of a
// container run.
type Handle struct {
	logger  *zap.Logger
	config  Config
	path    string
	version Version
}

// New returns a Handle for the given config. The cgroup directory is
// not created until Setup is called.
func New(logger *zap.Logger, config Config) *Handle {
	return &Handle{logger: logger, config: config}
}

// Path returns the resolved absolute cgroup directory. Empty until
// Setup has run.
func (h *Handle) Path() string {
	return h.path
}

// Setup detects the cgroup hierarchy, creates the group directory,
// enables controllers on the parent, and writes the configured limits.
func (h *Handle) Setup() error {
	h.version = Detect()
	if h.version != V2 {
		return errkind.New(errkind.InvalidConfiguration,
			fmt.Sprintf("cgroup %s detected; only cgroup v2 is supported", h.version))
	}

	if h.config.Name == "" {
		h.config.Name = DefaultName(os.Getpid())
	}
	h.path = filepath.Join(Root, h.config.Name)

	if err := os.MkdirAll(h.path, 0o755); err != nil {
		return errkind.Wrap(errkind.Cgroup, "create cgroup directory", err).Context(h.path)
	}

	h.enableControllers()

	if err := h.writeLimits(); err != nil {
		return err
	}

	h.logger.Info("cgroup configured", zap.String("path", h.path), zap.String("version", h.version.String()))
	return nil
}

// enableControllers writes +cpu +memory +pids +io to the parent's
// cgroup.subtree_control so the child group can use them. A controller
// already enabled by another writer is a common, non-fatal race.
func (h *Handle) enableControllers() {
	for _, controller := range []string{"+cpu", "+memory", "+pids", "+io"} {
		path := filepath.Join(Root, "cgroup.subtree_control")
		if err := os.WriteFile(path, []byte(controller), 0o644); err != nil {
			h.logger.Warn("enable cgroup controller",
				zap.String("controller", controller),
				zap.Error(err))
		}
	}
}

func (h *Handle) writeLimits() error {
	c := h.config

	if c.MemoryLimitBytes != nil {
		if err := h.writeFile("memory.max", strconv.FormatUint(*c.MemoryLimitBytes, 10)); err != nil {
			return err
		}
		if c.MemorySwapLimitBytes == nil {
			if err := h.writeFile("memory.swap.max", "0"); err != nil {
				return err
			}
		}
	}
	if c.MemorySwapLimitBytes != nil {
		if err := h.writeFile("memory.swap.max", strconv.FormatUint(*c.MemorySwapLimitBytes, 10)); err != nil {
			return err
		}
	}
	if c.CPUWeight != nil {
		if err := h.writeFile("cpu.weight", strconv.FormatUint(*c.CPUWeight, 10)); err != nil {
			return err
		}
	}
	if c.CPUQuotaMicros != nil {
		period := DefaultCPUPeriodMicros
		if c.CPUPeriodMicros != nil {
			period = *c.CPUPeriodMicros
		}
		value := "max"
		if *c.CPUQuotaMicros != Unlimited {
			value = fmt.Sprintf("%d %d", *c.CPUQuotaMicros, period)
		}
		if err := h.writeFile("cpu.max", value); err != nil {
			return err
		}
	}
	if c.PidsLimit != nil {
		value := "max"
		if *c.PidsLimit != Unlimited {
			value = strconv.FormatInt(*c.PidsLimit, 10)
		}
		if err := h.writeFile("pids.max", value); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handle) writeFile(name, value string) error {
	path := filepath.Join(h.path, name)
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return errkind.Wrap(errkind.Cgroup, fmt.Sprintf("write %s", name), err)
	}
	return nil
}

// Attach writes pid to cgroup.procs, moving the process (and all
// future descendants) into the group. Must happen before the caller
// unshares namespaces so descendants inherit the cgroup.
func (h *Handle) Attach(pid int) error {
	if err := h.writeFile("cgroup.procs", strconv.Itoa(pid)); err != nil {
		return err
	}
	h.logger.Debug("attached process to cgroup", zap.Int("pid", pid), zap.String("path", h.path))
	return nil
}

// Cleanup kills every remaining member and removes the cgroup
// directory. It is idempotent: calling it a second time on an already
// removed cgroup is a no-op.
func (h *Handle) Cleanup() error {
	if h.path == "" {
		return nil
	}
	if _, err := os.Stat(h.path); os.IsNotExist(err) {
		return nil
	}

	if err := h.kill(); err != nil {
		h.logger.Warn("cgroup force-kill failed", zap.Error(err))
	}

	return h.removeWithRetry()
}

// kill terminates every process still in the group. cgroup.kill (when
// present) atomically kills the whole group in one write; otherwise
// every pid in cgroup.procs is sent SIGKILL individually.
func (h *Handle) kill() error {
	killPath := filepath.Join(h.path, "cgroup.kill")
	if _, err := os.Stat(killPath); err == nil {
		return os.WriteFile(killPath, []byte("1"), 0o644)
	}

	data, err := os.ReadFile(filepath.Join(h.path, "cgroup.procs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		if err := unix.Kill(pid, unix.SIGKILL); err != nil && err != unix.ESRCH {
			h.logger.Warn("signal cgroup member", zap.Int("pid", pid), zap.Error(err))
		}
	}
	return nil
}

func (h *Handle) removeWithRetry() error {
	var lastErr error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if err := os.Remove(h.path); err == nil {
			return nil
		} else if os.IsNotExist(err) {
			return nil
		} else {
			lastErr = err
		}

		delay := time.Duration(attempt) * (retryBaseDelay << uint(attempt-1))
		if delay > retryCeiling {
			delay = retryCeiling
		}
		time.Sleep(delay)
	}
	return errkind.Wrap(errkind.Cgroup, "could not delete", lastErr).Context(h.path)
}

// Guard returns a function suitable for defer that invokes Cleanup and
// logs (but does not propagate) any failure — abnormal termination
// still attempts teardown without panicking the caller.
func (h *Handle) Guard() func() {
	return func() {
		if err := h.Cleanup(); err != nil {
			h.logger.Warn("cgroup cleanup on scope exit failed", zap.Error(err))
		}
	}
}

// Stats is a best-effort read of the group's current usage, used only
// for status reporting; missing files are skipped rather than treated
// as errors.
type Stats struct {
	MemoryCurrentBytes uint64
	PidsCurrent        uint64
}

// Stats reads back a small snapshot of current usage.
func (h *Handle) Stats() Stats {
	var s Stats
	if v, err := readUint(filepath.Join(h.path, "memory.current")); err == nil {
		s.MemoryCurrentBytes = v
	}
	if v, err := readUint(filepath.Join(h.path, "pids.current")); err == nil {
		s.PidsCurrent = v
	}
	return s
}

func readUint(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
}
