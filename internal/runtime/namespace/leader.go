// Package namespace acquires the kernel namespaces that isolate a
// container and performs the intermediate fork that gives the
// container's command pid-1 semantics.
//
// Unsharing a pid namespace never moves the calling process into it —
// only a subsequent child does. A bare Go fork() is not safe once the
// runtime has started extra OS threads, so the fork is performed the
// idiomatic Go way: os/exec re-execs this same binary with
// SysProcAttr.Cloneflags set to the derived namespace bitmask, which
// unshares and forks in a single clone(2) call. The re-exec'd process
// carries the InitArg marker as its first argument so main() dispatches
// it into the in-namespace continuation instead of the outer runtime
// path.
package namespace

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"go.uber.org/zap"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// InitArg is the marker argv[1] value that tells a re-exec'd process
// it is running as the in-namespace leader rather than the outer
// runtime.
const InitArg = "__init__"

// Leader is the running in-namespace child, pid-1 within its new pid
// namespace (when one was requested).
type Leader struct {
	cmd *exec.Cmd
}

// Pid returns the leader's pid as seen from the outer namespace.
func (l *Leader) Pid() int {
	return l.cmd.Process.Pid
}

// Manager performs the unshare-and-fork step and reaps the resulting
// leader.
type Manager struct {
	logger *zap.Logger
}

// New returns a Manager.
func New(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Spawn starts exe with the given argv and environment under the
// clone flags derived from config. A zero flag set (no namespace
// requested) is logged as a warning and the process is still started
// — the fork itself is unconditional per the composition order, only
// the namespace isolation is optional. Callers that implement the
// self-reexec pattern are responsible for putting InitArg in argv
// themselves.
func (m *Manager) Spawn(exe string, argv, env []string, config Config, stdin io.Reader, stdout, stderr io.Writer) (*Leader, error) {
	flags := config.Flags()
	if flags == 0 {
		m.logger.Warn("namespace unshare requested with empty flag set")
	}

	cmd := exec.Command(exe, argv...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = env
	cmd.SysProcAttr = &syscall.SysProcAttr{Cloneflags: flags}

	if err := cmd.Start(); err != nil {
		return nil, errkind.Wrap(errkind.NamespaceSetup, "spawn namespaced leader", err)
	}

	m.logger.Info("leader spawned", zap.Int("pid", cmd.Process.Pid), zap.Uintptr("clone_flags", flags))
	return &Leader{cmd: cmd}, nil
}

// Reap blocks until the leader exits and maps its termination to the
// process exit-code convention: a normal exit propagates its status
// code, a signal death propagates 128+signal, and the otherwise-
// unexpected absence of a child (ECHILD, meaning it was already
// reaped) is treated as success.
func (m *Manager) Reap(l *Leader) (int, error) {
	err := l.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ws, ok := exitErr.Sys().(syscall.WaitStatus)
		if !ok {
			return 0, errkind.Wrap(errkind.NamespaceSetup, "unrecognized wait status", err)
		}
		if ws.Exited() {
			return ws.ExitStatus(), nil
		}
		if ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return 0, nil
	}

	if errors.Is(err, syscall.ECHILD) {
		return 0, nil
	}

	return 0, errkind.Wrap(errkind.NamespaceSetup, "wait for leader", err)
}

// SetHostname sets the UTS-namespace hostname. Must be called from
// inside the leader, after the fork, while the uts namespace owned by
// this process is the one being configured.
func SetHostname(name string) error {
	if err := syscall.Sethostname([]byte(name)); err != nil {
		return errkind.Wrap(errkind.NamespaceSetup, fmt.Sprintf("sethostname(%q)", name), err)
	}
	return nil
}
