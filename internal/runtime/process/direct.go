package process

import (
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// RunDirect execs argv[0] with the host's own stdio (no pty), used
// when EnsureDevPts/probePty could not obtain a terminal. The same
// SIGINT/SIGTERM/SIGQUIT forwarding discipline as RunPTY applies.
func RunDirect(argv, env []string) (int, error) {
	cmd := &exec.Cmd{
		Path:   argv[0],
		Args:   argv,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	if err := cmd.Start(); err != nil {
		return 0, errkind.Wrap(errkind.ProcessExecution, "start command", err)
	}

	var childPID atomic.Int64
	childPID.Store(int64(cmd.Process.Pid))
	defer childPID.Store(0)

	sigCh := make(chan os.Signal, 8)
	signal.Notify(sigCh, forwardedSignals...)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			if pid := childPID.Load(); pid != 0 {
				_ = syscall.Kill(int(pid), sig.(syscall.Signal))
			}
		}
	}()

	return mapExit(cmd.Wait())
}
