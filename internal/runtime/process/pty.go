package process

import (
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/creack/pty"
	"go.uber.org/zap"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

type ptyPair struct {
	master *os.File
	slave  *os.File
}

func openPtyPair() (ptyPair, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return ptyPair{}, err
	}
	return ptyPair{master: master, slave: slave}, nil
}

// forwardedSignals are proxied to the running child. SIGHUP is
// deliberately excluded — see SPEC_FULL.md's open-question
// resolutions: the runtime's own controlling-terminal hangup must not
// be re-delivered to the child as a hangup it did not experience.
var forwardedSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// RunPTY execs argv[0] with a pty as its controlling terminal,
// forwards SIGINT/SIGTERM/SIGQUIT to it for as long as it runs, and
// proxies host stdio through the pty master. It blocks until the
// child exits and returns its mapped exit code.
func RunPTY(logger *zap.Logger, argv, env []string) (int, error) {
	pair, err := openPtyPair()
	if err != nil {
		return 0, errkind.Wrap(errkind.ProcessExecution, "open pty", err)
	}
	defer pair.master.Close()

	cmd := &exec.Cmd{
		Path:   argv[0],
		Args:   argv,
		Env:    env,
		Stdin:  pair.slave,
		Stdout: pair.slave,
		Stderr: pair.slave,
		SysProcAttr: &syscall.SysProcAttr{
			Setsid:  true,
			Setctty: true,
		},
	}

	if err := cmd.Start(); err != nil {
		pair.slave.Close()
		return 0, errkind.Wrap(errkind.ProcessExecution, "start pty-attached command", err)
	}
	pair.slave.Close()

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

	// Host stdin -> pty master runs as its own worker so the main
	// goroutine is free to pump master -> host stdout. The pump ends
	// when reading the master fails once the child's side has closed;
	// the stdin worker ends on host stdin EOF or on the first write
	// after the master is closed, which can be after RunPTY returns.
	go io.Copy(pair.master, os.Stdin) //nolint:errcheck
	_, copyErr := io.Copy(os.Stdout, pair.master)
	_ = copyErr // EIO on a closed pty master is the normal end-of-session signal

	return mapExit(cmd.Wait())
}
