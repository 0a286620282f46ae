package process

import (
	"errors"
	"os/exec"
	"syscall"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// mapExit turns the error returned by (*exec.Cmd).Wait into the exit
// code the CLI ultimately reports. A normal non-zero exit or a signal
// death is conveyed purely through the returned code — those are not
// "runtime errors"; only an unexpected failure to wait at all is. Go's
// exec package already performs the waitpid(..., 0) loop (collapsing
// EINTR internally), so this is the status-interpretation half of the
// reaper, not the syscall loop itself.
func mapExit(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ws, ok := exitErr.Sys().(syscall.WaitStatus)
		if !ok {
			return 0, errkind.Wrap(errkind.ProcessExecution, "unrecognized wait status", err)
		}
		if ws.Exited() {
			return ws.ExitStatus(), nil
		}
		if ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return 0, nil
	}

	return 0, errkind.Wrap(errkind.ProcessExecution, "wait for command", err)
}
