// Package process resolves, launches, and reaps the command that runs
// as the container's pid 1, proxying a pty when one is available and
// forwarding interactive signals to it.
package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// searchPath is the fixed set of directories probed, in order, for a
// bare (non-absolute) command name.
var searchPath = []string{"/bin", "/usr/bin", "/sbin", "/usr/sbin"}

// ResolvePath finds the executable a bare command name refers to. An
// absolute command is used verbatim. Otherwise each directory in
// searchPath is tried in order; if none contain it, /bin/<command> is
// the fallback. The final resolved path must exist on disk.
func ResolvePath(command string) (string, error) {
	if strings.HasPrefix(command, "/") {
		return requireExists(command)
	}

	for _, dir := range searchPath {
		candidate := filepath.Join(dir, command)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return requireExists(filepath.Join("/bin", command))
}

func requireExists(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", errkind.New(errkind.ProcessExecution, fmt.Sprintf("Command not found: %s", path))
	}
	return path, nil
}
