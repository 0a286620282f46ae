package process

import (
	"strings"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// DefaultEnv is the fixed environment handed to the executed command.
// It is deliberately not derived from the runtime's own environment:
// the container's process view must not leak host environment state.
var DefaultEnv = []string{
	"PATH=/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin",
	"TERM=xterm",
	"HOME=/root",
	"HOSTNAME=rust-container",
	"container=rust-container-runtime",
}

// BuildArgv assembles [resolvedPath, args...], rejecting any element
// containing a NUL byte (which cannot be represented as a
// NUL-terminated C string).
func BuildArgv(resolvedPath string, args []string) ([]string, error) {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, resolvedPath)
	argv = append(argv, args...)

	for _, a := range argv {
		if strings.IndexByte(a, 0) >= 0 {
			return nil, errkind.New(errkind.InvalidString, "argument contains a NUL byte")
		}
	}
	return argv, nil
}
