package container

import (
	"go.uber.org/zap"

	"github.com/DeveloperWK/container-runtime/internal/runtime/namespace"
	"github.com/DeveloperWK/container-runtime/internal/runtime/process"
	"github.com/DeveloperWK/container-runtime/internal/runtime/rootfs"
)

// RunInit is the in-namespace continuation: it runs inside the
// re-exec'd leader produced by Boot's namespace.Manager.Spawn,
// already pid-1 in its new pid namespace. It sets the hostname, pivots
// into rootfsPath, mounts the guest pseudo-filesystems, and executes
// command. The returned int is this process's own exit code — the
// caller (cmd/container-runtime) must os.Exit with it directly so the
// outer parent's waitpid sees it.
func RunInit(logger *zap.Logger, rootfsPath, hostname, command string, args []string) int {
	if err := namespace.SetHostname(hostname); err != nil {
		logger.Error("set hostname", zap.Error(err))
		return 1
	}

	if err := rootfs.Pivot(logger, rootfsPath); err != nil {
		logger.Error("pivot root", zap.Error(err))
		return 1
	}

	if err := rootfs.MountGuestFilesystems(logger); err != nil {
		logger.Error("mount guest filesystems", zap.Error(err))
		return 1
	}

	code, err := process.Execute(logger, command, args)
	if err != nil {
		logger.Error("execute command", zap.Error(err))
		return 1
	}
	return code
}
