package rootfs

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
)

// Pivot replaces the process's root filesystem with path following the
// rigid ordering pivot_root requires: make the host root a recursive
// slave mount, bind-mount path onto itself so it is a mountpoint, make it
// a private mountpoint, chdir into it, pivot, return to "/", then
// detach and remove the old root. Every step is fatal except the
// initial host-propagation detach and the final cleanup steps, which
// are best-effort.
func Pivot(logger *zap.Logger, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errkind.Wrap(errkind.Filesystem, "resolve rootfs to absolute path", err)
	}

	if err := unix.Mount("", "/", "", unix.MS_SLAVE|unix.MS_REC, ""); err != nil {
		logger.Warn("detach host mount propagation", zap.Error(err))
	}

	if err := unix.Mount(absPath, absPath, "", unix.MS_BIND|unix.MS_REC, ""); err != nil {
		return errkind.Wrap(errkind.Filesystem, "bind-mount rootfs onto itself", err).Context(absPath)
	}

	if err := unix.Mount("", absPath, "", unix.MS_PRIVATE|unix.MS_REC, ""); err != nil {
		return errkind.Wrap(errkind.Filesystem, "make rootfs mount private", err).Context(absPath)
	}

	if err := unix.Chdir(absPath); err != nil {
		return errkind.Wrap(errkind.Filesystem, "chdir into rootfs", err).Context(absPath)
	}

	oldRoot := "oldroot"
	if err := os.Mkdir(oldRoot, 0o700); err != nil && !os.IsExist(err) {
		return errkind.Wrap(errkind.Filesystem, "create oldroot", err)
	}

	if err := unix.PivotRoot(".", oldRoot); err != nil {
		return errkind.Wrap(errkind.Filesystem, "pivot_root", err)
	}

	if err := unix.Chdir("/"); err != nil {
		return errkind.Wrap(errkind.Filesystem, "chdir to new root", err)
	}

	if err := unix.Unmount("/oldroot", unix.MNT_DETACH); err != nil {
		logger.Warn("detach old root", zap.Error(err))
	}
	if err := os.RemoveAll("/oldroot"); err != nil {
		logger.Warn("remove old root", zap.Error(err))
	}

	return nil
}

// MountGuestFilesystems mounts the pseudo-filesystems a container
// command expects to find post-pivot. proc is created if missing and
// its failure is fatal; sys and dev are only mounted if their
// directories already exist, and a failure there is a warning.
func MountGuestFilesystems(logger *zap.Logger) error {
	if err := os.MkdirAll("/proc", 0o555); err != nil {
		return errkind.Wrap(errkind.Filesystem, "create /proc", err)
	}
	if err := unix.Mount("proc", "/proc", "proc", 0, ""); err != nil {
		return errkind.Wrap(errkind.Filesystem, "mount /proc", err)
	}

	if _, err := os.Stat("/sys"); err == nil {
		if err := unix.Mount("sysfs", "/sys", "sysfs", 0, ""); err != nil {
			logger.Warn("mount /sys", zap.Error(err))
		}
	}

	if _, err := os.Stat("/dev"); err == nil {
		if err := unix.Mount("devtmpfs", "/dev", "devtmpfs", 0, ""); err != nil {
			logger.Warn("mount /dev", zap.Error(err))
		}
	}

	return nil
}
