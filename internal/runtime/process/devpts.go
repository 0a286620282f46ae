package process

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// devptsOptions are the mount options a container needs: a
// private instance, world-writable ptmx (login programs chmod/chown
// the slave themselves), and a group-writable default slave mode.
const devptsOptions = "newinstance,ptmxmode=0666,mode=0620"

// EnsureDevPts creates /dev/pts if absent, mounts a devpts instance
// there (an already-mounted instance, EBUSY, is accepted silently),
// and makes /dev/ptmx a symlink to the instance's ptmx node. Failures
// here do not abort the run: the caller falls back to the direct
// (non-pty) execution path.
func EnsureDevPts(logger *zap.Logger) {
	if err := os.MkdirAll("/dev/pts", 0o755); err != nil {
		logger.Warn("create /dev/pts", zap.Error(err))
		return
	}

	if err := unix.Mount("devpts", "/dev/pts", "devpts", 0, devptsOptions); err != nil {
		if err != unix.EBUSY {
			logger.Warn("mount devpts", zap.Error(err))
		}
	}

	const ptmxTarget = "/dev/pts/ptmx"
	existing, err := os.Readlink("/dev/ptmx")
	if err == nil && existing == ptmxTarget {
		return
	}
	if err == nil {
		if rmErr := os.Remove("/dev/ptmx"); rmErr != nil {
			logger.Warn("replace existing /dev/ptmx", zap.Error(rmErr))
			return
		}
	}
	if err := os.Symlink(ptmxTarget, "/dev/ptmx"); err != nil {
		logger.Warn("symlink /dev/ptmx", zap.Error(err))
	}
}

// probePty reports whether a pty can be opened, without keeping it —
// the real pty used by the run is opened fresh by RunPTY.
func probePty() bool {
	ok, err := openPtyPair()
	if err == nil {
		ok.master.Close()
		ok.slave.Close()
	}
	return err == nil
}
