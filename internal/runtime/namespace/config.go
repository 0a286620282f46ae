package namespace

import "golang.org/x/sys/unix"

// Config is the set of kernel namespaces the leader process should
// acquire before the intermediate fork. User namespace is included in
// the type for completeness but defaults to false: UID/GID mapping is
// a non-goal of this runtime.
type Config struct {
	PID   bool
	Net   bool
	Mount bool
	UTS   bool
	IPC   bool
	User  bool
}

// Default returns the namespace set used when a caller does not
// override it: everything except the user namespace.
func Default() Config {
	return Config{PID: true, Net: true, Mount: true, UTS: true, IPC: true}
}

// Flags derives the clone-flag bitmask for this config. A Config with
// every field false yields 0, which callers treat as "nothing to
// unshare" rather than an error.
func (c Config) Flags() uintptr {
	var flags uintptr
	if c.PID {
		flags |= unix.CLONE_NEWPID
	}
	if c.Net {
		flags |= unix.CLONE_NEWNET
	}
	if c.Mount {
		flags |= unix.CLONE_NEWNS
	}
	if c.UTS {
		flags |= unix.CLONE_NEWUTS
	}
	if c.IPC {
		flags |= unix.CLONE_NEWIPC
	}
	if c.User {
		flags |= unix.CLONE_NEWUSER
	}
	return flags
}
