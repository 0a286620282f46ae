package cgroup

import (
	"os"
	"path/filepath"
)

// Root is the conventional cgroup v2 unified hierarchy mount point. It
// is a variable (not a constant) so tests can point it at a scratch
// directory instead of the real /sys/fs/cgroup.
var Root = "/sys/fs/cgroup"

// Version identifies which cgroup hierarchy generation is mounted.
type Version int

const (
	Unsupported Version = iota
	V1
	V2
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return "unsupported"
	}
}

// Detect reports which cgroup hierarchy is in effect. The presence of
// cgroup.controllers at the root is the unified-hierarchy (v2) tell;
// its absence means a v1 (or hybrid) mount, which this runtime accepts
// as detected but does not implement.
func Detect() Version {
	if _, err := os.Stat(filepath.Join(Root, "cgroup.controllers")); err == nil {
		return V2
	}
	if _, err := os.Stat(Root); err == nil {
		return V1
	}
	return Unsupported
}
