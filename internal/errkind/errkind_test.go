package errkind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextPreservesKind(t *testing.T) {
	err := New(Filesystem, "rootfs missing")
	decorated := err.Context("validating rootfs")

	assert.Equal(t, Filesystem, decorated.Kind())
	assert.Equal(t, "[Filesystem] validating rootfs: rootfs missing", decorated.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(Cgroup, "could not delete", cause)

	assert.Equal(t, Cgroup, err.Kind())
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesKind(t *testing.T) {
	err := New(RootRequired, "must run as root")
	assert.True(t, Is(err, RootRequired))
	assert.False(t, Is(err, Cgroup))
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), Io))
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Io:                   "Io",
		Syscall:              "Syscall",
		NamespaceSetup:       "NamespaceSetup",
		Filesystem:           "Filesystem",
		ProcessExecution:     "ProcessExecution",
		Cgroup:               "Cgroup",
		InvalidConfiguration: "InvalidConfiguration",
		Initialization:       "Initialization",
		RootRequired:         "RootRequired",
		InvalidString:        "InvalidString",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
