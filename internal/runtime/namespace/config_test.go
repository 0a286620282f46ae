package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestDefaultExcludesUser(t *testing.T) {
	c := Default()
	assert.True(t, c.PID)
	assert.True(t, c.Net)
	assert.True(t, c.Mount)
	assert.True(t, c.UTS)
	assert.True(t, c.IPC)
	assert.False(t, c.User)
}

func TestFlagsEmptyConfigIsZero(t *testing.T) {
	assert.Equal(t, uintptr(0), Config{}.Flags())
}

func TestFlagsDefaultConfig(t *testing.T) {
	want := uintptr(unix.CLONE_NEWPID | unix.CLONE_NEWNET | unix.CLONE_NEWNS | unix.CLONE_NEWUTS | unix.CLONE_NEWIPC)
	assert.Equal(t, want, Default().Flags())
}

func TestFlagsUserOnly(t *testing.T) {
	assert.Equal(t, uintptr(unix.CLONE_NEWUSER), Config{User: true}.Flags())
}
