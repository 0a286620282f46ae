package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathAbsoluteVerbatim(t *testing.T) {
	path, err := ResolvePath("/bin/true")
	require.NoError(t, err)
	assert.Equal(t, "/bin/true", path)
}

func TestResolvePathAbsoluteMissingFails(t *testing.T) {
	_, err := ResolvePath("/no/such/binary")
	assert.Error(t, err)
}

func TestResolvePathSearchesFixedDirs(t *testing.T) {
	path, err := ResolvePath("true")
	require.NoError(t, err)
	assert.Contains(t, searchPath, path[:len(path)-len("/true")])
}

func TestResolvePathDefaultsToBinWhenNotFound(t *testing.T) {
	_, err := ResolvePath("definitely-not-a-real-command")
	assert.ErrorContains(t, err, "/bin/definitely-not-a-real-command")
}
