package shaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSourcesDeclareContract(t *testing.T) {
	assert.Contains(t, FieldVertex, "in vec2 position;")
	for _, decl := range []string{
		"uniform float time;",
		"uniform vec2 resolution;",
		"uniform vec2 pointer;",
		"uniform float presence;",
		"uniform float density;",
		"uniform float pulse;",
	} {
		assert.Contains(t, FieldFragment, decl)
	}
	assert.NotContains(t, FieldVertex, "#version")
	assert.NotContains(t, FieldFragment, "#version")
}

func TestFragmentDefaultsToEmbedded(t *testing.T) {
	src, err := Fragment("")
	require.NoError(t, err)
	assert.Equal(t, FieldFragment, src)
}

func TestReadFromFileStripsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.frag")
	require.NoError(t, os.WriteFile(path, []byte("#version 330 core\nout vec4 fragColor;\nvoid main() {}\n\x00"), 0644))

	src, err := Fragment(path)
	require.NoError(t, err)
	assert.Equal(t, "out vec4 fragColor;\nvoid main() {}\n", src)
}

func TestReadFromFileMissing(t *testing.T) {
	_, err := Fragment(filepath.Join(t.TempDir(), "nope.frag"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
