package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment line
HOST=localhost
PORT = 8080
QUOTED="hello world"
SINGLE='single quoted'
EMPTY_KEY=
malformed line without equals
`), 0644))

	vars, err := LoadDotEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", vars["HOST"])
	assert.Equal(t, "8080", vars["PORT"])
	assert.Equal(t, "hello world", vars["QUOTED"])
	assert.Equal(t, "single quoted", vars["SINGLE"])
	assert.Equal(t, "", vars["EMPTY_KEY"])
	assert.NotContains(t, vars, "malformed line without equals")
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	_, err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}
