package specfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_Success(t *testing.T) {
	assert.NoError(t, runCommand(context.Background(), "true", t.TempDir(), nil))
}

func TestRunCommand_EmptyIsNoop(t *testing.T) {
	assert.NoError(t, runCommand(context.Background(), "   ", t.TempDir(), nil))
}

func TestRunCommand_FailureIncludesOutput(t *testing.T) {
	err := runCommand(context.Background(), "echo oh no; exit 1", t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oh no")
}

func TestRunCommand_RelativeScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "hello.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0755))

	assert.NoError(t, runCommand(context.Background(), "./hello.sh", dir, nil))
}

func TestRunCommand_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runCommand(context.Background(), "touch marker", dir, nil))
	_, err := os.Stat(filepath.Join(dir, "marker"))
	assert.NoError(t, err)
}

func TestCommandHook_WrapsError(t *testing.T) {
	hook := commandHook("exit 7", t.TempDir(), nil)
	err := hook(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook failed")
}
