package specfile

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/suiterun/suiterun/packages/core/env"
	"github.com/suiterun/suiterun/packages/core/suite"
)

func commandFunc(command, baseDir string, resolver *env.Resolver) suite.Func {
	return func(ctx context.Context) error {
		return runCommand(ctx, command, baseDir, resolver)
	}
}

func commandHook(command, baseDir string, resolver *env.Resolver) suite.Hook {
	return func(ctx context.Context) error {
		if err := runCommand(ctx, command, baseDir, resolver); err != nil {
			return fmt.Errorf("hook failed: %w", err)
		}
		return nil
	}
}

// runCommand executes a single shell command with the suite file's
// directory as working directory and the group's variables resolved and
// exported.
func runCommand(ctx context.Context, command, baseDir string, resolver *env.Resolver) error {
	cmdStr := strings.TrimSpace(command)
	if cmdStr == "" {
		return nil
	}
	var extraEnv []string
	if resolver != nil {
		cmdStr = resolver.Resolve(cmdStr)
		extraEnv = resolver.Environ()
	}

	// Handle relative paths - if the command starts with ./ or ../ or is
	// just a filename that exists in baseDir, make it relative to baseDir
	parts := strings.Fields(cmdStr)
	if len(parts) > 0 {
		executable := parts[0]
		if strings.HasPrefix(executable, "./") || strings.HasPrefix(executable, "../") {
			parts[0] = filepath.Join(baseDir, executable)
			cmdStr = strings.Join(parts, " ")
		} else if !filepath.IsAbs(executable) && !isInPath(executable) {
			potentialPath := filepath.Join(baseDir, executable)
			if _, err := os.Stat(potentialPath); err == nil {
				parts[0] = potentialPath
				cmdStr = strings.Join(parts, " ")
			}
		}
	}

	// Execute the command using sh -c for proper shell handling
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	cmd.Dir = baseDir
	cmd.Env = append(os.Environ(), extraEnv...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("command %q failed: %v\noutput: %s", command, err, string(output))
	}
	return nil
}

// isInPath checks if a command is available in the system PATH
func isInPath(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
