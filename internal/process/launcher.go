package process

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrExecutableNotFound is returned when a launch target is missing or not a file
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrUnsupported is returned by process queries the platform cannot answer
	ErrUnsupported = errors.New("not supported on this platform")
)

// LaunchGame starts the executable at path and returns without waiting for it.
// The path is checked first; the process runs with its own directory as working directory.
func LaunchGame(executablePath string) error {
	if executablePath == "" {
		return fmt.Errorf("%w: empty path", ErrExecutableNotFound)
	}

	info, err := os.Stat(executablePath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, executablePath)
	}

	if err := startDetached(executablePath); err != nil {
		return fmt.Errorf("failed to launch %s: %w", executablePath, err)
	}

	return nil
}
