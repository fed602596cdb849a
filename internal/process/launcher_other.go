//go:build !windows

package process

import (
	"os/exec"
	"path/filepath"
)

// startDetached runs the executable and reaps it in the background
func startDetached(executablePath string) error {
	cmd := exec.Command(executablePath)
	cmd.Dir = filepath.Dir(executablePath)

	if err := cmd.Start(); err != nil {
		return err
	}

	// We don't wait for it to finish
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
