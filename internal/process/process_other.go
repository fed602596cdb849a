//go:build !windows

package process

import "time"

// FindProcessesByName is not implemented outside Windows
func FindProcessesByName(name string) ([]ProcessInfo, error) {
	return nil, ErrUnsupported
}

// FindProcessesByPath is not implemented outside Windows
func FindProcessesByPath(executablePath string) ([]ProcessInfo, error) {
	return nil, ErrUnsupported
}

// GetProcessUptime is not implemented outside Windows
func GetProcessUptime(pid uint32) (time.Duration, error) {
	return 0, ErrUnsupported
}

// KillProcesses is not implemented outside Windows
func KillProcesses(processes []ProcessInfo) (int, error) {
	return 0, ErrUnsupported
}

// StopGame is not implemented outside Windows
func StopGame(executablePath string) (int, error) {
	return 0, ErrUnsupported
}
