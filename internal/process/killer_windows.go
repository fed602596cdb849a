package process

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// KillProcesses terminates the given processes and returns how many were stopped
func KillProcesses(processes []ProcessInfo) (int, error) {
	if len(processes) == 0 {
		return 0, nil
	}

	killedCount := 0
	var lastError error

	for _, proc := range processes {
		handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, proc.PID)
		if err != nil {
			lastError = fmt.Errorf("failed to open process %d: %w", proc.PID, err)
			continue
		}

		// Terminate the process with exit code 1
		err = windows.TerminateProcess(handle, 1)
		_ = windows.CloseHandle(handle)

		if err != nil {
			lastError = fmt.Errorf("failed to terminate process %d: %w", proc.PID, err)
			continue
		}

		killedCount++
	}

	if killedCount == 0 && lastError != nil {
		return 0, fmt.Errorf("failed to kill any processes: %w", lastError)
	}

	return killedCount, nil
}

// StopGame terminates every process started from the executable at path
func StopGame(executablePath string) (int, error) {
	processes, err := FindProcessesByPath(executablePath)
	if err != nil {
		return 0, fmt.Errorf("failed to find processes: %w", err)
	}

	return KillProcesses(processes)
}
