package process

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

// GetProcessCreationTime returns the creation time of a process by PID
func GetProcessCreationTime(pid uint32) (time.Time, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	defer func() {
		_ = windows.CloseHandle(handle)
	}()

	var creationTime, exitTime, kernelTime, userTime windows.Filetime
	err = windows.GetProcessTimes(handle, &creationTime, &exitTime, &kernelTime, &userTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("GetProcessTimes failed for PID %d: %w", pid, err)
	}

	return time.Unix(0, creationTime.Nanoseconds()), nil
}

// GetProcessUptime returns how long a process has been running
func GetProcessUptime(pid uint32) (time.Duration, error) {
	creationTime, err := GetProcessCreationTime(pid)
	if err != nil {
		return 0, err
	}

	return time.Since(creationTime), nil
}
