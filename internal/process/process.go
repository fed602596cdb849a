// Package process launches games and tracks the processes they start.
// Process queries are implemented for Windows; other platforms report ErrUnsupported.
package process

import "time"

// ProcessInfo represents information about a running process
type ProcessInfo struct {
	PID  uint32
	Name string
	Path string
}

// Status is the running state of one game executable
type Status struct {
	Running   bool
	Processes []ProcessInfo
	Uptime    time.Duration
}

// GameStatus reports whether the executable at path is running, and for how long
// its oldest process has been alive
func GameStatus(executablePath string) (Status, error) {
	processes, err := FindProcessesByPath(executablePath)
	if err != nil {
		return Status{}, err
	}
	if len(processes) == 0 {
		return Status{}, nil
	}

	return Status{
		Running:   true,
		Processes: processes,
		Uptime:    OldestUptime(processes),
	}, nil
}

// OldestUptime returns the longest uptime among processes, ignoring ones that cannot be queried
func OldestUptime(processes []ProcessInfo) time.Duration {
	var oldest time.Duration
	for _, proc := range processes {
		uptime, err := GetProcessUptime(proc.PID)
		if err != nil {
			continue
		}
		if uptime > oldest {
			oldest = uptime
		}
	}
	return oldest
}
