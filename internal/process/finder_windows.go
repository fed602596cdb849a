package process

import (
	"fmt"
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// FindProcessesByName finds all processes whose executable file name matches name (case-insensitive)
func FindProcessesByName(name string) ([]ProcessInfo, error) {
	// Create a snapshot of all processes
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot failed: %w", err)
	}
	defer func() {
		_ = windows.CloseHandle(snapshot)
	}()

	var procEntry windows.ProcessEntry32
	procEntry.Size = uint32(unsafe.Sizeof(procEntry))

	err = windows.Process32First(snapshot, &procEntry)
	if err != nil {
		return nil, fmt.Errorf("Process32First failed: %w", err)
	}

	var processes []ProcessInfo
	for {
		processName := syscall.UTF16ToString(procEntry.ExeFile[:])
		if strings.EqualFold(processName, name) {
			processes = append(processes, ProcessInfo{
				PID:  procEntry.ProcessID,
				Name: processName,
			})
		}

		err = windows.Process32Next(snapshot, &procEntry)
		if err != nil {
			// No more processes
			break
		}
	}

	return processes, nil
}

// FindProcessesByPath finds processes started from the executable at path.
// Processes whose image path cannot be read (protected or exited) are matched by name only.
func FindProcessesByPath(executablePath string) ([]ProcessInfo, error) {
	candidates, err := FindProcessesByName(filepath.Base(executablePath))
	if err != nil {
		return nil, err
	}

	want := filepath.Clean(executablePath)
	var matched []ProcessInfo
	for _, proc := range candidates {
		path, err := GetProcessExecutablePath(proc.PID)
		if err != nil {
			matched = append(matched, proc)
			continue
		}
		if strings.EqualFold(filepath.Clean(path), want) {
			proc.Path = path
			matched = append(matched, proc)
		}
	}

	return matched, nil
}

// GetProcessExecutablePath retrieves the full executable path of a process by PID
func GetProcessExecutablePath(pid uint32) (string, error) {
	// Limited access is enough for the image name and works across integrity levels
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	defer func() {
		_ = windows.CloseHandle(handle)
	}()

	var exePath [windows.MAX_PATH]uint16
	size := uint32(len(exePath))
	err = windows.QueryFullProcessImageName(handle, 0, &exePath[0], &size)
	if err != nil {
		return "", fmt.Errorf("QueryFullProcessImageName failed for PID %d: %w", pid, err)
	}

	return syscall.UTF16ToString(exePath[:size]), nil
}
