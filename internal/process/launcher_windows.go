package process

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// startDetached opens the file through the shell so its default handler runs,
// the same as double-clicking it in Explorer
func startDetached(executablePath string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(executablePath)
	if err != nil {
		return err
	}
	dir, err := windows.UTF16PtrFromString(filepath.Dir(executablePath))
	if err != nil {
		return err
	}

	return windows.ShellExecute(0, verb, file, nil, dir, windows.SW_SHOWNORMAL)
}
