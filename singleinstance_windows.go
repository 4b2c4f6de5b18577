//go:build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ensureSingleInstance checks that no other WebDrop instance is running.
// Returns a cleanup function to call on exit, or exits the process after
// raising the existing window.
func ensureSingleInstance() func() {
	mutexName, _ := windows.UTF16PtrFromString(`Local\WebDrop_SingleInstance`)

	handle, err := windows.CreateMutex(nil, false, mutexName)
	if handle == 0 {
		fmt.Println("creating the instance mutex failed:", err)
		os.Exit(1)
	}
	if err == windows.ERROR_ALREADY_EXISTS {
		fmt.Println(appTitle, "is already running")
		windows.CloseHandle(handle)
		bringExistingWindowToFront()
		os.Exit(0)
	}

	// Also create a lock file as a secondary indicator
	lockPath := filepath.Join(AppDataDir(), "webdrop.lock")
	lockFile, _ := os.Create(lockPath)
	if lockFile != nil {
		fmt.Fprintf(lockFile, "%d", os.Getpid())
	}

	return func() {
		windows.CloseHandle(handle)
		if lockFile != nil {
			lockFile.Close()
		}
		os.Remove(lockPath)
	}
}

func bringExistingWindowToFront() {
	title, _ := windows.UTF16PtrFromString(appTitle)
	hwnd, _, _ := pFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd != 0 {
		pShowWindow.Call(hwnd, swRestore)
		pSetForegroundWindow.Call(hwnd)
	}
}
