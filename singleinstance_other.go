//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ensureSingleInstance checks that no other WebDrop instance is running.
// Returns a cleanup function to call on exit, or exits the process if another instance is found.
func ensureSingleInstance() func() {
	lockPath := filepath.Join(AppDataDir(), "webdrop.lock")

	if lockHeldByLiveProcess(lockPath) {
		fmt.Println(appTitle, "is already running")
		os.Exit(0)
	}

	// Write our PID
	lockFile, _ := os.Create(lockPath)
	if lockFile != nil {
		fmt.Fprintf(lockFile, "%d", os.Getpid())
		lockFile.Close()
	}

	return func() {
		os.Remove(lockPath)
	}
}

// lockHeldByLiveProcess reports whether the lock file names a running process
// other than this one.
func lockHeldByLiveProcess(lockPath string) bool {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid == os.Getpid() {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds; signal 0 checks liveness.
	return process.Signal(syscall.Signal(0)) == nil
}
