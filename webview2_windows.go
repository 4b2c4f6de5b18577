//go:build windows

package main

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const webView2DownloadURL = "https://go.microsoft.com/fwlink/p/?LinkId=2124703"

// isWebView2SystemInstalled checks for the system-installed WebView2 Evergreen
// Runtime via registry, Windows version and filesystem checks.
func isWebView2SystemInstalled() bool {
	const wv2GUID = `{F3017226-FE2A-4295-8BEF-335AE1BC7588}`

	keys := []struct {
		root registry.Key
		path string
	}{
		{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Microsoft\EdgeUpdate\Clients\` + wv2GUID},
		{registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\EdgeUpdate\Clients\` + wv2GUID},
		{registry.CURRENT_USER, `SOFTWARE\Microsoft\EdgeUpdate\Clients\` + wv2GUID},
	}

	for _, k := range keys {
		key, err := registry.OpenKey(k.root, k.path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		pv, _, err := key.GetStringValue("pv")
		key.Close()
		// An uninstalled runtime can leave the key behind with pv 0.0.0.0.
		if err == nil && pv != "" && pv != "0.0.0.0" {
			Log.Debug("WebView2 runtime found in registry", "version", pv)
			return true
		}
	}

	// Windows 11+ ships WebView2 as part of the OS
	if isWindows11OrLater() {
		return true
	}

	// Some Win10 systems have WebView2 via Edge updates but lack the
	// EdgeUpdate registry key.
	return isWebView2EvergreenOnDisk()
}

// isWebView2EvergreenOnDisk checks known filesystem paths for system-installed WebView2.
func isWebView2EvergreenOnDisk() bool {
	candidates := []string{
		os.Getenv("ProgramFiles(x86)"),
		os.Getenv("ProgramFiles"),
		os.Getenv("LOCALAPPDATA"),
	}
	for _, root := range candidates {
		if root == "" {
			continue
		}
		appDir := filepath.Join(root, "Microsoft", "EdgeWebView", "Application")
		entries, err := os.ReadDir(appDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(appDir, entry.Name(), "msedgewebview2.exe")); err == nil {
				return true
			}
		}
	}
	return false
}

// isWindows11OrLater returns true if the OS is Windows 11 or later (build >= 22000).
func isWindows11OrLater() bool {
	return windows.RtlGetVersion().BuildNumber >= 22000
}
