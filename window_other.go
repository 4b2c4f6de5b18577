//go:build !windows

package main

import (
	"fmt"

	"webdrop/filedrop"
)

// runWindow has nothing to host off Windows: there is no WebView2 and no OLE
// drop target to tap.
func runWindow(app *DesktopApp) error {
	if _, err := filedrop.NewNativePlatform(); err != nil {
		return fmt.Errorf("%s cannot run here: %w", appTitle, err)
	}
	return nil
}
