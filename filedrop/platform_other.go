//go:build !windows

package filedrop

// NewNativePlatform is unavailable off Windows.
func NewNativePlatform() (Platform, error) {
	return nil, ErrUnsupportedPlatform
}

// OleInitialize is a no-op off Windows.
func OleInitialize() error {
	return nil
}
