package filedrop

import (
	"errors"

	ole "github.com/go-ole/go-ole"
)

// Native status codes seen at the OLE boundary.
const (
	comSOK                     = ole.S_OK
	comSFalse                  = 0x00000001
	comEFail                   = ole.E_FAIL
	comEUnexpected             = ole.E_UNEXPECTED
	comEInvalidArg             = ole.E_INVALIDARG
	comENoInterface            = ole.E_NOINTERFACE
	dvEFormatEtc               = 0x80040064
	dragDropENotRegistered     = 0x80040100
	dragDropEAlreadyRegistered = 0x80040101
	dragDropEInvalidHwnd       = 0x80040102
)

var (
	// ErrUnsupportedPlatform is returned by NewNativePlatform where there is
	// no native drop target protocol to tap.
	ErrUnsupportedPlatform = errors.New("filedrop: native drop interception is only available on windows")

	// ErrNoDelegate is returned when the engine's drop target cannot be
	// reached. It carries E_NOINTERFACE to the OS.
	ErrNoDelegate = ole.NewErrorWithDescription(comENoInterface, "drop target delegate unavailable")
)

// hresultError turns a native return value into an error. Only the low 32
// bits of the register hold the HRESULT.
func hresultError(hr uintptr) error {
	hr = uintptr(uint32(hr))
	if hr == comSOK {
		return nil
	}
	return ole.NewError(hr)
}

// HResultOf maps an error returned by a notification handler back to the
// native status code. Errors that carry no HRESULT become E_FAIL.
func HResultOf(err error) uintptr {
	if err == nil {
		return comSOK
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		return oleErr.Code()
	}
	return comEFail
}

func hasCode(err error, hr uintptr) bool {
	return err != nil && HResultOf(err) == hr
}

// IsNotFileList reports whether err means the data object carries no
// CF_HDROP payload, as for dragged text or links.
func IsNotFileList(err error) bool {
	return hasCode(err, dvEFormatEtc)
}

// IsNotRegistered reports whether err is RevokeDragDrop's answer for a
// window that had no drop target.
func IsNotRegistered(err error) bool {
	return hasCode(err, dragDropENotRegistered)
}
