//go:build windows

package main

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/wailsapp/go-webview2/pkg/edge"
	"golang.org/x/sys/windows"

	"webdrop/filedrop"
)

// Win32 API references for the main window.
var (
	user32dll   = windows.NewLazySystemDLL("user32.dll")
	kernel32dll = windows.NewLazySystemDLL("kernel32.dll")

	pRegisterClassExW    = user32dll.NewProc("RegisterClassExW")
	pCreateWindowExW     = user32dll.NewProc("CreateWindowExW")
	pDefWindowProcW      = user32dll.NewProc("DefWindowProcW")
	pShowWindow          = user32dll.NewProc("ShowWindow")
	pUpdateWindow        = user32dll.NewProc("UpdateWindow")
	pGetMessageW         = user32dll.NewProc("GetMessageW")
	pTranslateMessage    = user32dll.NewProc("TranslateMessage")
	pDispatchMessageW    = user32dll.NewProc("DispatchMessageW")
	pPostQuitMessage     = user32dll.NewProc("PostQuitMessage")
	pGetSystemMetrics    = user32dll.NewProc("GetSystemMetrics")
	pGetWindowRect       = user32dll.NewProc("GetWindowRect")
	pLoadCursorW         = user32dll.NewProc("LoadCursorW")
	pFindWindowW         = user32dll.NewProc("FindWindowW")
	pSetForegroundWindow = user32dll.NewProc("SetForegroundWindow")
	pGetModuleHandleW    = kernel32dll.NewProc("GetModuleHandleW")
)

// Win32 constants
const (
	wsOverlappedWindow = 0x00CF0000
	swShow             = 5
	swRestore          = 9
	smCxscreen         = 0
	smCyscreen         = 1
	wmDestroy          = 0x0002
	wmMove             = 0x0003
	wmSize             = 0x0005
	sizeRestored       = 0
	idcArrow           = 32512
	colorWindow        = 5
	mbOK               = 0x00000000
	mbIconError        = 0x00000010
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     uintptr
	hIcon         uintptr
	hCursor       uintptr
	hbrBackground uintptr
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       uintptr
}

type winPoint struct{ x, y int32 }
type winRect struct{ left, top, right, bottom int32 }
type winMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      winPoint
}

var errWebView2Missing = errors.New("WebView2 runtime is not installed")

// mainWindow is the single top-level window. It is only touched from the
// UI thread.
var mainWindow struct {
	hwnd     uintptr
	cfg      *AppConfig
	chromium *edge.Chromium
}

func mainWndProc(hwnd, umsg, wParam, lParam uintptr) uintptr {
	switch umsg {
	case wmSize:
		if c := mainWindow.chromium; c != nil {
			c.Resize()
		}
		if wParam == sizeRestored {
			rememberWindowSize(hwnd)
		}
		return 0
	case wmMove:
		if c := mainWindow.chromium; c != nil {
			c.NotifyParentWindowPositionChanged()
		}
	case wmDestroy:
		pPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := pDefWindowProcW.Call(hwnd, umsg, wParam, lParam)
	return ret
}

// rememberWindowSize keeps the outer size in the config; it is written on
// shutdown.
func rememberWindowSize(hwnd uintptr) {
	var r winRect
	if ok, _, _ := pGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ok == 0 || mainWindow.cfg == nil {
		return
	}
	if w, h := int(r.right-r.left), int(r.bottom-r.top); w > 0 && h > 0 {
		mainWindow.cfg.WindowWidth = w
		mainWindow.cfg.WindowHeight = h
	}
}

func createMainWindow(cfg *AppConfig) (uintptr, error) {
	hInst, _, _ := pGetModuleHandleW.Call(0)
	className, _ := windows.UTF16PtrFromString("WebDropMain")
	cursor, _, _ := pLoadCursorW.Call(0, idcArrow)

	wc := wndClassEx{
		lpfnWndProc:   windows.NewCallback(mainWndProc),
		hInstance:     hInst,
		hCursor:       cursor,
		hbrBackground: colorWindow + 1,
		lpszClassName: className,
	}
	wc.cbSize = uint32(unsafe.Sizeof(wc))
	if atom, _, err := pRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		return 0, fmt.Errorf("RegisterClassExW: %w", err)
	}

	w, h := cfg.WindowWidth, cfg.WindowHeight
	sw, _, _ := pGetSystemMetrics.Call(smCxscreen)
	sh, _, _ := pGetSystemMetrics.Call(smCyscreen)
	x := max((int(sw)-w)/2, 0)
	y := max((int(sh)-h)/2, 0)

	title, _ := windows.UTF16PtrFromString(appTitle)
	hwnd, _, err := pCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		wsOverlappedWindow,
		uintptr(x), uintptr(y), uintptr(w), uintptr(h),
		0, 0, hInst, 0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %w", err)
	}
	return hwnd, nil
}

// dropDelegates picks what the interceptors forward to.
func dropDelegates(cfg *AppConfig, chromium *edge.Chromium) filedrop.DelegateSource {
	if cfg.Delegate == DelegateComposition {
		return filedrop.CompositionDelegates(uintptr(unsafe.Pointer(chromium.GetController())))
	}
	return filedrop.PreviousTargets()
}

// runWindow owns the UI thread: it creates the window, embeds WebView2,
// installs drop interception and pumps messages until the window closes.
func runWindow(app *DesktopApp) error {
	// OLE and the window belong to this thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := filedrop.OleInitialize(); err != nil {
		return fmt.Errorf("OleInitialize: %w", err)
	}

	if !isWebView2SystemInstalled() {
		showError("The Microsoft Edge WebView2 Runtime is not installed.\n\nDownload it from:\n" + webView2DownloadURL)
		return errWebView2Missing
	}

	platform, err := filedrop.NewNativePlatform()
	if err != nil {
		return err
	}

	hwnd, err := createMainWindow(app.cfg)
	if err != nil {
		return err
	}
	mainWindow.hwnd = hwnd
	mainWindow.cfg = app.cfg

	app.startup()

	chromium := edge.NewChromium()
	chromium.DataPath = DataPath("webview2")
	chromium.SetErrorCallback(func(err error) {
		Log.Error("WebView2 error", "error", err)
		showError(err.Error())
	})
	mainWindow.chromium = chromium

	if !chromium.Embed(hwnd) {
		app.shutdown()
		return errors.New("embedding WebView2 failed")
	}
	chromium.Resize()

	app.attach(chromium, filedrop.NewController(platform))
	delegates := dropDelegates(app.cfg, chromium)
	chromium.NavigationCompletedCallback = func(*edge.ICoreWebView2, *edge.ICoreWebView2NavigationCompletedEventArgs) {
		app.installDrop(filedrop.Handle(hwnd), delegates)
	}
	chromium.MessageCallback = func(msg string, _ *edge.ICoreWebView2, _ *edge.ICoreWebView2WebMessageReceivedEventArgs) {
		app.handleMessage(msg)
	}

	if app.cfg.StartURL != "" {
		chromium.Navigate(app.cfg.StartURL)
	} else {
		chromium.NavigateToString(indexHTML)
	}

	pShowWindow.Call(hwnd, swShow)
	pUpdateWindow.Call(hwnd)
	Log.Info("main window shown", "hwnd", hwnd, "delegate", app.cfg.Delegate)

	var m winMsg
	for {
		ret, _, _ := pGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
		pTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		pDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}

	chromium.ShuttingDown()
	app.shutdown()
	mainWindow.chromium = nil
	return nil
}

func showError(message string) {
	text, _ := windows.UTF16PtrFromString(message)
	title, _ := windows.UTF16PtrFromString(appTitle)
	windows.MessageBox(0, text, title, mbOK|mbIconError)
}
