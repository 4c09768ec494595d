//go:build windows

package winproc

import "golang.org/x/sys/windows"

var (
	USER32             = windows.NewLazySystemDLL("user32.dll")
	IsIconic           = USER32.NewProc("IsIconic")
	SetProcessDpiAware = USER32.NewProc("SetProcessDPIAware")
)
