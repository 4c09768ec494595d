//go:build windows

package utils

import "golang.org/x/sys/windows"

// ShowDialog pops a native message box. Used for errors that happen before a
// logger exists.
func ShowDialog(title, message string) {
	t, _ := windows.UTF16PtrFromString(title)
	txt, _ := windows.UTF16PtrFromString(message)

	windows.MessageBox(0, txt, t, 0)
}
