//go:build !windows

package utils

import (
	"fmt"
	"os"
)

// ShowDialog prints to stderr where no native dialog is available.
func ShowDialog(title, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}
