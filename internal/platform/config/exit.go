package config

import (
	"fmt"
	"os"
	"strings"
)

// Exitf writes a formatted message to stderr and exits with status 1. Mains
// use it for unrecoverable startup failures.
func Exitf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, strings.TrimRight(msg, "\n"))
	os.Exit(1)
}
