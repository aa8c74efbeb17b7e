package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted message to stderr and exits with status 1.
// Command mains use it when configuration cannot be loaded.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
