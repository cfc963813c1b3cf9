// Package main provides the backoffice admin CLI, a headless host for the
// resource stores. Rendering is deliberately minimal: JSON or a plain table
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
