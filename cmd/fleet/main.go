// Package main provides the fleet CLI.
package main

import (
	"fmt"
	"os"

	"github.com/JLJones1696/Vehicle-Manager/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		fmt.Fprintln(os.Stderr, "fleet:", err)
		os.Exit(classifyExit(err))
	}
}
