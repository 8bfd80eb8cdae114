// Version command for the fleet CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI release version.
const Version = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fleet version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fleet", Version)
	},
}
