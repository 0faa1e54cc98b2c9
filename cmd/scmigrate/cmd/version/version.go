package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scmigrate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scmigrate %s\n", Version)
	},
}
