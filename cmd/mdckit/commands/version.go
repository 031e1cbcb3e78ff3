package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpxstore/mdckit/omf"
)

var version = "dev"

func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the binary and MDC content format versions",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Just override the root one for this command and do nothing
		// (no config loading)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cur := omf.CurrentVersion()
		comment, _ := omf.VersionComment(cur)
		fmt.Printf("mdckit %s\n", version)
		fmt.Printf("MDC content version %s (%s)\n", cur, comment)
	},
}
