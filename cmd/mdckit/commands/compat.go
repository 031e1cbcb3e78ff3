package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mpxstore/mdckit/mdcver"
	"github.com/mpxstore/mdckit/omf"
)

func init() {
	rootCmd.AddCommand(compatCmd)
}

var compatCmd = &cobra.Command{
	Use:   "compat <version>",
	Short: "Check an on-disk MDC content version against this binary",
	Long: `Compares a version identifier, as found in the version record of a
metadata container, against the versions this binary understands.
The exit code is 0 when the version is understood and 1 when it is not.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := mdcver.Parse(args[0])
		if err != nil {
			logrus.WithError(err).Fatal("Invalid version")
		}
		cur := omf.CurrentVersion()

		var rel string
		switch {
		case mdcver.Compare(v, mdcver.Eq, cur):
			rel = "equal to current"
		case mdcver.Compare(v, mdcver.LT, cur):
			rel = "older than current"
		default:
			rel = "newer than current"
		}
		fmt.Printf("version:  %s (%s %s)\n", v, rel, cur)

		if comment, ok := omf.VersionComment(v); ok {
			fmt.Printf("known:    yes\n")
			fmt.Printf("comment:  %s\n", comment)
			return
		}
		fmt.Printf("known:    no (possibly written by a newer release)\n")
		os.Exit(1)
	},
}
