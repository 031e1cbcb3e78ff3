package commands

import (
	"fmt"

	"github.com/PowerDNS/simpleblob"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mpxstore/mdckit/omf"
	"github.com/mpxstore/mdckit/pool"
)

var createLabel string

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createLabel, "label", "", "Optional pool label")
}

var createCmd = &cobra.Command{
	Use:   "create <pool>",
	Short: "Initialise a pool by writing its root metadata container (MDC0)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		st, err := simpleblob.GetBackend(rootCtx, conf.Storage.Type, conf.Storage.Options)
		if err != nil {
			logrus.WithError(err).Fatal("Storage backend init failed")
		}

		cfg := omf.PoolConfigRecord{
			PoolID:      uuid.New(),
			Name:        name,
			Label:       createLabel,
			MDCCapacity: conf.Pool.MDCCapacity,
		}
		blob, err := pool.New(name, st).Create(rootCtx, cfg, "mdckit "+version)
		if err != nil {
			logrus.WithError(err).Fatal("Create failed")
		}
		fmt.Printf("created %s (pool id %s)\n", blob, cfg.PoolID)
	},
}
