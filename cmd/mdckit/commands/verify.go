package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/PowerDNS/simpleblob"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wojas/go-healthz"
	"golang.org/x/sync/errgroup"

	"github.com/mpxstore/mdckit/pool"
	"github.com/mpxstore/mdckit/status"
)

var onlyOnce bool

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().BoolVar(&onlyOnce, "only-once", false, "Only do a single sweep and exit")
}

func runVerify() error {
	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	st, err := simpleblob.GetBackend(ctx, conf.Storage.Type, conf.Storage.Options)
	if err != nil {
		return err
	}
	logrus.WithField("storage_type", conf.Storage.Type).Info("Storage backend initialised")

	v := pool.NewVerifier(st, conf.Verifier)

	if onlyOnce {
		stats, err := v.Sweep(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("pools=%d containers=%d exact=%d older-known=%d unknown=%d corrupt=%d\n",
			stats.Pools, stats.Containers, stats.Exact, stats.OlderKnown,
			stats.Unknown, stats.Corrupt)
		if stats.Unknown > 0 || stats.Corrupt > 0 {
			os.Exit(1)
		}
		return nil
	}

	healthz.AddBuildInfo()
	if hostname, err := os.Hostname(); err == nil {
		healthz.SetMeta("hostname", hostname)
	}
	healthz.SetMeta("version", version)
	status.StartHTTPServer(conf)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return v.Run(ctx)
	})
	logrus.Info("Verifier running")
	return eg.Wait()
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Sweep storage and verify container format versions",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runVerify(); err != nil {
			logrus.WithError(err).Fatal("Error")
		}
	},
}
