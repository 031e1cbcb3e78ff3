package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PowerDNS/simpleblob"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mpxstore/mdckit/mdc"
	"github.com/mpxstore/mdckit/omf"
	"github.com/mpxstore/mdckit/pool"
)

var inspectRecords bool

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectRecords, "records", false, "Dump every record, not just the summary")
}

func inspectContainer(st simpleblob.Interface, name string) error {
	r, err := mdc.Fetch(rootCtx, st, name)
	if err != nil {
		return err
	}

	fmt.Printf("\n### %s\n\n", name)
	fmt.Printf("content version:  %s (compat: %s)\n", r.Version(), r.Compat())
	if comment, ok := r.Comment(); ok {
		fmt.Printf("version comment:  %s\n", comment)
	}
	if wb := r.WrittenBy(); wb != "" {
		fmt.Printf("written by:       %s\n", wb)
	}
	if r.Compat() == mdc.CompatUnknown {
		fmt.Printf("records:          not shown, unknown content version\n")
		return nil
	}

	counts := make(map[omf.RecordType]int)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		counts[rec.Type]++
		if inspectRecords {
			fmt.Printf("%-22s %4d bytes\n", rec.Type, len(rec.Payload))
		}
	}

	types := lo.Keys(counts)
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	summary := lo.Map(types, func(rt omf.RecordType, _ int) string {
		return fmt.Sprintf("%s=%d", rt, counts[rt])
	})
	fmt.Printf("records:          %s\n", strings.Join(summary, " "))
	return nil
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [pool or blob name]...",
	Short: "Show version and record details of metadata containers",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := simpleblob.GetBackend(rootCtx, conf.Storage.Type, conf.Storage.Options)
		if err != nil {
			logrus.WithError(err).Fatal("Storage backend init failed")
		}

		var names []string
		if len(args) == 0 {
			pools, err := pool.ListPools(rootCtx, st)
			if err != nil {
				logrus.WithError(err).Fatal("List pools failed")
			}
			args = pools
		}
		for _, arg := range args {
			if strings.HasSuffix(arg, mdc.Extension) {
				names = append(names, arg)
				continue
			}
			// Argument is a pool name
			nis, err := pool.New(arg, st).Scan(rootCtx)
			if err != nil {
				logrus.WithError(err).WithField("pool", arg).Fatal("Scan failed")
			}
			for _, ni := range nis {
				names = append(names, ni.FullName)
			}
		}

		for _, name := range names {
			if err := inspectContainer(st, name); err != nil {
				logrus.WithError(err).WithField("blob", name).Error("Inspect failed")
			}
		}
	},
}
