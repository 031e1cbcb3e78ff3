package pool

import (
	"context"
	"time"

	"github.com/PowerDNS/simpleblob"
	"github.com/sirupsen/logrus"
	"github.com/wojas/go-healthz"
	"go.uber.org/atomic"

	"github.com/mpxstore/mdckit/config"
	"github.com/mpxstore/mdckit/mdc"
	"github.com/mpxstore/mdckit/utils"
)

// Verifier periodically sweeps the containers in storage and checks their
// content version against what this binary understands. It only reports;
// it never rewrites or deletes anything.
type Verifier struct {
	st   simpleblob.Interface
	conf config.Verifier
	l    logrus.FieldLogger

	lastSweep   atomic.Time
	lastUnknown atomic.Uint32
	lastCorrupt atomic.Uint32
}

// SweepStats summarises one verification sweep.
type SweepStats struct {
	Pools      int
	Containers int
	Exact      int
	OlderKnown int
	Unknown    int
	Corrupt    int
}

func NewVerifier(st simpleblob.Interface, conf config.Verifier) *Verifier {
	v := &Verifier{
		st:   st,
		conf: conf,
		l:    logrus.WithField("component", "verifier"),
	}
	v.registerHealth()
	return v
}

func (v *Verifier) registerHealth() {
	healthz.Register("mdc_version_check", v.conf.Interval, func() error {
		if unknown := v.lastUnknown.Load(); unknown > 0 {
			return healthz.Warnf("%d containers at unknown content version", unknown)
		}
		if corrupt := v.lastCorrupt.Load(); corrupt > 0 {
			return healthz.Warnf("%d containers failed to load", corrupt)
		}
		return nil
	})
}

// Run sweeps once per configured interval until the context is cancelled.
func (v *Verifier) Run(ctx context.Context) error {
	for {
		if _, err := v.Sweep(ctx); err != nil {
			if utils.IsCanceled(ctx) {
				return context.Canceled
			}
			v.l.WithError(err).Error("Sweep failed")
			metricSweepFailed.Inc()
		}
		if err := utils.SleepContext(ctx, v.conf.Interval); err != nil {
			return err
		}
	}
}

// Sweep verifies all configured pools once.
func (v *Verifier) Sweep(ctx context.Context) (SweepStats, error) {
	var stats SweepStats
	t0 := time.Now()

	pools := v.conf.Pools
	if len(pools) == 0 {
		var err error
		pools, err = ListPools(ctx, v.st)
		if err != nil {
			return stats, err
		}
	}

	for _, name := range pools {
		if utils.IsCanceled(ctx) {
			return stats, context.Canceled
		}
		p := New(name, v.st)
		nis, err := p.Scan(ctx)
		if err != nil {
			return stats, err
		}
		stats.Pools++
		for _, ni := range nis {
			r, err := mdc.Fetch(ctx, v.st, ni.FullName)
			if err != nil {
				v.l.WithError(err).WithField("blob", ni.FullName).Error("Container failed to load")
				stats.Corrupt++
				continue
			}
			stats.Containers++
			switch r.Compat() {
			case mdc.CompatExact:
				stats.Exact++
			case mdc.CompatOlder:
				stats.OlderKnown++
				v.l.WithFields(logrus.Fields{
					"blob":    ni.FullName,
					"version": r.Version(),
				}).Debug("Container at older known content version")
			case mdc.CompatUnknown:
				stats.Unknown++
				v.l.WithFields(logrus.Fields{
					"blob":       ni.FullName,
					"version":    r.Version(),
					"written_by": r.WrittenBy(),
				}).Warn("Container at unknown content version")
			}
		}
	}

	v.lastSweep.Store(time.Now())
	v.lastUnknown.Store(uint32(stats.Unknown))
	v.lastCorrupt.Store(uint32(stats.Corrupt))

	metricSweeps.Inc()
	metricContainersSeen.Add(float64(stats.Containers))
	metricCompatSeen.WithLabelValues("exact").Set(float64(stats.Exact))
	metricCompatSeen.WithLabelValues("older-known").Set(float64(stats.OlderKnown))
	metricCompatSeen.WithLabelValues("unknown").Set(float64(stats.Unknown))

	v.l.WithFields(logrus.Fields{
		"pools":      stats.Pools,
		"containers": stats.Containers,
		"unknown":    stats.Unknown,
		"corrupt":    stats.Corrupt,
		"time_taken": utils.TimeDiff(time.Now(), t0),
	}).Info("Sweep done")
	return stats, nil
}

// LastSweep returns the time the last successful sweep finished, zero if
// none completed yet.
func (v *Verifier) LastSweep() time.Time {
	return v.lastSweep.Load()
}
