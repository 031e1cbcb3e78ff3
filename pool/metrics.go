package pool

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricSweeps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_verifier_sweeps_total",
			Help: "Number of completed verification sweeps",
		},
	)
	metricSweepFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_verifier_sweeps_failed_total",
			Help: "Number of failed verification sweeps",
		},
	)
	metricContainersSeen = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_verifier_containers_total",
			Help: "Number of containers checked by verification sweeps",
		},
	)
	metricCompatSeen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mdckit_verifier_containers_by_compat",
			Help: "Containers seen in the last sweep by compatibility class",
		},
		[]string{"compat"},
	)
)

func init() {
	prometheus.MustRegister(metricSweeps)
	prometheus.MustRegister(metricSweepFailed)
	prometheus.MustRegister(metricContainersSeen)
	prometheus.MustRegister(metricCompatSeen)
}
