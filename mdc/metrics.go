package mdc

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricContainersStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_mdc_containers_stored_total",
			Help: "Number of metadata containers stored",
		},
	)
	metricStoreFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_mdc_store_failed_total",
			Help: "Number of failed metadata container store attempts",
		},
	)
	metricContainersLoaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_mdc_containers_loaded_total",
			Help: "Number of metadata containers loaded from storage",
		},
	)
	metricLoadFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_mdc_load_failed_total",
			Help: "Number of failed metadata container load attempts",
		},
	)
	metricRecordsAppended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_mdc_records_appended_total",
			Help: "Number of records appended to metadata containers",
		},
	)
	metricVersionUnknown = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mdckit_mdc_version_unknown_total",
			Help: "Number of containers opened with an unknown content version",
		},
	)
)

func init() {
	prometheus.MustRegister(metricContainersStored)
	prometheus.MustRegister(metricStoreFailed)
	prometheus.MustRegister(metricContainersLoaded)
	prometheus.MustRegister(metricLoadFailed)
	prometheus.MustRegister(metricRecordsAppended)
	prometheus.MustRegister(metricVersionUnknown)
}
