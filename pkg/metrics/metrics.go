package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roi_calculations_total",
		Help: "Number of ROI calculations performed, by source.",
	}, []string{"source"})

	ReportExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roi_report_exports_total",
		Help: "Number of report exports, by format and outcome.",
	}, []string{"format", "status"})

	ReportRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roi_report_render_duration_seconds",
		Help:    "Time spent rendering a report document.",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})

	EmailDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roi_email_deliveries_total",
		Help: "Number of email deliveries, by provider and final status.",
	}, []string{"provider", "status"})

	EmailDeliveriesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roi_email_deliveries_in_flight",
		Help: "Number of email deliveries awaiting a receipt.",
	})
)
