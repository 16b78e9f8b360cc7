package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DispatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_dispatches_total",
		Help: "Dispatch calls by channel and outcome",
	}, []string{"channel", "outcome"})
	MessagesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_messages_sent_total",
		Help: "Messages accepted by a gateway",
	}, []string{"channel"})
	MessagesFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_messages_failed_total",
		Help: "Messages a gateway did not accept",
	}, []string{"channel"})
	CreditsDebited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_credits_debited_total",
		Help: "Credits consumed by successful sends",
	}, []string{"channel"})
	DispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "messaging_dispatch_seconds",
		Help:    "Time to resolve, send and settle one dispatch",
		Buckets: prometheus.DefBuckets,
	}, []string{"channel"})
)

func init() {
	prometheus.MustRegister(
		DispatchesTotal,
		MessagesSent,
		MessagesFailed,
		CreditsDebited,
		DispatchDuration,
	)
}
