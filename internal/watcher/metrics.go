package watcher

import "github.com/prometheus/client_golang/prometheus"

var (
	transfersInspected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "apechain",
		Subsystem: "buybot",
		Name:      "transfers_inspected",
		Help:      "The total number of transfer items inspected by watcher ticks",
	})
	notificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "apechain",
		Subsystem: "buybot",
		Name:      "notifications_sent",
		Help:      "The total number of buy alerts dispatched",
	})
	fetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apechain",
			Subsystem: "buybot",
			Name:      "fetch_errors",
			Help:      "Upstream fetch failures by classification",
		},
		[]string{"kind"},
	)
	watchersActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "apechain",
		Subsystem: "buybot",
		Name:      "watchers_active",
		Help:      "The current number of running watch sessions",
	})
)

func init() {
	prometheus.MustRegister(transfersInspected)
	prometheus.MustRegister(notificationsSent)
	prometheus.MustRegister(fetchErrors)
	prometheus.MustRegister(watchersActive)
}
