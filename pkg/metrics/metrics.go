package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	ContactsImported prometheus.Counter
	ImportFailures   prometheus.Counter
	MessagesSent     *prometheus.CounterVec
	ProviderEvents   *prometheus.CounterVec
	BrokerPublishes  *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ContactsImported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contacts_imported_total",
			Help:      "Total number of contacts created through CSV import",
		}),
		ImportFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_failures_total",
			Help:      "Total number of CSV imports that were rolled back",
		}),
		MessagesSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Total number of messages marked sent",
		}, []string{"channel"}),
		ProviderEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_events_total",
			Help:      "Total number of inbound provider events recorded",
		}, []string{"provider", "kind"}),
		BrokerPublishes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broker_publishes_total",
			Help:      "Total number of broker publish attempts",
		}, []string{"channel", "status"}),
	}
}
