package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the bid ledger.
type Metrics struct {
	BidsSubmitted  prometheus.Counter
	BidsUpdated    prometheus.Counter
	BidsRejected   *prometheus.CounterVec
	StakeCollected prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BidsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bid_ledger_bids_submitted_total",
			Help: "Total number of accepted bid submissions",
		}),
		BidsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bid_ledger_bids_updated_total",
			Help: "Total number of accepted bid updates",
		}),
		BidsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bid_ledger_bids_rejected_total",
			Help: "Total number of rejected ledger operations by operation and error code",
		}, []string{"operation", "code"}),
		StakeCollected: factory.NewCounter(prometheus.CounterOpts{
			Name: "bid_ledger_stake_collected_total",
			Help: "Sum of stake moved to the holding account",
		}),
	}
}

func (m *Metrics) IncrementBidsSubmitted(stake int64) {
	if m == nil {
		return
	}
	m.BidsSubmitted.Inc()
	m.StakeCollected.Add(float64(stake))
}

func (m *Metrics) IncrementBidsUpdated() {
	if m == nil {
		return
	}
	m.BidsUpdated.Inc()
}

func (m *Metrics) IncrementRejected(operation string, code string) {
	if m == nil {
		return
	}
	m.BidsRejected.WithLabelValues(operation, code).Inc()
}
