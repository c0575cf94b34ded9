package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

type Collection struct {
	EpochsExported      *prometheus.CounterVec
	StakeEntriesFetched *prometheus.CounterVec
	LastExportedEpoch   *prometheus.GaugeVec
	EpochPools          *prometheus.GaugeVec
	EpochActiveStake    *prometheus.GaugeVec
}

func NewCollection() *Collection {
	return &Collection{
		EpochsExported: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cardano_pool_stakes",
				Name:      "epochs_exported_total",
				Help:      "Number of epochs written to a CSV file",
			},
			[]string{"source"},
		),
		StakeEntriesFetched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cardano_pool_stakes",
				Name:      "stake_entries_fetched_total",
				Help:      "Number of stake entries returned by the source",
			},
			[]string{"source"},
		),
		LastExportedEpoch: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "cardano_pool_stakes",
				Name:      "last_exported_epoch",
				Help:      "Last epoch written to a CSV file",
			},
			[]string{"source"},
		),
		EpochPools: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "cardano_pool_stakes",
				Name:      "epoch_pools",
				Help:      "Number of pools with stake in the epoch",
			},
			[]string{"source", "epoch"},
		),
		EpochActiveStake: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "cardano_pool_stakes",
				Name:      "epoch_active_stake_ada",
				Help:      "Total stake delegated to pools in the epoch in ADA",
			},
			[]string{"source", "epoch"},
		),
	}
}

func (m *Collection) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(m.EpochsExported)
	reg.MustRegister(m.StakeEntriesFetched)
	reg.MustRegister(m.LastExportedEpoch)
	reg.MustRegister(m.EpochPools)
	reg.MustRegister(m.EpochActiveStake)
}

type PushOptions struct {
	URL string
	Job string
}

// Push replaces the metrics of the job on a Prometheus Pushgateway.
func Push(ctx context.Context, gatherer prometheus.Gatherer, opts PushOptions) error {
	if err := push.New(opts.URL, opts.Job).Gatherer(gatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("unable to push metrics to %s: %w", opts.URL, err)
	}
	return nil
}
