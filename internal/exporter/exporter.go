package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kilnfi/cardano-pool-stakes/internal/metrics"
	"github.com/kilnfi/cardano-pool-stakes/internal/stake"
)

// Writer persists the stake of one epoch.
type Writer interface {
	Write(prefix string, epoch int, stakes stake.PoolStakes) (string, error)
}

// Exporter fetches, aggregates and writes the stake of a range of epochs.
type Exporter struct {
	logger  *slog.Logger
	source  stake.Source
	writer  Writer
	metrics *metrics.Collection
}

func NewExporter(
	source stake.Source,
	writer Writer,
	metrics *metrics.Collection,
) *Exporter {
	logger := slog.With(
		slog.String("component", "exporter"),
		slog.String("source", source.Name()),
	)

	return &Exporter{
		logger:  logger,
		source:  source,
		writer:  writer,
		metrics: metrics,
	}
}

// Run exports every epoch from start to end included, in order.
// It stops at the first error. An empty range (start > end) does nothing.
func (e *Exporter) Run(ctx context.Context, start int, end int) error {
	e.logger.Info(
		"starting export",
		slog.Int("epoch_start", start),
		slog.Int("epoch_end", end),
	)

	exported := 0
	for epoch := start; epoch <= end; epoch++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export interrupted before epoch %d: %w", epoch, err)
		}
		if err := e.exportEpoch(ctx, epoch); err != nil {
			return &EpochError{Source: e.source.Name(), Epoch: epoch, Err: err}
		}
		exported++
	}

	e.logger.Info("export done", slog.Int("epochs", exported))
	return nil
}

func (e *Exporter) exportEpoch(ctx context.Context, epoch int) error {
	name := e.source.Name()

	entries, err := e.source.FetchEpochStakes(ctx, epoch)
	if err != nil {
		return fmt.Errorf("unable to fetch stakes: %w", err)
	}
	e.metrics.StakeEntriesFetched.WithLabelValues(name).Add(float64(len(entries)))

	stakes := stake.Aggregate(entries)

	path, err := e.writer.Write(name, epoch, stakes)
	if err != nil {
		return fmt.Errorf("unable to write stakes: %w", err)
	}

	totalADA := stakes.TotalADA()
	e.metrics.EpochsExported.WithLabelValues(name).Inc()
	e.metrics.LastExportedEpoch.WithLabelValues(name).Set(float64(epoch))
	e.metrics.EpochPools.WithLabelValues(name, strconv.Itoa(epoch)).Set(float64(len(stakes)))
	e.metrics.EpochActiveStake.WithLabelValues(name, strconv.Itoa(epoch)).Set(totalADA.InexactFloat64())

	e.logger.Info(
		fmt.Sprintf("📝 epoch %d exported", epoch),
		slog.Int("epoch", epoch),
		slog.Int("entries", len(entries)),
		slog.Int("pools", len(stakes)),
		slog.String("total_ada", totalADA.StringFixed(6)),
		slog.String("path", path),
	)

	return nil
}
