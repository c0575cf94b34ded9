package blockfrost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blockfrost/blockfrost-go"
	"github.com/kilnfi/cardano-pool-stakes/internal/stake"
)

// SourceName prefixes the files produced from the Blockfrost API.
const SourceName = "blockfrost"

var ErrBlockFrostAPINotReachable = errors.New("blockfrost API is not reachable")

type Client interface {
	// GetEpochStakeDistribution returns every page of the stake distribution of an epoch.
	GetEpochStakeDistribution(ctx context.Context, epoch int) ([]blockfrost.EpochStake, error)
	Health(ctx context.Context) (blockfrost.Health, error)
}

// Source reads the per-delegator stake distribution of an epoch from Blockfrost.
type Source struct {
	logger *slog.Logger
	client Client
}

var _ stake.Source = (*Source)(nil)

func NewSource(client Client) *Source {
	logger := slog.With(
		slog.String("component", "blockfrost-source"),
	)

	return &Source{
		logger: logger,
		client: client,
	}
}

func (s *Source) Name() string {
	return SourceName
}

// Ping fails if the API does not report itself as healthy.
func (s *Source) Ping(ctx context.Context) error {
	health, err := s.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBlockFrostAPINotReachable, err)
	}
	if !health.IsHealthy {
		return ErrBlockFrostAPINotReachable
	}
	return nil
}

func (s *Source) FetchEpochStakes(ctx context.Context, epoch int) ([]stake.Entry, error) {
	stakes, err := s.client.GetEpochStakeDistribution(ctx, epoch)
	if err != nil {
		return nil, fmt.Errorf("unable to get stake distribution for epoch %d: %w", epoch, err)
	}

	entries := make([]stake.Entry, 0, len(stakes))
	for _, es := range stakes {
		amount, err := stake.ParseAmount(es.Amount)
		if err != nil {
			return nil, fmt.Errorf("unable to parse stake of %s delegated to pool %s in epoch %d: %w", es.StakeAddress, es.PoolID, epoch, err)
		}
		entries = append(entries, stake.Entry{PoolID: es.PoolID, Amount: amount})
	}

	s.logger.Debug(
		fmt.Sprintf("fetched %d delegations", len(entries)),
		slog.Int("epoch", epoch),
	)

	return entries, nil
}
