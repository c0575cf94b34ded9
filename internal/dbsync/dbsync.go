package dbsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/kilnfi/cardano-pool-stakes/internal/stake"
)

// SourceName prefixes the files produced from cardano-db-sync.
const SourceName = "dbsync"

// epochStakeQuery sums the epoch_stake rows of an epoch per pool bech32 ID.
// The sum is cast to text because it does not fit in a bigint.
const epochStakeQuery = `SELECT ph.view AS pool_hash, CAST(SUM(es.amount) AS text) AS stake
FROM epoch_stake es
INNER JOIN pool_hash ph ON es.pool_id = ph.id
WHERE es.epoch_no = $1
GROUP BY ph.view`

type poolStake struct {
	PoolHash string `db:"pool_hash"`
	Stake    string `db:"stake"`
}

// Source reads the stake per pool from a cardano-db-sync database.
// The database does the summing, so each pool appears once.
type Source struct {
	logger *slog.Logger
	db     *sqlx.DB
}

var _ stake.Source = (*Source)(nil)

func NewSource(db *sqlx.DB) *Source {
	logger := slog.With(
		slog.String("component", "dbsync-source"),
	)

	return &Source{
		logger: logger,
		db:     db,
	}
}

func (s *Source) Name() string {
	return SourceName
}

func (s *Source) FetchEpochStakes(ctx context.Context, epoch int) ([]stake.Entry, error) {
	rows := []poolStake{}
	if err := s.db.SelectContext(ctx, &rows, epochStakeQuery, epoch); err != nil {
		return nil, fmt.Errorf("unable to query stake distribution for epoch %d: %w", epoch, err)
	}

	entries := make([]stake.Entry, 0, len(rows))
	for _, row := range rows {
		amount, err := stake.ParseAmount(row.Stake)
		if err != nil {
			return nil, fmt.Errorf("unable to parse stake of pool %s in epoch %d: %w", row.PoolHash, epoch, err)
		}
		entries = append(entries, stake.Entry{PoolID: row.PoolHash, Amount: amount})
	}

	s.logger.Debug(
		fmt.Sprintf("fetched stake of %d pools", len(entries)),
		slog.Int("epoch", epoch),
	)

	return entries, nil
}
