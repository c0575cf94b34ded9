package stake

import (
	"context"

	"lukechampine.com/uint128"
)

// Source returns the stake observed for every pool in a given epoch.
type Source interface {
	// Name identifies the source and prefixes the files written for it.
	Name() string
	// FetchEpochStakes returns the complete, unpaginated list of entries for the epoch.
	FetchEpochStakes(ctx context.Context, epoch int) ([]Entry, error)
}

// Entry is a single amount of stake attributed to a pool.
// Several entries may share the same pool.
type Entry struct {
	PoolID string
	Amount uint128.Uint128
}

// PoolStakes maps a pool ID to its total stake in lovelace.
type PoolStakes map[string]uint128.Uint128
