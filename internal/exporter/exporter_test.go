package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/kilnfi/cardano-pool-stakes/internal/csvexport"
	"github.com/kilnfi/cardano-pool-stakes/internal/metrics"
	"github.com/kilnfi/cardano-pool-stakes/internal/stake"
	stakemocks "github.com/kilnfi/cardano-pool-stakes/internal/stake/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

type setup struct {
	fs       afero.Fs
	source   *stakemocks.MockSource
	registry *prometheus.Registry
	exporter *Exporter
}

func setupExporter(t *testing.T, fs afero.Fs, name string) *setup {
	t.Helper()

	registry := prometheus.NewRegistry()
	collection := metrics.NewCollection()
	collection.MustRegister(registry)

	source := stakemocks.NewMockSource(t)
	source.EXPECT().Name().Return(name)

	return &setup{
		fs:       fs,
		source:   source,
		registry: registry,
		exporter: NewExporter(source, csvexport.NewWriter(fs, "csv"), collection),
	}
}

func stakeEntries(amounts ...uint64) []stake.Entry {
	results := []stake.Entry{}
	for i, amount := range amounts {
		results = append(results, stake.Entry{
			PoolID: fmt.Sprintf("pool%d", i%2),
			Amount: uint128.From64(amount),
		})
	}
	return results
}

func csvPath(prefix string, epoch int) string {
	return filepath.Join("csv", csvexport.FileName(prefix, epoch))
}

func TestExporter_Run(t *testing.T) {
	t.Parallel()

	t.Run("GoodPath_ExportsEveryEpoch", func(t *testing.T) {
		t.Parallel()

		s := setupExporter(t, afero.NewMemMapFs(), "dbsync")
		s.source.EXPECT().FetchEpochStakes(mock.Anything, 10).Return(stakeEntries(1000000, 2000000, 3000000), nil).Once()
		s.source.EXPECT().FetchEpochStakes(mock.Anything, 11).Return(stakeEntries(5), nil).Once()
		s.source.EXPECT().FetchEpochStakes(mock.Anything, 12).Return(stakeEntries(), nil).Once()

		err := s.exporter.Run(context.Background(), 10, 12)
		require.NoError(t, err)

		content, err := afero.ReadFile(s.fs, csvPath("dbsync", 10))
		require.NoError(t, err)
		assert.Equal(t, "pool_id,stake\npool0,4000000\npool1,2000000\n", string(content))

		content, err = afero.ReadFile(s.fs, csvPath("dbsync", 11))
		require.NoError(t, err)
		assert.Equal(t, "pool_id,stake\npool0,5\n", string(content))

		content, err = afero.ReadFile(s.fs, csvPath("dbsync", 12))
		require.NoError(t, err)
		assert.Equal(t, "pool_id,stake\n", string(content))

		expected := `
# HELP cardano_pool_stakes_epoch_active_stake_ada Total stake delegated to pools in the epoch in ADA
# TYPE cardano_pool_stakes_epoch_active_stake_ada gauge
cardano_pool_stakes_epoch_active_stake_ada{epoch="10",source="dbsync"} 6
cardano_pool_stakes_epoch_active_stake_ada{epoch="11",source="dbsync"} 5e-06
cardano_pool_stakes_epoch_active_stake_ada{epoch="12",source="dbsync"} 0
# HELP cardano_pool_stakes_epoch_pools Number of pools with stake in the epoch
# TYPE cardano_pool_stakes_epoch_pools gauge
cardano_pool_stakes_epoch_pools{epoch="10",source="dbsync"} 2
cardano_pool_stakes_epoch_pools{epoch="11",source="dbsync"} 1
cardano_pool_stakes_epoch_pools{epoch="12",source="dbsync"} 0
# HELP cardano_pool_stakes_epochs_exported_total Number of epochs written to a CSV file
# TYPE cardano_pool_stakes_epochs_exported_total counter
cardano_pool_stakes_epochs_exported_total{source="dbsync"} 3
# HELP cardano_pool_stakes_last_exported_epoch Last epoch written to a CSV file
# TYPE cardano_pool_stakes_last_exported_epoch gauge
cardano_pool_stakes_last_exported_epoch{source="dbsync"} 12
# HELP cardano_pool_stakes_stake_entries_fetched_total Number of stake entries returned by the source
# TYPE cardano_pool_stakes_stake_entries_fetched_total counter
cardano_pool_stakes_stake_entries_fetched_total{source="dbsync"} 4
`
		err = testutil.CollectAndCompare(
			s.registry,
			bytes.NewBufferString(expected),
			"cardano_pool_stakes_epoch_active_stake_ada",
			"cardano_pool_stakes_epoch_pools",
			"cardano_pool_stakes_epochs_exported_total",
			"cardano_pool_stakes_last_exported_epoch",
			"cardano_pool_stakes_stake_entries_fetched_total",
		)
		require.NoError(t, err)
	})

	t.Run("GoodPath_SingleEpoch", func(t *testing.T) {
		t.Parallel()

		s := setupExporter(t, afero.NewMemMapFs(), "blockfrost")
		s.source.EXPECT().FetchEpochStakes(mock.Anything, 208).Return(stakeEntries(100, 50, 25), nil).Once()

		require.NoError(t, s.exporter.Run(context.Background(), 208, 208))

		exists, err := afero.Exists(s.fs, csvPath("blockfrost", 208))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("GoodPath_EmptyRange", func(t *testing.T) {
		t.Parallel()

		s := setupExporter(t, afero.NewMemMapFs(), "dbsync")

		err := s.exporter.Run(context.Background(), 12, 10)
		require.NoError(t, err)

		exists, err := afero.DirExists(s.fs, "csv")
		require.NoError(t, err)
		assert.False(t, exists)
		s.source.AssertNotCalled(t, "FetchEpochStakes", mock.Anything, mock.Anything)
	})

	t.Run("SadPath_InvalidAmountStopsRun", func(t *testing.T) {
		t.Parallel()

		s := setupExporter(t, afero.NewMemMapFs(), "blockfrost")
		s.source.EXPECT().FetchEpochStakes(mock.Anything, 10).Return(stakeEntries(1), nil).Once()
		s.source.EXPECT().FetchEpochStakes(mock.Anything, 11).
			Return(nil, fmt.Errorf("unable to parse stake: %w", stake.ErrInvalidAmount)).Once()

		err := s.exporter.Run(context.Background(), 10, 12)
		require.ErrorIs(t, err, stake.ErrInvalidAmount)

		var epochErr *EpochError
		require.ErrorAs(t, err, &epochErr)
		assert.Equal(t, 11, epochErr.Epoch)
		assert.Equal(t, "blockfrost", epochErr.Source)

		exists, err := afero.Exists(s.fs, csvPath("blockfrost", 10))
		require.NoError(t, err)
		assert.True(t, exists)

		for _, epoch := range []int{11, 12} {
			exists, err := afero.Exists(s.fs, csvPath("blockfrost", epoch))
			require.NoError(t, err)
			assert.False(t, exists)
		}
		s.source.AssertNotCalled(t, "FetchEpochStakes", mock.Anything, 12)
	})

	t.Run("SadPath_WriteFails", func(t *testing.T) {
		t.Parallel()

		s := setupExporter(t, afero.NewReadOnlyFs(afero.NewMemMapFs()), "dbsync")
		s.source.EXPECT().FetchEpochStakes(mock.Anything, 10).Return(stakeEntries(1), nil).Once()

		err := s.exporter.Run(context.Background(), 10, 11)
		require.Error(t, err)

		var epochErr *EpochError
		require.ErrorAs(t, err, &epochErr)
		assert.Equal(t, 10, epochErr.Epoch)
	})

	t.Run("SadPath_ContextCanceled", func(t *testing.T) {
		t.Parallel()

		s := setupExporter(t, afero.NewMemMapFs(), "dbsync")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.exporter.Run(ctx, 10, 11)
		require.ErrorIs(t, err, context.Canceled)
		s.source.AssertNotCalled(t, "FetchEpochStakes", mock.Anything, mock.Anything)
	})
}

func TestEpochError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &EpochError{Source: "dbsync", Epoch: 7, Err: cause}
	assert.Equal(t, "unable to export epoch 7 from dbsync: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}
