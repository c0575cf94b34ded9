package dbsync

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/kilnfi/cardano-pool-stakes/internal/stake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

type dbMockClient struct {
	db   *sqlx.DB
	mock sqlmock.Sqlmock
}

func setupDB(t *testing.T) *dbMockClient {
	t.Helper()

	mockdb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	db := sqlx.NewDb(mockdb, "pgx")
	return &dbMockClient{
		db:   db,
		mock: mock,
	}
}

func TestFetchEpochStakes(t *testing.T) {
	t.Parallel()

	t.Run("GoodPath_PoolTotals", func(t *testing.T) {
		t.Parallel()

		db := setupDB(t)
		db.mock.ExpectQuery(epochStakeQuery).
			WithArgs(500).
			WillReturnRows(
				sqlmock.NewRows([]string{"pool_hash", "stake"}).
					AddRow("pool1qqq", "70206220000000").
					AddRow("pool1zzz", "340282366920938463463374607431768211455"),
			)

		source := NewSource(db.db)
		entries, err := source.FetchEpochStakes(context.Background(), 500)
		require.NoError(t, err)
		assert.Equal(t, []stake.Entry{
			{PoolID: "pool1qqq", Amount: uint128.From64(70206220000000)},
			{PoolID: "pool1zzz", Amount: uint128.Max},
		}, entries)
		assert.Equal(t, "dbsync", source.Name())
	})

	t.Run("GoodPath_NoRows", func(t *testing.T) {
		t.Parallel()

		db := setupDB(t)
		db.mock.ExpectQuery(epochStakeQuery).
			WithArgs(500).
			WillReturnRows(sqlmock.NewRows([]string{"pool_hash", "stake"}))

		entries, err := NewSource(db.db).FetchEpochStakes(context.Background(), 500)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("SadPath_InvalidAmount", func(t *testing.T) {
		t.Parallel()

		db := setupDB(t)
		db.mock.ExpectQuery(epochStakeQuery).
			WithArgs(500).
			WillReturnRows(
				sqlmock.NewRows([]string{"pool_hash", "stake"}).
					AddRow("pool1qqq", "12.5"),
			)

		entries, err := NewSource(db.db).FetchEpochStakes(context.Background(), 500)
		require.ErrorIs(t, err, stake.ErrInvalidAmount)
		assert.ErrorContains(t, err, "pool1qqq")
		assert.Nil(t, entries)
	})

	t.Run("SadPath_QueryFails", func(t *testing.T) {
		t.Parallel()

		queryErr := errors.New("relation \"epoch_stake\" does not exist")
		db := setupDB(t)
		db.mock.ExpectQuery(epochStakeQuery).
			WithArgs(500).
			WillReturnError(queryErr)

		entries, err := NewSource(db.db).FetchEpochStakes(context.Background(), 500)
		require.ErrorIs(t, err, queryErr)
		assert.Nil(t, entries)
	})
}
