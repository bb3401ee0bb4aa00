package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susu3304/warikan/internal/settlement"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanHeader(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rec, err := scanHeader(fakeRow{values: []any{id.String(), "", "300.00", "100.0000000000000000", created}})
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "", rec.OwnerID)
	assert.True(t, rec.Total.Equal(decimal.NewFromInt(300)))
	assert.True(t, rec.Result.EqualShare.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, created, rec.CreatedAt)
}

func TestScanHeaderErrors(t *testing.T) {
	_, err := scanHeader(fakeRow{err: pgx.ErrNoRows})
	assert.True(t, errors.Is(err, pgx.ErrNoRows))

	_, err = scanHeader(fakeRow{values: []any{"not-a-uuid", "", "1", "1", time.Now()}})
	assert.ErrorContains(t, err, "parse settlement id")

	_, err = scanHeader(fakeRow{values: []any{uuid.NewString(), "", "abc", "1", time.Now()}})
	assert.ErrorContains(t, err, "parse total")
}

// The store tests need a disposable Postgres database.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("WARIKAN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("WARIKAN_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(database.Close)
	require.NoError(t, database.RunMigrations(ctx))
	return database
}

func record(t *testing.T, owner string, created time.Time) *SettlementRecord {
	t.Helper()
	res, err := settlement.Compute(decimal.NewFromInt(90), []settlement.Participant{
		{Name: "A", Contribution: decimal.NewFromInt(90)},
		{Name: "B", Contribution: decimal.Zero},
		{Name: "C", Contribution: decimal.Zero},
	})
	require.NoError(t, err)
	return &SettlementRecord{
		ID:        uuid.New(),
		OwnerID:   owner,
		Total:     decimal.NewFromInt(90),
		CreatedAt: created,
		Result:    *res,
	}
}

func TestSettlementStore(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	owner := "owner-" + uuid.NewString()

	base := time.Now().UTC().Truncate(time.Second)
	older := record(t, owner, base.Add(-time.Hour))
	newer := record(t, owner, base)
	anonymous := record(t, "", base)
	for _, rec := range []*SettlementRecord{older, newer, anonymous} {
		require.NoError(t, database.RecordSettlement(ctx, rec))
	}
	t.Cleanup(func() {
		_, _ = database.pool.Exec(ctx, `DELETE FROM settlements WHERE id = ANY($1::uuid[])`,
			[]string{older.ID.String(), newer.ID.String(), anonymous.ID.String()})
	})

	got, err := database.GetSettlement(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, got.OwnerID)
	assert.True(t, got.Total.Equal(newer.Total))
	assert.True(t, got.Result.EqualShare.Equal(newer.Result.EqualShare))
	require.Len(t, got.Result.Balances, 3)
	assert.Equal(t, "A", got.Result.Balances[0].Name)
	assert.Equal(t, settlement.Creditor, got.Result.Balances[0].Status)
	require.Len(t, got.Result.Transactions, 2)
	for i, tx := range newer.Result.Transactions {
		assert.Equal(t, tx.Payer, got.Result.Transactions[i].Payer)
		assert.Equal(t, tx.Receiver, got.Result.Transactions[i].Receiver)
		assert.True(t, tx.Amount.Equal(got.Result.Transactions[i].Amount))
	}

	anon, err := database.GetSettlement(ctx, anonymous.ID)
	require.NoError(t, err)
	assert.Equal(t, "", anon.OwnerID)

	list, err := database.ListSettlements(ctx, owner, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Len(t, list[1].Result.Transactions, 2)

	list, err = database.ListSettlements(ctx, owner, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newer.ID, list[0].ID)

	_, err = database.GetSettlement(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
