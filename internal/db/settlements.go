package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/susu3304/warikan/internal/settlement"
)

var ErrNotFound = errors.New("settlement not found")

// SettlementRecord is one computed settlement as it is kept in history.
type SettlementRecord struct {
	ID        uuid.UUID         `json:"id"`
	OwnerID   string            `json:"owner_id,omitempty"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Result    settlement.Result `json:"result"`
}

// RecordSettlement stores a settlement with its balances and transactions.
func (db *DB) RecordSettlement(ctx context.Context, rec *SettlementRecord) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO settlements (id, owner_id, total, equal_share, created_at)
         VALUES ($1::uuid, NULLIF($2, ''), $3::numeric, $4::numeric, $5)`,
		rec.ID.String(), rec.OwnerID, rec.Total.String(), rec.Result.EqualShare.String(), rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}

	for i, b := range rec.Result.Balances {
		if _, err := tx.Exec(ctx,
			`INSERT INTO settlement_balances (settlement_id, position, name, amount)
             VALUES ($1::uuid, $2, $3, $4::numeric)`,
			rec.ID.String(), i, b.Name, b.Amount.String(),
		); err != nil {
			return fmt.Errorf("insert balance: %w", err)
		}
	}

	for i, t := range rec.Result.Transactions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO settlement_transactions (settlement_id, position, payer, receiver, amount)
             VALUES ($1::uuid, $2, $3, $4, $5::numeric)`,
			rec.ID.String(), i, t.Payer, t.Receiver, t.Amount.String(),
		); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// readTx runs fn in a read-only snapshot so a header and its rows match.
func (db *DB) readTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetSettlement returns one settlement, or ErrNotFound.
func (db *DB) GetSettlement(ctx context.Context, id uuid.UUID) (*SettlementRecord, error) {
	var rec *SettlementRecord
	err := db.readTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT id::text, COALESCE(owner_id, ''), total::text, equal_share::text, created_at
			 FROM settlements WHERE id = $1::uuid`,
			id.String(),
		)
		var err error
		if rec, err = scanHeader(row); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return loadDetails(ctx, tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListSettlements returns the owner's most recent settlements, newest first.
func (db *DB) ListSettlements(ctx context.Context, ownerID string, limit int) ([]SettlementRecord, error) {
	var out []SettlementRecord
	err := db.readTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id::text, COALESCE(owner_id, ''), total::text, equal_share::text, created_at
			 FROM settlements
			 WHERE owner_id = $1
			 ORDER BY created_at DESC
			 LIMIT $2`,
			ownerID, limit,
		)
		if err != nil {
			return err
		}
		for rows.Next() {
			rec, err := scanHeader(rows)
			if err != nil {
				rows.Close()
				return err
			}
			out = append(out, *rec)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range out {
			if err := loadDetails(ctx, tx, &out[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanHeader(row pgx.Row) (*SettlementRecord, error) {
	var (
		rec                   SettlementRecord
		id, total, equalShare string
	)
	if err := row.Scan(&id, &rec.OwnerID, &total, &equalShare, &rec.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse settlement id: %w", err)
	}
	if rec.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if rec.Result.EqualShare, err = decimal.NewFromString(equalShare); err != nil {
		return nil, fmt.Errorf("parse equal share: %w", err)
	}
	return &rec, nil
}

func loadDetails(ctx context.Context, tx pgx.Tx, rec *SettlementRecord) error {
	rows, err := tx.Query(ctx,
		`SELECT name, amount::text FROM settlement_balances WHERE settlement_id = $1::uuid ORDER BY position`,
		rec.ID.String(),
	)
	if err != nil {
		return err
	}
	balances := []settlement.Balance{}
	for rows.Next() {
		var name, amount string
		if err := rows.Scan(&name, &amount); err != nil {
			rows.Close()
			return err
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			rows.Close()
			return fmt.Errorf("parse balance: %w", err)
		}
		balances = append(balances, settlement.Balance{Name: name, Amount: d, Status: settlement.Classify(d)})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = tx.Query(ctx,
		`SELECT payer, receiver, amount::text FROM settlement_transactions WHERE settlement_id = $1::uuid ORDER BY position`,
		rec.ID.String(),
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	txs := []settlement.Transaction{}
	for rows.Next() {
		var t settlement.Transaction
		var amount string
		if err := rows.Scan(&t.Payer, &t.Receiver, &amount); err != nil {
			return err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("parse transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rec.Result.Balances = balances
	rec.Result.Transactions = txs
	return nil
}
