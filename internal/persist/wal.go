package persist

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// LedgerRow is one appended economic event: a demolition charge, a
// debris clearing fee, or a starting grant.
type LedgerRow struct {
	OverseerID int32
	Amount     int64
	Kind       string
	At         time.Time
}

type WALRepo struct {
	db *DB
}

func NewWALRepo(db *DB) *WALRepo {
	return &WALRepo{db: db}
}

func (r *WALRepo) Append(ctx context.Context, entries []LedgerRow) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO economic_wal (overseer_id, amount, kind, at) VALUES ($1, $2, $3, $4)`,
			e.OverseerID, e.Amount, e.Kind, e.At)
	}
	return r.db.Pool.SendBatch(ctx, batch).Close()
}
