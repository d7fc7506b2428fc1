package persist

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type TreasuryRepo struct {
	db *DB
}

func NewTreasuryRepo(db *DB) *TreasuryRepo {
	return &TreasuryRepo{db: db}
}

func (r *TreasuryRepo) LoadAll(ctx context.Context) (map[int32]int64, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT overseer_id, credits FROM treasury`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[int32]int64)
	for rows.Next() {
		var id int32
		var credits int64
		if err := rows.Scan(&id, &credits); err != nil {
			return nil, err
		}
		balances[id] = credits
	}
	return balances, rows.Err()
}

func (r *TreasuryRepo) SaveAll(ctx context.Context, balances map[int32]int64) error {
	batch := &pgx.Batch{}
	for id, credits := range balances {
		batch.Queue(
			`INSERT INTO treasury (overseer_id, credits) VALUES ($1, $2)
			 ON CONFLICT (overseer_id) DO UPDATE SET credits = EXCLUDED.credits`,
			id, credits)
	}
	return r.db.Pool.SendBatch(ctx, batch).Close()
}
