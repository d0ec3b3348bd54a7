package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barterhub/barterhub/internal/domain/history"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

// HistoryRepository implements history.Repository.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) Create(ctx context.Context, rec *history.Record) error {
	itemsA, err := json.Marshal(nonNil(rec.Items[0]))
	if err != nil {
		return err
	}
	itemsB, err := json.Marshal(nonNil(rec.Items[1]))
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO trade_history
		(session_id, participant_a, participant_b, initiator, outcome, items_a, items_b, money_a, money_b, ended_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id
	`, rec.SessionID, rec.Participants[0], rec.Participants[1], rec.Initiator, rec.Outcome,
		itemsA, itemsB, rec.Money[0], rec.Money[1], rec.EndedAt,
	).Scan(&rec.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		// already recorded
		return nil
	}
	return err
}

func (r *HistoryRepository) List(ctx context.Context, filter history.Filter, limit, offset int) ([]*history.Record, error) {
	query := `SELECT id, session_id, participant_a, participant_b, initiator, outcome, items_a, items_b, money_a, money_b, ended_at FROM trade_history`
	args := []any{}
	if filter.Participant != nil {
		args = append(args, *filter.Participant)
		n := placeholder(len(args))
		query += where(query) + " (participant_a=" + n + " OR participant_b=" + n + ")"
	}
	if filter.Outcome != nil {
		args = append(args, *filter.Outcome)
		query += where(query) + " outcome=" + placeholder(len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += where(query) + " ended_at >= " + placeholder(len(args))
	}
	args = append(args, limit, offset)
	query += " ORDER BY ended_at DESC, id DESC LIMIT " + placeholder(len(args)-1) + " OFFSET " + placeholder(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*history.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) Stats(ctx context.Context) (history.Stats, error) {
	var stats history.Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE outcome='SETTLED'),
			COUNT(*) FILTER (WHERE outcome='ABORTED'),
			COUNT(*) FILTER (WHERE outcome='INSOLVENT')
		FROM trade_history
	`).Scan(&stats.Settled, &stats.Aborted, &stats.Insolvent)
	return stats, err
}

func scanRecord(row pgx.Row) (*history.Record, error) {
	var rec history.Record
	var initiator *uuid.UUID
	var itemsA, itemsB []byte
	if err := row.Scan(
		&rec.ID, &rec.SessionID, &rec.Participants[0], &rec.Participants[1], &initiator, &rec.Outcome,
		&itemsA, &itemsB, &rec.Money[0], &rec.Money[1], &rec.EndedAt,
	); err != nil {
		return nil, err
	}
	rec.Initiator = initiator
	if err := json.Unmarshal(itemsA, &rec.Items[0]); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsB, &rec.Items[1]); err != nil {
		return nil, err
	}
	return &rec, nil
}

func nonNil(stacks []trade.ItemStack) []trade.ItemStack {
	if stacks == nil {
		return []trade.ItemStack{}
	}
	return stacks
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

func where(query string) string {
	if strings.Contains(query, " WHERE ") {
		return " AND"
	}
	return " WHERE"
}
