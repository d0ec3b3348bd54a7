package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/barterhub/barterhub/internal/domain/history"
)

// HistoryRepository keeps trade history in memory. It implements
// history.Repository when no database is configured.
type HistoryRepository struct {
	mu      sync.RWMutex
	records []*history.Record
	nextID  int64
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Create(_ context.Context, rec *history.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	stored := *rec
	r.records = append(r.records, &stored)
	return nil
}

func (r *HistoryRepository) List(_ context.Context, filter history.Filter, limit, offset int) ([]*history.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*history.Record, 0)
	for _, rec := range r.records {
		if filter.Matches(rec) {
			cp := *rec
			matched = append(matched, &cp)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].EndedAt.Equal(matched[j].EndedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].EndedAt.After(matched[j].EndedAt)
	})
	if offset >= len(matched) {
		return []*history.Record{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *HistoryRepository) Stats(_ context.Context) (history.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var stats history.Stats
	for _, rec := range r.records {
		switch rec.Outcome {
		case history.OutcomeSettled:
			stats.Settled++
		case history.OutcomeAborted:
			stats.Aborted++
		case history.OutcomeInsolvent:
			stats.Insolvent++
		}
	}
	return stats, nil
}
