package storage

import (
	"context"
	"fmt"
	"time"
)

func (s *Store) RecordRequest(ctx context.Context, e RequestEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	q := s.sql.Insert("chat_requests").
		Columns("topic", "status", "outcome", "duration_ms", "created_at").
		Values(e.Topic, e.Status, e.Outcome, e.DurationMS, e.CreatedAt)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build record request query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("record request: %w", err)
	}
	return nil
}

// RecentRequests returns up to limit entries, newest first.
func (s *Store) RecentRequests(ctx context.Context, limit uint64) ([]RequestEntry, error) {
	if limit == 0 {
		limit = 50
	}
	q := s.sql.Select("id", "topic", "status", "outcome", "duration_ms", "created_at").
		From("chat_requests").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent requests query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("recent requests: %w", err)
	}
	defer rows.Close()

	out := make([]RequestEntry, 0)
	for rows.Next() {
		var e RequestEntry
		if err := rows.Scan(&e.ID, &e.Topic, &e.Status, &e.Outcome, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request entries: %w", err)
	}
	return out, nil
}
