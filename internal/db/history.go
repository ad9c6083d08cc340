package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-spotify-mood-finder/internal/recommend"
)

const (
	// DefaultHistoryLimit is used when Recent is called with a non-positive limit.
	DefaultHistoryLimit = 20
	// MaxHistoryLimit caps the number of rows Recent returns.
	MaxHistoryLimit = 100
)

// Request is a stored record of one completed mood request.
type Request struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	Input      string    `json:"input"`
	Label      string    `json:"label"`
	Query      string    `json:"query"`
	TrackCount int       `json:"trackCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryRepository handles mood request history.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// Insert stores a request. A zero ID is replaced with a new random UUID.
func (r *HistoryRepository) Insert(ctx context.Context, req *Request) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	query := `
		INSERT INTO mood_requests (id, source, input, label, query, track_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.Source,
		req.Input,
		req.Label,
		req.Query,
		req.TrackCount,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting mood request: %w", err)
	}
	return nil
}

// Record implements recommend.Recorder.
func (r *HistoryRepository) Record(ctx context.Context, e recommend.Entry) error {
	req := requestFromEntry(e)
	return r.Insert(ctx, &req)
}

// Recent returns the latest requests, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]Request, error) {
	limit = clampLimit(limit)

	query := `
		SELECT id, source, input, label, query, track_count, created_at
		FROM mood_requests
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying mood requests: %w", err)
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		var req Request
		if err := rows.Scan(
			&req.ID,
			&req.Source,
			&req.Input,
			&req.Label,
			&req.Query,
			&req.TrackCount,
			&req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning mood request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func requestFromEntry(e recommend.Entry) Request {
	return Request{
		ID:         uuid.New(),
		Source:     string(e.Source),
		Input:      e.Input,
		Label:      e.Label,
		Query:      e.Query,
		TrackCount: e.TrackCount,
		CreatedAt:  e.CreatedAt,
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	}
	return limit
}
