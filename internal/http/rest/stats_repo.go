package rest

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/tgarmenliev/sofaccess-api/internal/model"
)

// The counters live in a singleton row and only ever move through the
// statements below; nothing recomputes them from the reports table, so
// a caller bypassing the API can make them drift.

// GetCountersRepo reads the singleton counters row. A missing row
// reads as zeros rather than an error.
func (api *API) GetCountersRepo(ctx context.Context) (model.Counters, error) {
	var counters model.Counters
	err := api.DB.QueryRow(ctx, `SELECT total, resolved FROM counters WHERE id = 1`).
		Scan(&counters.Total, &counters.Resolved)
	if err == pgx.ErrNoRows {
		return model.Counters{}, nil
	}
	if err != nil {
		log.Println("error fetching counters", err)
		return model.Counters{}, err
	}
	return counters, nil
}

func (api *API) IncrementTotalRepo(ctx context.Context) error {
	_, err := api.DB.Exec(ctx, `UPDATE counters SET total = total + 1 WHERE id = 1`)
	if err != nil {
		log.Println("error incrementing total counter", err)
	}
	return err
}

func (api *API) DecrementTotalRepo(ctx context.Context) error {
	_, err := api.DB.Exec(ctx, `UPDATE counters SET total = GREATEST(total - 1, 0) WHERE id = 1`)
	if err != nil {
		log.Println("error decrementing total counter", err)
	}
	return err
}

// IncrementResolvedRepo applies a batched resolved increment: bulk
// resolve passes the full count in one statement instead of one call
// per row.
func (api *API) IncrementResolvedRepo(ctx context.Context, count int) error {
	_, err := api.DB.Exec(ctx, `UPDATE counters SET resolved = resolved + $1 WHERE id = 1`, count)
	if err != nil {
		log.Println("error incrementing resolved counter", err)
	}
	return err
}

func (api *API) DecrementResolvedRepo(ctx context.Context, count int) error {
	_, err := api.DB.Exec(ctx, `UPDATE counters SET resolved = GREATEST(resolved - $1, 0) WHERE id = 1`, count)
	if err != nil {
		log.Println("error decrementing resolved counter", err)
	}
	return err
}
