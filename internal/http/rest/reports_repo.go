package rest

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/tgarmenliev/sofaccess-api/internal/model"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrUpdateFailed   = errors.New("failed to update report")
)

// InsertReportRepo inserts a new report. Moderation flags are forced
// at the insert: every submission starts unsent and invisible no
// matter what the caller provides.
func (api *API) InsertReportRepo(ctx context.Context, req model.CreateReportRequest, imageURL *string) error {
	query := `
        INSERT INTO reports (title, description, type, lat, lng, image_url, sent, is_visible)
        VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE)
    `
	_, err := api.DB.Exec(ctx, query, req.Title, req.Description, req.Type, req.Lat, req.Lng, imageURL)
	if err != nil {
		log.Println("error inserting report", err)
		return err
	}
	return nil
}

// ListReportsRepo returns reports newest first. The public listing is
// filtered to visible rows; the moderation listing sees everything.
func (api *API) ListReportsRepo(ctx context.Context, admin bool) ([]model.Report, error) {
	query := `
        SELECT id, created_at, updated_at, title, description, type, lat, lng, image_url, sent, is_visible
        FROM reports
    `
	if !admin {
		query += ` WHERE is_visible = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := api.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		err := rows.Scan(
			&report.ID, &report.CreatedAt, &report.UpdatedAt, &report.Title,
			&report.Description, &report.Type, &report.Lat, &report.Lng,
			&report.ImageURL, &report.Sent, &report.IsVisible,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// GetReportSnapshotRepo fetches the fields a mutation needs to decide
// its counter deltas.
func (api *API) GetReportSnapshotRepo(ctx context.Context, id int64) (model.ReportSnapshot, error) {
	query := `SELECT id, type, is_visible, image_url FROM reports WHERE id = $1`

	var snapshot model.ReportSnapshot
	err := api.DB.QueryRow(ctx, query, id).Scan(
		&snapshot.ID, &snapshot.Type, &snapshot.IsVisible, &snapshot.ImageURL,
	)
	if err == pgx.ErrNoRows {
		return model.ReportSnapshot{}, ErrReportNotFound
	}
	if err != nil {
		log.Println("error fetching report snapshot", err)
		return model.ReportSnapshot{}, err
	}
	return snapshot, nil
}

// GetReportSnapshotsRepo fetches prior state for a set of ids inside
// the bulk-resolve transaction.
func (api *API) GetReportSnapshotsRepo(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.ReportSnapshot, error) {
	query := `SELECT id, type, is_visible, image_url FROM reports WHERE id = ANY($1)`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []model.ReportSnapshot
	for rows.Next() {
		var snapshot model.ReportSnapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.Type, &snapshot.IsVisible, &snapshot.ImageURL); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// MarkReportsResolvedRepo rewrites the category of every identified
// row to the resolved sentinel. Re-resolving is a state no-op.
func (api *API) MarkReportsResolvedRepo(ctx context.Context, tx pgx.Tx, ids []int64) error {
	query := `
        UPDATE reports
        SET type = $1, updated_at = NOW()
        WHERE id = ANY($2)
    `
	_, err := tx.Exec(ctx, query, model.ResolvedSentinel, ids)
	if err != nil {
		log.Println("error resolving reports", err)
		return err
	}
	return nil
}

// UpdateReportFlagsRepo updates only the provided flags plus
// updated_at.
func (api *API) UpdateReportFlagsRepo(ctx context.Context, req model.PatchReportRequest) error {
	query := `
        UPDATE reports
        SET sent = COALESCE($1, sent),
            is_visible = COALESCE($2, is_visible),
            updated_at = NOW()
        WHERE id = $3
    `
	result, err := api.DB.Exec(ctx, query, req.Sent, req.IsVisible, req.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUpdateFailed
	}
	return nil
}

// DeleteReportRepo deletes the row. Deleting an already-deleted id is
// not an error.
func (api *API) DeleteReportRepo(ctx context.Context, id int64) error {
	_, err := api.DB.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		log.Println("error deleting report", err)
	}
	return err
}
