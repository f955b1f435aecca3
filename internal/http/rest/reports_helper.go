package rest

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/tgarmenliev/sofaccess-api/internal/model"
	"github.com/tgarmenliev/sofaccess-api/util"
	"github.com/tgarmenliev/sofaccess-api/util/images"
	"github.com/tgarmenliev/sofaccess-api/util/values"
)

// CreateReportHelper validates a submission, stores the photo first,
// then inserts the row. An upload failure aborts the whole operation
// so no row ever references a blob that was never written. New rows
// are invisible and unsent, so counters are untouched.
func (api *API) CreateReportHelper(ctx context.Context, req model.CreateReportRequest, photo []byte, photoName string) (string, string, error) {
	if !util.NotBlank(req.Description) {
		return values.BadRequestBody, "Description is required", fmt.Errorf("empty description")
	}
	if !util.NotBlank(req.Type) {
		return values.BadRequestBody, "Type is required", fmt.Errorf("empty type")
	}
	if err := util.ValidateStruct(req); err != nil {
		return values.BadRequestBody, "Invalid report submission", err
	}
	if !model.InSofia(req.Lat, req.Lng) {
		return values.BadRequestBody, "Location is outside the supported city area", fmt.Errorf("coordinates %f,%f outside bounding box", req.Lat, req.Lng)
	}

	var imageURL *string
	if len(photo) > 0 {
		normalized, err := images.Normalize(photo)
		if err != nil {
			return values.BadRequestBody, err.Error(), err
		}

		key := util.BlobKey("reports", photoName)
		uploadedURL, err := api.Deps.Cloudinary.UploadImage(ctx, bytes.NewReader(normalized), key)
		if err != nil {
			return values.Error, "Failed to store photo", err
		}
		imageURL = &uploadedURL
	}

	if err := api.InsertReportRepo(ctx, req, imageURL); err != nil {
		return values.Error, "Failed to create report", err
	}
	return values.Created, "Report submitted successfully", nil
}

// ListReportsHelper returns the public or the moderation listing.
func (api *API) ListReportsHelper(ctx context.Context, admin bool) ([]model.Report, string, string, error) {
	reports, err := api.ListReportsRepo(ctx, admin)
	if err != nil {
		return nil, values.Error, "Failed to fetch reports", err
	}
	return reports, values.Success, "Reports fetched successfully", nil
}

// ResolveReportsHelper rewrites the category of every identified row
// to the resolved sentinel. Prior state is snapshotted first so the
// resolved counter moves by exactly the number of rows that were
// visible and not already resolved; the increment goes out as one
// batched statement after the row mutation, never inside it.
func (api *API) ResolveReportsHelper(ctx context.Context, ids []int64) (string, string, error) {
	var snapshots []model.ReportSnapshot

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		var txErr error
		snapshots, txErr = api.GetReportSnapshotsRepo(ctx, tx, ids)
		if txErr != nil {
			return txErr
		}
		return api.MarkReportsResolvedRepo(ctx, tx, ids)
	})
	if err != nil {
		return values.Error, "Failed to resolve reports", err
	}

	if delta := resolveCounterDelta(snapshots); delta > 0 {
		if err := api.IncrementResolvedRepo(ctx, delta); err != nil {
			return values.Error, "Failed to update counters", err
		}
	}

	return values.Success, "Reports resolved successfully", nil
}

// PatchReportHelper updates the sent/visibility flags of one report.
// The row is fetched first: an unknown id aborts before any mutation,
// and the stored visibility decides the counter adjustment.
func (api *API) PatchReportHelper(ctx context.Context, req model.PatchReportRequest) (string, string, error) {
	prior, err := api.GetReportSnapshotRepo(ctx, req.ID)
	if err == ErrReportNotFound {
		return values.NotFound, "Report not found", err
	}
	if err != nil {
		return values.Error, "Failed to fetch report", err
	}

	if err := api.UpdateReportFlagsRepo(ctx, req); err != nil {
		return values.Error, "Failed to update report", err
	}

	if req.IsVisible != nil {
		totalDelta, resolvedDelta := visibilityCounterDelta(prior, *req.IsVisible)
		if err := api.adjustCounters(ctx, totalDelta, resolvedDelta); err != nil {
			return values.Error, "Failed to update counters", err
		}
	}

	return values.Success, "Report updated successfully", nil
}

// DeleteReportHelper removes a report and its photo. A missing row is
// tolerated: the blob cleanup and counter adjustment are skipped and
// the row delete still runs, making the operation idempotent. A blob
// delete failure is logged and swallowed so the row delete proceeds.
func (api *API) DeleteReportHelper(ctx context.Context, id int64) (string, string, error) {
	prior, err := api.GetReportSnapshotRepo(ctx, id)
	if err != nil && err != ErrReportNotFound {
		return values.Error, "Failed to fetch report", err
	}
	found := err == nil

	if found && prior.ImageURL != nil && *prior.ImageURL != "" {
		if delErr := api.Deps.Cloudinary.DeleteImage(ctx, *prior.ImageURL); delErr != nil {
			log.Printf("failed to delete blob for report %d: %v", id, delErr)
		}
	}

	if err := api.DeleteReportRepo(ctx, id); err != nil {
		return values.Error, "Failed to delete report", err
	}

	if found {
		totalDelta, resolvedDelta := deleteCounterDelta(prior)
		if err := api.adjustCounters(ctx, totalDelta, resolvedDelta); err != nil {
			return values.Error, "Failed to update counters", err
		}
	}

	return values.Success, "Report deleted successfully", nil
}

// adjustCounters applies the computed deltas through the individual
// increment/decrement statements.
func (api *API) adjustCounters(ctx context.Context, totalDelta, resolvedDelta int) error {
	switch {
	case totalDelta > 0:
		if err := api.IncrementTotalRepo(ctx); err != nil {
			return err
		}
	case totalDelta < 0:
		if err := api.DecrementTotalRepo(ctx); err != nil {
			return err
		}
	}

	switch {
	case resolvedDelta > 0:
		if err := api.IncrementResolvedRepo(ctx, resolvedDelta); err != nil {
			return err
		}
	case resolvedDelta < 0:
		if err := api.DecrementResolvedRepo(ctx, -resolvedDelta); err != nil {
			return err
		}
	}
	return nil
}

// resolveCounterDelta counts the rows a bulk resolve moves into the
// visible-resolved state: visible and not already resolved. Invisible
// rows and rows already carrying a resolved sentinel contribute
// nothing, so re-resolving never double-counts.
func resolveCounterDelta(snapshots []model.ReportSnapshot) int {
	delta := 0
	for _, s := range snapshots {
		if s.IsVisible && !s.Resolved() {
			delta++
		}
	}
	return delta
}

// visibilityCounterDelta maps a visibility toggle onto counter deltas.
// Only a real transition moves the counters; the resolved counter
// follows along when the row's category is a resolved sentinel.
func visibilityCounterDelta(prior model.ReportSnapshot, newVisible bool) (totalDelta, resolvedDelta int) {
	if prior.IsVisible == newVisible {
		return 0, 0
	}
	if newVisible {
		totalDelta = 1
		if prior.Resolved() {
			resolvedDelta = 1
		}
		return totalDelta, resolvedDelta
	}
	totalDelta = -1
	if prior.Resolved() {
		resolvedDelta = -1
	}
	return totalDelta, resolvedDelta
}

// deleteCounterDelta maps a delete onto counter deltas: a visible row
// leaves total, and resolved too when its category was a resolved
// sentinel. Invisible rows leave the counters alone.
func deleteCounterDelta(prior model.ReportSnapshot) (totalDelta, resolvedDelta int) {
	if !prior.IsVisible {
		return 0, 0
	}
	totalDelta = -1
	if prior.Resolved() {
		resolvedDelta = -1
	}
	return totalDelta, resolvedDelta
}
