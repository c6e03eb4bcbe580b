package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/export"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/api"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service, now func() time.Time) *Handler {
	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	Status     *lease.Status `json:"status,omitempty"`
	LandlordID *uuid.UUID    `json:"landlord_id,omitempty"`
}

func (req exportRequest) filter() (lease.ListFilter, error) {
	if req.Status != nil && !req.Status.Valid() {
		return lease.ListFilter{}, apperr.Validation("invalid status %q", *req.Status)
	}

	return lease.ListFilter{Status: req.Status, LandlordID: req.LandlordID}, nil
}

type itemResponse struct {
	LeaseID     uuid.UUID    `json:"lease_id"`
	Status      lease.Status `json:"status"`
	EndDate     api.Date     `json:"end_date"`
	MonthlyRent string       `json:"monthly_rent"`
	DocumentURL string       `json:"document_url,omitempty"`
	File        string       `json:"file,omitempty"`
}

type exportMetadataResponse struct {
	Leases  []itemResponse `json:"leases"`
	Summary string         `json:"summary"`
}

func toItemResponse(item export.Item) itemResponse {
	resp := itemResponse{
		LeaseID:     item.Lease.ID,
		Status:      item.Lease.Status,
		EndDate:     api.NewDate(item.Lease.EndDate),
		MonthlyRent: export.FormatCents(item.Lease.MonthlyRent),
		DocumentURL: item.Lease.DocumentURL,
	}

	if item.FilePath != "" {
		resp.File = filepath.Base(item.FilePath)
	}

	return resp
}

// run exports into a fresh temp dir. The caller removes the dir.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (string, []export.Item, bool) {
	var req exportRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return "", nil, false
	}

	filter, err := req.filter()
	if err != nil {
		api.Error(w, r, err)
		return "", nil, false
	}

	tmpDir, err := os.MkdirTemp("", "nestly-export-*")
	if err != nil {
		api.Error(w, r, fmt.Errorf("creating temp dir: %w", err))
		return "", nil, false
	}

	items, err := h.svc.Export(r.Context(), filter, tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		api.Error(w, r, err)

		return "", nil, false
	}

	return tmpDir, items, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	tmpDir, items, ok := h.run(w, r)
	if !ok {
		return
	}
	defer os.RemoveAll(tmpDir)

	resp := exportMetadataResponse{
		Leases:  make([]itemResponse, 0, len(items)),
		Summary: h.svc.GenerateSummary(items),
	}

	for _, item := range items {
		resp.Leases = append(resp.Leases, toItemResponse(item))
	}

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	tmpDir, items, ok := h.run(w, r)
	if !ok {
		return
	}
	defer os.RemoveAll(tmpDir)

	summary := h.svc.GenerateSummary(items)
	if err := os.WriteFile(filepath.Join(tmpDir, export.SummaryFile), []byte(summary), 0o644); err != nil {
		api.Error(w, r, fmt.Errorf("writing summary: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"leases_%s.zip\"", h.now().Format("20060102")))

	zw := zip.NewWriter(w)

	if err := addDir(zw, tmpDir); err != nil {
		slog.Error("failed to create zip", "error", err)
	}

	if err := zw.Close(); err != nil {
		slog.Error("failed to finish zip", "error", err)
	}
}

func addDir(zw *zip.Writer, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		zf, err := zw.Create(rel)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
}
