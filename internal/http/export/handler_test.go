package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/export"
	exporthttp "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/export"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type fakeLeases struct {
	leases []*lease.Lease
	filter lease.ListFilter
}

func (f *fakeLeases) List(_ context.Context, filter lease.ListFilter) ([]*lease.Lease, error) {
	f.filter = filter
	return f.leases, nil
}

func (f *fakeLeases) Now() time.Time {
	return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (http.Handler, *fakeLeases) {
	t.Helper()

	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7 lease"))
	}))
	t.Cleanup(docs.Close)

	leases := &fakeLeases{leases: []*lease.Lease{
		{
			ID:          uuid.New(),
			Status:      lease.StatusActive,
			StartDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			MonthlyRent: 245000,
			DocumentURL: docs.URL + "/lease.pdf",
			Parties:     &lease.Parties{Address: "125 Grand St", Unit: "4B", ApplicantName: "Jane Doe"},
		},
		{
			ID:          uuid.New(),
			Status:      lease.StatusDraft,
			StartDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC),
			MonthlyRent: 180000,
			Parties:     &lease.Parties{Address: "88 Orchard St"},
		},
	}}

	h := exporthttp.NewHandler(export.NewService(leases, docs.URL, "", time.Second), leases.Now)

	r := chi.NewRouter()
	r.Route("/leases/export", h.Routes)

	return r, leases
}

func TestHandler_Metadata(t *testing.T) {
	router, leases := setup(t)
	landlord := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/leases/export",
		strings.NewReader(`{"status":"ACTIVE","landlord_id":"`+landlord.String()+`"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, lease.StatusActive, *leases.filter.Status)
	assert.Equal(t, landlord, *leases.filter.LandlordID)

	var got struct {
		Leases []struct {
			MonthlyRent string `json:"monthly_rent"`
			File        string `json:"file"`
		} `json:"leases"`
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	require.Len(t, got.Leases, 2)
	assert.Equal(t, "$2450.00", got.Leases[0].MonthlyRent)
	assert.Equal(t, "2026-03-31_125_Grand_St_4B.pdf", got.Leases[0].File)
	assert.Empty(t, got.Leases[1].File)
	assert.Contains(t, got.Summary, "88 Orchard St")
}

func TestHandler_Metadata_InvalidStatus(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/leases/export", strings.NewReader(`{"status":"LAPSED"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Download(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/leases/export/download", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leases_20260315.zip")

	files := unzip(t, rec.Body.Bytes())

	assert.Equal(t, "%PDF-1.7 lease", files["2026-03-31_125_Grand_St_4B.pdf"])
	assert.Contains(t, files["summary.txt"], "125 Grand St 4B")
}

func TestHandler_Download_DocumentNamedLikeSummary(t *testing.T) {
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="summary.txt"`)
		w.Write([]byte("%PDF-1.7 signed lease"))
	}))
	t.Cleanup(docs.Close)

	l := &lease.Lease{
		ID:          uuid.New(),
		Status:      lease.StatusActive,
		StartDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 245000,
		DocumentURL: docs.URL + "/lease.pdf",
		Parties:     &lease.Parties{Address: "125 Grand St", Unit: "4B"},
	}
	leases := &fakeLeases{leases: []*lease.Lease{l}}

	r := chi.NewRouter()
	r.Route("/leases/export", exporthttp.NewHandler(export.NewService(leases, docs.URL, "", time.Second), leases.Now).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/leases/export/download", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	files := unzip(t, rec.Body.Bytes())

	require.Len(t, files, 2)
	assert.Equal(t, "%PDF-1.7 signed lease", files["summary_"+l.ID.String()[:8]+".txt"])
	assert.Contains(t, files["summary.txt"], "125 Grand St 4B")
	assert.NotContains(t, files["summary.txt"], "%PDF")
}

func unzip(t *testing.T, body []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)

	files := map[string]string{}

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		files[f.Name] = string(b)
	}

	return files
}
