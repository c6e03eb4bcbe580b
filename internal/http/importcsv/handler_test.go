package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/importcsv"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/rentroll"
)

func upload(t *testing.T, router http.Handler, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "rentroll.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/leases/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func newRouter(t *testing.T, setup func(m *rentroll.MockLeaseCreator)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	creator := rentroll.NewMockLeaseCreator(ctrl)

	if setup != nil {
		setup(creator)
	}

	r := chi.NewRouter()
	r.Route("/leases/import", importcsv.NewHandler(rentroll.NewService(creator)).Routes)

	return r
}

func TestHandler_Import(t *testing.T) {
	okApp, badApp := uuid.New(), uuid.New()

	csv := "application_id,start_date,end_date,monthly_rent\n" +
		okApp.String() + ",2026-04-01,2027-03-31,2450.00\n" +
		badApp.String() + ",2026-04-01,2027-03-31,1800.00\n"

	router := newRouter(t, func(m *rentroll.MockLeaseCreator) {
		m.EXPECT().CreateBatch(gomock.Any(), gomock.Len(2)).DoAndReturn(func(_ context.Context, rows []lease.BatchRow) []lease.BatchResult {
			return []lease.BatchResult{
				{Row: rows[0].Row, ApplicationID: okApp, Lease: &lease.Lease{
					ID:            uuid.New(),
					ApplicationID: okApp,
					Status:        lease.StatusDraft,
					StartDate:     rows[0].Params.StartDate,
					EndDate:       rows[0].Params.EndDate,
					MonthlyRent:   rows[0].Params.MonthlyRent,
					CreatedAt:     time.Now(),
				}},
				{Row: rows[1].Row, ApplicationID: badApp, Err: apperr.State("application %s is pending, not approved", badApp)},
			}
		})
	})

	rec := upload(t, router, csv)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		Profile  string `json:"profile"`
		Imported int    `json:"imported"`
		Leases   []struct {
			MonthlyRent int64  `json:"monthly_rent"`
			StartDate   string `json:"start_date"`
		} `json:"leases"`
		Failed []struct {
			Row   int    `json:"row"`
			Error string `json:"error"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "nestly", got.Profile)
	assert.Equal(t, 1, got.Imported)
	assert.Equal(t, int64(245000), got.Leases[0].MonthlyRent)
	assert.Equal(t, "2026-04-01", got.Leases[0].StartDate)
	require.Len(t, got.Failed, 1)
	assert.Equal(t, 3, got.Failed[0].Row)
	assert.Contains(t, got.Failed[0].Error, "not approved")
}

func TestHandler_Import_UnknownLayout(t *testing.T) {
	rec := upload(t, newRouter(t, nil), "foo,bar\n1,2\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Import_MissingFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/leases/import", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	rec := httptest.NewRecorder()
	newRouter(t, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
