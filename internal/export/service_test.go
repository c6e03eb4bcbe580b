package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

var now = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

type fakeLeases struct {
	leases []*lease.Lease
	filter lease.ListFilter
}

func (f *fakeLeases) List(_ context.Context, filter lease.ListFilter) ([]*lease.Lease, error) {
	f.filter = filter
	return f.leases, nil
}

func (f *fakeLeases) Now() time.Time { return now }

func newLease(docURL, address, unit string) *lease.Lease {
	return &lease.Lease{
		ID:          uuid.New(),
		Status:      lease.StatusActive,
		StartDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 245000,
		DocumentURL: docURL,
		Parties:     &lease.Parties{Address: address, Unit: unit, ApplicantName: "Jane Doe"},
	}
}

func TestService_Export(t *testing.T) {
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		switch r.URL.Path {
		case "/signed.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="lease 4B signed.pdf"`)
			w.Write([]byte("signed lease"))
		case "/doc":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("lease pdf"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	tmpDir := t.TempDir()

	l1 := newLease(ts.URL+"/signed.pdf", "125 Grand St", "4B")
	l2 := newLease(ts.URL+"/doc", "125 Grand St", "5C")
	l3 := newLease(ts.URL+"/doc", "125 Grand St", "5C")
	l4 := newLease("", "88 Orchard St", "")

	leases := &fakeLeases{leases: []*lease.Lease{l1, l2, l3, l4}}
	landlord := uuid.New()

	svc := NewService(leases, ts.URL, "secret", 5*time.Second)

	items, err := svc.Export(context.Background(), lease.ListFilter{LandlordID: &landlord}, tmpDir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}

	if leases.filter.LandlordID == nil || *leases.filter.LandlordID != landlord {
		t.Errorf("filter not passed through")
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}

	if got := filepath.Base(items[0].FilePath); got != "lease_4B_signed.pdf" {
		t.Errorf("expected lease_4B_signed.pdf, got %s", got)
	}

	content, _ := os.ReadFile(items[0].FilePath)
	if string(content) != "signed lease" {
		t.Errorf("file content mismatch")
	}

	if got := filepath.Base(items[1].FilePath); got != "2026-03-31_125_Grand_St_5C.pdf" {
		t.Errorf("expected generated name, got %s", got)
	}

	want3 := "2026-03-31_125_Grand_St_5C_" + l3.ID.String()[:8] + ".pdf"
	if got := filepath.Base(items[2].FilePath); got != want3 {
		t.Errorf("expected %s, got %s", want3, got)
	}

	if items[3].FilePath != "" {
		t.Errorf("expected empty file path for lease without document, got %s", items[3].FilePath)
	}
}

func TestService_Export_DownloadFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	svc := NewService(&fakeLeases{leases: []*lease.Lease{newLease(ts.URL+"/x", "1 Main St", "")}}, ts.URL, "", time.Second)

	_, err := svc.Export(context.Background(), lease.ListFilter{}, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestService_Export_TokenOnlyForProvider(t *testing.T) {
	var providerAuth, foreignAuth string

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		providerAuth = r.Header.Get("Authorization")
		w.Write([]byte("provider"))
	}))
	defer provider.Close()

	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignAuth = r.Header.Get("Authorization")
		w.Write([]byte("foreign"))
	}))
	defer foreign.Close()

	leases := &fakeLeases{leases: []*lease.Lease{
		newLease(provider.URL+"/a.pdf", "125 Grand St", "4B"),
		newLease(foreign.URL+"/b.pdf", "125 Grand St", "5C"),
	}}

	svc := NewService(leases, provider.URL+"/api/", "secret", time.Second)

	if _, err := svc.Export(context.Background(), lease.ListFilter{}, t.TempDir()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if providerAuth != "Bearer secret" {
		t.Errorf("expected bearer token for provider, got %q", providerAuth)
	}

	if foreignAuth != "" {
		t.Errorf("expected no authorization for foreign host, got %q", foreignAuth)
	}
}

func TestService_Export_NoBaseURLSendsNoToken(t *testing.T) {
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("doc"))
	}))
	defer ts.Close()

	svc := NewService(&fakeLeases{leases: []*lease.Lease{newLease(ts.URL+"/doc", "1 Main St", "")}}, "", "secret", time.Second)

	if _, err := svc.Export(context.Background(), lease.ListFilter{}, t.TempDir()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("expected no authorization without a provider base URL, got %q", gotAuth)
	}
}

func TestService_Export_SummaryNameReserved(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="summary.txt"`)
		w.Write([]byte("signed lease"))
	}))
	defer ts.Close()

	l := newLease(ts.URL+"/doc", "1 Main St", "")
	svc := NewService(&fakeLeases{leases: []*lease.Lease{l}}, ts.URL, "", time.Second)

	items, err := svc.Export(context.Background(), lease.ListFilter{}, t.TempDir())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := "summary_" + l.ID.String()[:8] + ".txt"
	if got := filepath.Base(items[0].FilePath); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestService_GenerateSummary(t *testing.T) {
	svc := &Service{leases: &fakeLeases{}}

	expiring := newLease("", "125 Grand St", "4B")
	lapsed := newLease("", "88 Orchard St", "")
	lapsed.EndDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	body := svc.GenerateSummary([]Item{
		{Lease: expiring, FilePath: "/tmp/out/lease.pdf"},
		{Lease: lapsed},
	})

	expected := []string{
		"* 2025-04-01 to 2026-03-31 | 125 Grand St 4B | Jane Doe | $2450.00/mo | ACTIVE (16 days) | lease.pdf",
		"* 2025-04-01 to 2026-03-01 | 88 Orchard St | Jane Doe | $2450.00/mo | EXPIRED (-14 days) | no document",
	}

	for _, s := range expected {
		if !strings.Contains(body, s) {
			t.Errorf("summary missing %q\ngot:\n%s", s, body)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := map[int64]string{
		245000: "$2450.00",
		5:      "$0.05",
		0:      "$0.00",
	}

	for in, want := range cases {
		if got := FormatCents(in); got != want {
			t.Errorf("FormatCents(%d) = %s, want %s", in, got, want)
		}
	}
}
