package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

// SummaryFile is the name reserved for the export summary. Downloaded
// documents never take it.
const SummaryFile = "summary.txt"

// Item is one exported lease with the local path of its document, if any.
type Item struct {
	Lease    *lease.Lease
	FilePath string
}

// Leases is the part of the lease service the export reads from.
type Leases interface {
	List(ctx context.Context, filter lease.ListFilter) ([]*lease.Lease, error)
	Now() time.Time
}

// Service downloads lease documents from the document provider.
type Service struct {
	leases   Leases
	client   *http.Client
	provider *url.URL
	apiToken string
}

// NewService builds an export service. apiToken is only sent to URLs on the
// scheme and host of baseURL; with no valid baseURL it is never sent.
func NewService(leases Leases, baseURL, apiToken string, timeout time.Duration) *Service {
	s := &Service{
		leases:   leases,
		client:   &http.Client{Timeout: timeout},
		apiToken: apiToken,
	}

	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		s.provider = u
	}

	return s
}

// authorized reports whether u belongs to the document provider.
func (s *Service) authorized(u *url.URL) bool {
	if s.apiToken == "" || s.provider == nil {
		return false
	}

	return strings.EqualFold(u.Scheme, s.provider.Scheme) && strings.EqualFold(u.Host, s.provider.Host)
}

// Export downloads the signed document of every lease matching filter into outputDir.
// Leases without a document URL are listed with an empty FilePath.
func (s *Service) Export(ctx context.Context, filter lease.ListFilter, outputDir string) ([]Item, error) {
	leases, err := s.leases.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing leases: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(leases))

	for _, l := range leases {
		item := Item{Lease: l}

		if l.DocumentURL != "" {
			path, err := s.download(ctx, l, outputDir)
			if err != nil {
				return nil, fmt.Errorf("downloading document for lease %s: %w", l.ID, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) download(ctx context.Context, l *lease.Lease, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.DocumentURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if s.authorized(req.URL) {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, l.DocumentURL)
	}

	path := uniquePath(dir, filename(resp, l), l)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// filename prefers the provider's Content-Disposition name and falls back to
// <end date>_<address>.<ext>.
func filename(resp *http.Response, l *lease.Lease) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return strings.ReplaceAll(filepath.Base(name), " ", "_")
			}
		}
	}

	ext := ".pdf"

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/pdf") {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	return fmt.Sprintf("%s_%s%s", l.EndDate.Format(time.DateOnly), sanitize(location(l)), ext)
}

// uniquePath avoids overwriting when two leases map to the same name or a
// document is named like the summary.
func uniquePath(dir, name string, l *lease.Lease) string {
	path := filepath.Join(dir, name)
	if !strings.EqualFold(name, SummaryFile) {
		if _, err := os.Stat(path); err != nil {
			return path
		}
	}

	ext := filepath.Ext(name)

	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), l.ID.String()[:8], ext))
}

func location(l *lease.Lease) string {
	if l.Parties == nil {
		return l.ID.String()
	}

	if l.Parties.Unit == "" {
		return l.Parties.Address
	}

	return l.Parties.Address + " " + l.Parties.Unit
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, s)
}

// FormatCents renders an amount in cents as dollars, e.g. 245000 -> "$2450.00".
func FormatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}

// GenerateSummary creates a plain-text listing of the exported leases.
func (s *Service) GenerateSummary(items []Item) string {
	now := s.leases.Now()

	var sb strings.Builder

	for _, item := range items {
		l := item.Lease
		tenant := ""

		if l.Parties != nil {
			tenant = l.Parties.ApplicantName
		}

		doc := "no document"
		if item.FilePath != "" {
			doc = filepath.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s to %s | %s | %s | %s/mo | %s (%d days) | %s\n",
			l.StartDate.Format(time.DateOnly),
			l.EndDate.Format(time.DateOnly),
			location(l),
			tenant,
			FormatCents(l.MonthlyRent),
			lease.EffectiveStatus(l, now),
			lease.DaysUntilExpiration(l, now),
			doc,
		)
	}

	return sb.String()
}
