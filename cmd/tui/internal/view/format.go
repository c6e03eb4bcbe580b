package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

const dbTimeout = 5 * time.Second

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// parseDollars reads "2,450.00" style input into cents.
func parseDollars(s string) (int64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimals", s)
	}

	return cents.IntPart(), nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (YYYY-MM-DD)", s)
	}

	return t, nil
}

func location(l *lease.Lease) string {
	if l.Parties == nil {
		return ""
	}

	if l.Parties.Unit == "" {
		return l.Parties.Address
	}

	return l.Parties.Address + " " + l.Parties.Unit
}

func tenant(l *lease.Lease) string {
	if l.Parties == nil {
		return ""
	}

	return l.Parties.ApplicantName
}

func bucketLabel(b lease.Bucket) string {
	switch b {
	case lease.BucketExpired, lease.BucketUrgent:
		return errorStyle.Render(string(b))
	case lease.BucketWarning:
		return warningStyle.Render(string(b))
	}

	return string(b)
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func boxed(s string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}
