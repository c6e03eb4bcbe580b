package rentroll

import "strings"

// Profile describes the column layout of a rent-roll export. Column names are
// matched case-insensitively; the first alias present in the header wins.
type Profile struct {
	Name        string
	Application []string
	Start       []string
	End         []string
	Rent        []string // optional
	Deposit     []string // optional
	Notes       []string // optional
}

// profiles is tried in order during auto-detection. More specific layouts come first.
var profiles = []Profile{
	{
		Name:        "nestly",
		Application: []string{"application_id"},
		Start:       []string{"start_date"},
		End:         []string{"end_date"},
		Rent:        []string{"monthly_rent"},
		Deposit:     []string{"security_deposit"},
		Notes:       []string{"notes"},
	},
	{
		Name:        "property-manager",
		Application: []string{"application id", "application"},
		Start:       []string{"lease from", "move in"},
		End:         []string{"lease to", "lease expiration"},
		Rent:        []string{"rent", "market rent"},
		Deposit:     []string{"deposit", "security deposit"},
		Notes:       []string{"comments", "notes"},
	},
}

// columns maps a profile's fields to indexes in a header row. -1 means absent.
type columns struct {
	application, start, end, rent, deposit, notes int
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func find(header map[string]int, aliases []string) int {
	for _, a := range aliases {
		if i, ok := header[a]; ok {
			return i
		}
	}

	return -1
}

// match resolves the profile against a header row. ok is false when a
// required column is missing.
func (p Profile) match(row []string) (columns, bool) {
	header := make(map[string]int, len(row))

	for i, cell := range row {
		if name := normalizeHeader(cell); name != "" {
			if _, dup := header[name]; !dup {
				header[name] = i
			}
		}
	}

	c := columns{
		application: find(header, p.Application),
		start:       find(header, p.Start),
		end:         find(header, p.End),
		rent:        find(header, p.Rent),
		deposit:     find(header, p.Deposit),
		notes:       find(header, p.Notes),
	}

	return c, c.application >= 0 && c.start >= 0 && c.end >= 0
}
