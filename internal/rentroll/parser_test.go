package rentroll_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/rentroll"
)

var (
	app1 = uuid.MustParse("7d4f3a52-9f1e-4c8e-9b1a-0a1b2c3d4e5f")
	app2 = uuid.MustParse("1c2d3e4f-5a6b-4c7d-8e9f-a0b1c2d3e4f5")
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_NativeLayout(t *testing.T) {
	csv := `application_id,start_date,end_date,monthly_rent,security_deposit,notes
7d4f3a52-9f1e-4c8e-9b1a-0a1b2c3d4e5f,2026-04-01,2027-03-31,"$3,250.00","3,250",Corner unit
1c2d3e4f-5a6b-4c7d-8e9f-a0b1c2d3e4f5,2026-05-01,2027-04-30,,,
`

	res, err := rentroll.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "nestly", res.Profile)

	first := res.Rows[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, app1, first.ApplicationID)
	assert.Equal(t, date(2026, 4, 1), first.Params.StartDate)
	assert.Equal(t, date(2027, 3, 31), first.Params.EndDate)
	assert.Equal(t, int64(325000), first.Params.MonthlyRent)
	assert.Equal(t, int64(325000), first.Params.SecurityDeposit)
	assert.Equal(t, "Corner unit", first.Params.Terms.Notes)

	// Blank amounts fall back to the application's amounts at creation.
	second := res.Rows[1]
	assert.Equal(t, 3, second.Row)
	assert.Zero(t, second.Params.MonthlyRent)
	assert.Zero(t, second.Params.SecurityDeposit)
}

func TestParser_PropertyManagerLayout(t *testing.T) {
	csv := `Rent Roll - 125 Grand St;;;;
Generated;03/01/2026;;;

Application ID;Unit;Lease From;Lease To;Market Rent;Security Deposit
7d4f3a52-9f1e-4c8e-9b1a-0a1b2c3d4e5f;4B;04/01/2026;3/31/2027;2.450,00;2.450,00
;;;Total;2.450,00;
`

	res, err := rentroll.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	assert.Equal(t, "property-manager", res.Profile)
	assert.Equal(t, 5, res.Rows[0].Row)
	assert.Equal(t, date(2026, 4, 1), res.Rows[0].Params.StartDate)
	assert.Equal(t, date(2027, 3, 31), res.Rows[0].Params.EndDate)
	assert.Equal(t, int64(245000), res.Rows[0].Params.MonthlyRent)
}

func TestParser_Windows1252(t *testing.T) {
	utf8CSV := "application_id;start_date;end_date;notes\n" +
		app2.String() + ";2026-04-01;2027-03-31;Inquilino José\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	res, err := rentroll.NewParser().Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	assert.Equal(t, "Inquilino José", res.Rows[0].Params.Terms.Notes)
}

func TestParser_HeaderCaseAndOrder(t *testing.T) {
	csv := "Notes,END_DATE,Start_Date,Application_ID\n" +
		"Renewal pending,2027-03-31,2026-04-01," + app1.String() + "\n"

	res, err := rentroll.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	assert.Equal(t, app1, res.Rows[0].ApplicationID)
	assert.Equal(t, "Renewal pending", res.Rows[0].Params.Terms.Notes)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantMsg string
	}{
		{name: "Empty", csv: "", wantMsg: "no known rent-roll layout"},
		{name: "UnknownLayout", csv: "tenant,rent\nJane,2500\n", wantMsg: "no known rent-roll layout"},
		{name: "BadApplicationID", csv: "application_id,start_date,end_date\nnot-a-uuid,2026-04-01,2027-03-31\n", wantMsg: "row 2: invalid application id"},
		{name: "BadDate", csv: "application_id,start_date,end_date\n" + app1.String() + ",April 1,2027-03-31\n", wantMsg: "row 2: start date"},
		{name: "BadAmount", csv: "application_id,start_date,end_date,monthly_rent\n" + app1.String() + ",2026-04-01,2027-03-31,call\n", wantMsg: "row 2: rent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rentroll.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParser_HeaderOnly(t *testing.T) {
	res, err := rentroll.NewParser().Parse(strings.NewReader("application_id,start_date,end_date\n"))
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}
