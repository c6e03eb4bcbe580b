package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

func TestRenewParams(t *testing.T) {
	end := time.Date(2027, 5, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mode      lease.IncreaseMode
		value     string
		check     func(t *testing.T, p lease.RenewParams)
		wantError bool
	}{
		{
			name: "KeepRent",
			mode: lease.IncreaseNone,
			check: func(t *testing.T, p lease.RenewParams) {
				assert.Nil(t, p.RentIncrease)
				assert.Nil(t, p.NewMonthlyRent)
			},
		},
		{
			name:  "Percentage",
			mode:  lease.IncreasePercentage,
			value: "3%",
			check: func(t *testing.T, p lease.RenewParams) {
				require.NotNil(t, p.RentIncrease)
				assert.Equal(t, lease.IncreasePercentage, p.RentIncrease.Mode)
				assert.True(t, p.RentIncrease.Value.Equal(decimal.NewFromInt(3)))
			},
		},
		{
			name:  "FixedDollars",
			mode:  lease.IncreaseFixed,
			value: "$50",
			check: func(t *testing.T, p lease.RenewParams) {
				require.NotNil(t, p.RentIncrease)
				assert.True(t, p.RentIncrease.Value.Equal(decimal.NewFromInt(5000)))
			},
		},
		{
			name:  "ExplicitRent",
			mode:  lease.IncreaseExplicit,
			value: "2,060.00",
			check: func(t *testing.T, p lease.RenewParams) {
				require.NotNil(t, p.NewMonthlyRent)
				assert.Equal(t, int64(206000), *p.NewMonthlyRent)
			},
		},
		{name: "MissingAmount", mode: lease.IncreasePercentage, wantError: true},
		{name: "SubCent", mode: lease.IncreaseFixed, value: "10.005", wantError: true},
		{name: "NotANumber", mode: lease.IncreaseExplicit, value: "lots", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := renewParams("2027-05-31", tt.mode, tt.value)
			if tt.wantError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, end, p.NewEndDate)
			tt.check(t, p)
		})
	}

	_, err := renewParams("next year", lease.IncreaseNone, "")
	assert.Error(t, err)
}
