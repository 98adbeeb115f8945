package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeSchedule_DefaultBands(t *testing.T) {
	schedule := DefaultChargeSchedule()

	tests := []struct {
		year int
		want string
	}{
		{1, "76"},
		{2, "51"},
		{3, "26"},
		{4, "4"},
		{5, "4"},
		{6, "4"},
		{7, "0"},
		{200, "0"},
		{300, "0"},
		{0, "0"},
	}

	for _, tt := range tests {
		assertDecimal(t, tt.want, schedule.ChargePctForYear(tt.year), "year", tt.year)
	}
	assert.Empty(t, schedule.Overlaps())
}

func TestChargeSchedule_FirstMatchWins(t *testing.T) {
	schedule, err := NewChargeSchedule([]domain.ChargeBand{
		{FromYear: 1, ToYear: 5, PremiumChargePct: dec("10")},
		{FromYear: 3, ToYear: 8, PremiumChargePct: dec("20")},
	})
	require.NoError(t, err)

	assertDecimal(t, "10", schedule.ChargePctForYear(4))
	assertDecimal(t, "20", schedule.ChargePctForYear(6))

	overlaps := schedule.Overlaps()
	require.Len(t, overlaps, 1)
	assert.Equal(t, BandOverlap{First: 0, Second: 1, From: 3, To: 5}, overlaps[0])
}

func TestChargeSchedule_GapsChargeNothing(t *testing.T) {
	schedule, err := NewChargeSchedule([]domain.ChargeBand{
		{FromYear: 1, ToYear: 2, PremiumChargePct: dec("50")},
		{FromYear: 5, ToYear: 5, PremiumChargePct: dec("5")},
	})
	require.NoError(t, err)

	assertDecimal(t, "0", schedule.ChargePctForYear(3))
	assertDecimal(t, "5", schedule.ChargePctForYear(5))
}

func TestNewChargeSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		band domain.ChargeBand
	}{
		{"to before from", domain.ChargeBand{FromYear: 5, ToYear: 3, PremiumChargePct: dec("1")}},
		{"from below one", domain.ChargeBand{FromYear: 0, ToYear: 3, PremiumChargePct: dec("1")}},
		{"negative pct", domain.ChargeBand{FromYear: 1, ToYear: 3, PremiumChargePct: dec("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChargeSchedule([]domain.ChargeBand{tt.band})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestChargeSchedule_Empty(t *testing.T) {
	schedule, err := NewChargeSchedule(nil)
	require.NoError(t, err)
	assertDecimal(t, "0", schedule.ChargePctForYear(1))
	assert.Empty(t, schedule.Bands())
}
