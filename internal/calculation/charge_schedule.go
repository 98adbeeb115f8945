package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// BandOverlap identifies two bands that both claim some policy years.
type BandOverlap struct {
	First  int // index of the band that wins lookups
	Second int
	From   int
	To     int
}

// ChargeSchedule maps policy year to a premium charge percentage. Bands are
// kept in the order given and the first band covering a year wins.
type ChargeSchedule struct {
	bands []domain.ChargeBand
}

// NewChargeSchedule validates and copies the bands.
func NewChargeSchedule(bands []domain.ChargeBand) (*ChargeSchedule, error) {
	cs := &ChargeSchedule{bands: make([]domain.ChargeBand, 0, len(bands))}
	for i, b := range bands {
		field := fmt.Sprintf("band %d", i+1)
		if b.FromYear < 1 {
			return nil, NewConfigurationError("charge schedule", field, "policy_year_from must be at least 1")
		}
		if b.ToYear < b.FromYear {
			return nil, NewConfigurationError("charge schedule", field,
				fmt.Sprintf("policy_year_to %d is before policy_year_from %d", b.ToYear, b.FromYear))
		}
		if b.PremiumChargePct.IsNegative() {
			return nil, NewConfigurationError("charge schedule", field, "premium_charge_pct cannot be negative")
		}
		cs.bands = append(cs.bands, b)
	}
	return cs, nil
}

// DefaultChargeSchedule returns the standard five-band schedule:
// 76% in year 1, 51% in year 2, 26% in year 3, 4% in years 4-6, then nil.
func DefaultChargeSchedule() *ChargeSchedule {
	cs, err := NewChargeSchedule(domain.DefaultChargeBands())
	if err != nil {
		panic(err)
	}
	return cs
}

// Bands returns a copy of the schedule's bands.
func (cs *ChargeSchedule) Bands() []domain.ChargeBand {
	out := make([]domain.ChargeBand, len(cs.bands))
	copy(out, cs.bands)
	return out
}

// ChargePctForYear returns the charge percentage for the policy year, or zero
// when no band covers it.
func (cs *ChargeSchedule) ChargePctForYear(policyYear int) decimal.Decimal {
	for _, b := range cs.bands {
		if b.Contains(policyYear) {
			return b.PremiumChargePct
		}
	}
	return decimal.Zero
}

// Overlaps lists every pair of bands sharing at least one policy year.
func (cs *ChargeSchedule) Overlaps() []BandOverlap {
	var out []BandOverlap
	for i := 0; i < len(cs.bands); i++ {
		for j := i + 1; j < len(cs.bands); j++ {
			a, b := cs.bands[i], cs.bands[j]
			from := max(a.FromYear, b.FromYear)
			to := min(a.ToYear, b.ToYear)
			if from <= to {
				out = append(out, BandOverlap{First: i, Second: j, From: from, To: to})
			}
		}
	}
	return out
}
