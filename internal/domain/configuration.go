package domain

import (
	"github.com/shopspring/decimal"
)

// ChargeBand is an inclusive range of policy years with one premium charge
// percentage.
type ChargeBand struct {
	FromYear         int             `yaml:"policy_year_from" json:"policy_year_from"`
	ToYear           int             `yaml:"policy_year_to" json:"policy_year_to"`
	PremiumChargePct decimal.Decimal `yaml:"premium_charge_pct" json:"premium_charge_pct"`
}

// Contains reports whether the policy year falls inside the band.
func (b ChargeBand) Contains(policyYear int) bool {
	return policyYear >= b.FromYear && policyYear <= b.ToYear
}

// DefaultChargeBands is the standard premium charge schedule.
func DefaultChargeBands() []ChargeBand {
	return []ChargeBand{
		{FromYear: 1, ToYear: 1, PremiumChargePct: decimal.NewFromInt(76)},
		{FromYear: 2, ToYear: 2, PremiumChargePct: decimal.NewFromInt(51)},
		{FromYear: 3, ToYear: 3, PremiumChargePct: decimal.NewFromInt(26)},
		{FromYear: 4, ToYear: 6, PremiumChargePct: decimal.NewFromInt(4)},
		{FromYear: 7, ToYear: 200, PremiumChargePct: decimal.Zero},
	}
}

// TableSources names where each COI table comes from. An empty value selects
// the embedded default; otherwise it is a local CSV path or an s3://bucket/key
// URI.
type TableSources struct {
	Base string `yaml:"base" json:"base"`
	CI   string `yaml:"ci" json:"ci"`
	ECI  string `yaml:"eci" json:"eci"`
}

// Configuration is the top-level scenario file.
type Configuration struct {
	Name            string           `yaml:"name" json:"name"`
	Policy          PolicyParameters `yaml:"policy" json:"policy"`
	Charges         []ChargeBand     `yaml:"charges,omitempty" json:"charges,omitempty"`
	Tables          TableSources     `yaml:"tables,omitempty" json:"tables,omitempty"`
	ProjectionYears int              `yaml:"projection_years,omitempty" json:"projection_years,omitempty"` // 0 = until age 100
}

// ChargeBandsOrDefault returns the configured bands, falling back to the
// standard schedule when none were given.
func (c *Configuration) ChargeBandsOrDefault() []ChargeBand {
	if len(c.Charges) == 0 {
		return DefaultChargeBands()
	}
	return c.Charges
}

// DeepCopy returns a copy that shares no slices with the receiver.
func (c *Configuration) DeepCopy() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	if c.Charges != nil {
		out.Charges = make([]ChargeBand, len(c.Charges))
		copy(out.Charges, c.Charges)
	}
	return &out
}

// DefaultConfiguration wraps DefaultPolicy with the standard charges.
func DefaultConfiguration(startYear int) *Configuration {
	return &Configuration{
		Name:    "GLA4 default",
		Policy:  DefaultPolicy(startYear),
		Charges: DefaultChargeBands(),
	}
}
