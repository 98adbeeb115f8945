package config

import (
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// fileScenario mirrors domain.Configuration with plain numbers so encoded
// scenario files read naturally. Decoding goes through the domain types.
type fileScenario struct {
	Name            string              `yaml:"name"`
	Policy          filePolicy          `yaml:"policy"`
	Charges         []fileChargeBand    `yaml:"charges,omitempty"`
	Tables          domain.TableSources `yaml:"tables,omitempty"`
	ProjectionYears int                 `yaml:"projection_years,omitempty"`
}

type filePolicy struct {
	CurrentAge                        int     `yaml:"current_age"`
	Gender                            string  `yaml:"gender"`
	SmokerStatus                      string  `yaml:"smoker_status"`
	StartMonth                        int     `yaml:"start_month"`
	StartYear                         int     `yaml:"start_year"`
	AnnualPremium                     float64 `yaml:"annual_premium"`
	CurrentAccountValue               float64 `yaml:"current_account_value"`
	BaseSumAssured                    float64 `yaml:"base_sum_assured"`
	CISumAssured                      float64 `yaml:"ci_sum_assured"`
	ECISumAssured                     float64 `yaml:"eci_sum_assured"`
	PremiumHolidayYear                int     `yaml:"premium_holiday_year"`
	IllustratedReturnPct              float64 `yaml:"illustrated_return_pct"`
	RewardPct                         float64 `yaml:"reward_pct"`
	RewardRequiresNineYears           bool    `yaml:"reward_requires_nine_years"`
	PolicyFeeMonthly                  float64 `yaml:"policy_fee_monthly"`
	NLGActive                         bool    `yaml:"nlg_active"`
	PremiumHolidayChargeFirstTwoYears bool    `yaml:"premium_holiday_charge_first_two_years"`
}

type fileChargeBand struct {
	FromYear         int     `yaml:"policy_year_from"`
	ToYear           int     `yaml:"policy_year_to"`
	PremiumChargePct float64 `yaml:"premium_charge_pct"`
}

func toFileShape(c *domain.Configuration) fileScenario {
	f := func(d decimal.Decimal) float64 { return d.InexactFloat64() }
	p := c.Policy
	out := fileScenario{
		Name:            c.Name,
		Tables:          c.Tables,
		ProjectionYears: c.ProjectionYears,
		Policy: filePolicy{
			CurrentAge:                        p.CurrentAge,
			Gender:                            string(p.Gender),
			SmokerStatus:                      string(p.SmokerStatus),
			StartMonth:                        p.StartMonth,
			StartYear:                         p.StartYear,
			AnnualPremium:                     f(p.AnnualPremium),
			CurrentAccountValue:               f(p.CurrentAccountValue),
			BaseSumAssured:                    f(p.BaseSumAssured),
			CISumAssured:                      f(p.CISumAssured),
			ECISumAssured:                     f(p.ECISumAssured),
			PremiumHolidayYear:                p.PremiumHolidayYear,
			IllustratedReturnPct:              f(p.IllustratedReturnPct),
			RewardPct:                         f(p.RewardPct),
			RewardRequiresNineYears:           p.RewardRequiresNineYears,
			PolicyFeeMonthly:                  f(p.PolicyFeeMonthly),
			NLGActive:                         p.NLGActive,
			PremiumHolidayChargeFirstTwoYears: p.PremiumHolidayChargeFirstTwoYears,
		},
	}
	for _, b := range c.Charges {
		out.Charges = append(out.Charges, fileChargeBand{
			FromYear:         b.FromYear,
			ToYear:           b.ToYear,
			PremiumChargePct: f(b.PremiumChargePct),
		})
	}
	return out
}

// ExampleConfiguration returns the prefilled product scenario for startYear.
func ExampleConfiguration(startYear int) *domain.Configuration {
	return domain.DefaultConfiguration(startYear)
}
