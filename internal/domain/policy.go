package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Gender of the life assured. Parsing is case-insensitive.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts "male"/"female" in any case, plus the M/F shorthands.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("unknown gender %q (expected male or female)", s)
}

// UnmarshalText lets YAML and JSON carry "Male", "FEMALE", etc.
func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// SmokerStatus of the life assured.
type SmokerStatus string

const (
	NonSmoker SmokerStatus = "nonsmoker"
	Smoker    SmokerStatus = "smoker"
)

// ParseSmokerStatus accepts "smoker", "nonsmoker", "non-smoker" and "non_smoker".
func ParseSmokerStatus(s string) (SmokerStatus, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	switch n {
	case "smoker", "s", "yes", "true":
		return Smoker, nil
	case "nonsmoker", "ns", "no", "false":
		return NonSmoker, nil
	}
	return "", fmt.Errorf("unknown smoker status %q (expected smoker or nonsmoker)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SmokerStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseSmokerStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Category is the rate table column for one gender × smoker combination.
type Category string

const (
	MaleNonSmoker   Category = "male_nonsmoker"
	MaleSmoker      Category = "male_smoker"
	FemaleNonSmoker Category = "female_nonsmoker"
	FemaleSmoker    Category = "female_smoker"
)

// AllCategories lists the columns every rate table must provide.
var AllCategories = []Category{MaleNonSmoker, MaleSmoker, FemaleNonSmoker, FemaleSmoker}

// CategoryFor builds the rate column key, e.g. "female_smoker".
func CategoryFor(gender Gender, smoker SmokerStatus) Category {
	g := strings.ToLower(string(gender))
	s := string(NonSmoker)
	if smoker == Smoker {
		s = string(Smoker)
	}
	return Category(g + "_" + s)
}

// PolicyParameters holds the client, coverage, funding and charge-rule inputs
// for one projection run. Rates are expressed in percent (4 means 4%).
type PolicyParameters struct {
	CurrentAge   int          `yaml:"current_age" json:"current_age"`
	Gender       Gender       `yaml:"gender" json:"gender"`
	SmokerStatus SmokerStatus `yaml:"smoker_status" json:"smoker_status"`
	StartMonth   int          `yaml:"start_month" json:"start_month"`
	StartYear    int          `yaml:"start_year" json:"start_year"`

	AnnualPremium       decimal.Decimal `yaml:"annual_premium" json:"annual_premium"`
	CurrentAccountValue decimal.Decimal `yaml:"current_account_value" json:"current_account_value"`

	BaseSumAssured decimal.Decimal `yaml:"base_sum_assured" json:"base_sum_assured"`
	CISumAssured   decimal.Decimal `yaml:"ci_sum_assured" json:"ci_sum_assured"`
	ECISumAssured  decimal.Decimal `yaml:"eci_sum_assured" json:"eci_sum_assured"`

	PremiumHolidayYear   int             `yaml:"premium_holiday_year" json:"premium_holiday_year"` // 0 = lifetime pay
	IllustratedReturnPct decimal.Decimal `yaml:"illustrated_return_pct" json:"illustrated_return_pct"`

	RewardPct               decimal.Decimal `yaml:"reward_pct" json:"reward_pct"`
	RewardRequiresNineYears bool            `yaml:"reward_requires_nine_years" json:"reward_requires_nine_years"`

	PolicyFeeMonthly                  decimal.Decimal `yaml:"policy_fee_monthly" json:"policy_fee_monthly"`
	NLGActive                         bool            `yaml:"nlg_active" json:"nlg_active"`
	PremiumHolidayChargeFirstTwoYears bool            `yaml:"premium_holiday_charge_first_two_years" json:"premium_holiday_charge_first_two_years"`
}

// Category returns the rate column this policy is priced on.
func (p PolicyParameters) Category() Category {
	return CategoryFor(p.Gender, p.SmokerStatus)
}

// PremiumPayable reports whether premium is due in the given policy year.
func (p PolicyParameters) PremiumPayable(policyYear int) bool {
	return p.PremiumHolidayYear == 0 || policyYear <= p.PremiumHolidayYear
}

// AnnualPolicyFee annualises the monthly policy fee.
func (p PolicyParameters) AnnualPolicyFee() decimal.Decimal {
	return p.PolicyFeeMonthly.Mul(decimal.NewFromInt(12))
}

// DefaultPolicy returns the prefilled GREAT Life Advantage 4 illustration inputs.
func DefaultPolicy(startYear int) PolicyParameters {
	return PolicyParameters{
		CurrentAge:                        27,
		Gender:                            GenderMale,
		SmokerStatus:                      NonSmoker,
		StartMonth:                        8,
		StartYear:                         startYear,
		AnnualPremium:                     decimal.NewFromInt(2379),
		CurrentAccountValue:               decimal.Zero,
		BaseSumAssured:                    decimal.NewFromInt(100000),
		CISumAssured:                      decimal.NewFromInt(100000),
		ECISumAssured:                     decimal.NewFromInt(100000),
		PremiumHolidayYear:                0,
		IllustratedReturnPct:              decimal.NewFromInt(4),
		RewardPct:                         decimal.NewFromInt(2),
		RewardRequiresNineYears:           true,
		PolicyFeeMonthly:                  decimal.NewFromInt(5),
		NLGActive:                         true,
		PremiumHolidayChargeFirstTwoYears: true,
	}
}
