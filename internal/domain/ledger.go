package domain

import (
	"github.com/shopspring/decimal"
)

// YearRecord is one row of the projection ledger: every flow for a single
// policy year and the resulting account state.
type YearRecord struct {
	PolicyYear int `json:"policyYear"`
	Age        int `json:"age"`

	PremiumIn     decimal.Decimal `json:"premiumIn"`
	PremiumCharge decimal.Decimal `json:"premiumCharge"`
	Reward        decimal.Decimal `json:"reward"`
	PolicyFee     decimal.Decimal `json:"policyFee"`
	HolidayCharge decimal.Decimal `json:"holidayCharge"`
	BaseCOI       decimal.Decimal `json:"baseCoi"`
	CICOI         decimal.Decimal `json:"ciCoi"`
	ECICOI        decimal.Decimal `json:"eciCoi"`
	TotalCharges  decimal.Decimal `json:"totalCharges"`
	NetAllocation decimal.Decimal `json:"netAllocation"`
	NetGrowth     decimal.Decimal `json:"netGrowth"`

	EndAccountValue   decimal.Decimal `json:"endAccountValue"`
	CumulativeNLGDebt decimal.Decimal `json:"cumulativeNlgDebt"`
	Lapsed            bool            `json:"lapsed"`
}

// TotalCOI is the sum of base and rider cost of insurance for the year.
func (r YearRecord) TotalCOI() decimal.Decimal {
	return r.BaseCOI.Add(r.CICOI).Add(r.ECICOI)
}

// WarningCode identifies a lenient-input condition the engine tolerated.
type WarningCode string

const (
	WarnStartAgeClamped       WarningCode = "START_AGE_CLAMPED"
	WarnOverlappingChargeBand WarningCode = "OVERLAPPING_CHARGE_BANDS"
)

// Warning records a clamp or ambiguity resolved during a run.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// ProjectionSummary provides the headline numbers for one projection.
type ProjectionSummary struct {
	Years              int             `json:"years"`
	LapseYear          int             `json:"lapseYear"` // 0 when the policy never lapsed
	LapseAge           int             `json:"lapseAge"`
	TotalPremiums      decimal.Decimal `json:"totalPremiums"`
	TotalPremiumCharge decimal.Decimal `json:"totalPremiumCharge"`
	TotalReward        decimal.Decimal `json:"totalReward"`
	TotalCharges       decimal.Decimal `json:"totalCharges"`
	TotalCOI           decimal.Decimal `json:"totalCoi"`
	TotalGrowth        decimal.Decimal `json:"totalGrowth"`
	FinalAccountValue  decimal.Decimal `json:"finalAccountValue"`
	PeakNLGDebt        decimal.Decimal `json:"peakNlgDebt"`
}

// Lapsed reports whether the projection ended in a lapse.
func (s ProjectionSummary) Lapsed() bool { return s.LapseYear > 0 }

// Projection is the ordered ledger produced by one run.
type Projection struct {
	RunID    string            `json:"runId"`
	Name     string            `json:"name,omitempty"`
	StartAge int               `json:"startAge"`
	Records  []YearRecord      `json:"records"`
	Warnings []Warning         `json:"warnings,omitempty"`
	Summary  ProjectionSummary `json:"summary"`
}

// Last returns the terminal record, or false for an empty projection.
func (p *Projection) Last() (YearRecord, bool) {
	if p == nil || len(p.Records) == 0 {
		return YearRecord{}, false
	}
	return p.Records[len(p.Records)-1], true
}

// HasWarning reports whether a warning with the given code was raised.
func (p *Projection) HasWarning(code WarningCode) bool {
	for _, w := range p.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Summarize derives the summary from the records.
func Summarize(records []YearRecord) ProjectionSummary {
	s := ProjectionSummary{Years: len(records)}
	for _, r := range records {
		s.TotalPremiums = s.TotalPremiums.Add(r.PremiumIn)
		s.TotalPremiumCharge = s.TotalPremiumCharge.Add(r.PremiumCharge)
		s.TotalReward = s.TotalReward.Add(r.Reward)
		s.TotalCharges = s.TotalCharges.Add(r.TotalCharges)
		s.TotalCOI = s.TotalCOI.Add(r.TotalCOI())
		s.TotalGrowth = s.TotalGrowth.Add(r.NetGrowth)
		if r.CumulativeNLGDebt.GreaterThan(s.PeakNLGDebt) {
			s.PeakNLGDebt = r.CumulativeNLGDebt
		}
		if r.Lapsed {
			s.LapseYear = r.PolicyYear
			s.LapseAge = r.Age
		}
	}
	if n := len(records); n > 0 {
		s.FinalAccountValue = records[n-1].EndAccountValue
	}
	return s
}
