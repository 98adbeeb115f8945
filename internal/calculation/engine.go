package calculation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// MaxPolicyYears is the hard cap on projected policy years.
	MaxPolicyYears = 120
	// MaxAttainedAge is the last age for which a year is projected.
	MaxAttainedAge = 100
	// NLGWindowYears is the number of leading policy years covered by the
	// non-lapse guarantee.
	NLGWindowYears = 10
	// RewardFromYear is the first policy year eligible for the loyalty reward.
	RewardFromYear = 10
	// RewardPaidYears is the number of paid years the gated reward requires.
	RewardPaidYears = 9
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
	half     = decimal.NewFromFloat(0.5)
)

// ReferenceData bundles the read-only tables a projection prices against.
type ReferenceData struct {
	Base     *RateTable
	CI       *RateTable
	ECI      *RateTable
	Schedule *ChargeSchedule
}

// ProjectionEngine runs the year-by-year account value recurrence.
type ProjectionEngine struct {
	Logger Logger
	// Clock supplies the current calendar year used to derive the start age.
	Clock func() time.Time
	// MaxYears limits the number of projected years; 0 means MaxPolicyYears.
	MaxYears int
}

// NewProjectionEngine creates an engine with a no-op logger and the wall clock.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		Logger: NopLogger{},
		Clock:  time.Now,
	}
}

// SetLogger sets the logger; nil installs a no-op logger.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// WithHorizon returns a copy of the engine limited to the given number of years.
func (pe *ProjectionEngine) WithHorizon(years int) *ProjectionEngine {
	cp := *pe
	cp.MaxYears = years
	return &cp
}

func (pe *ProjectionEngine) horizon() int {
	if pe.MaxYears <= 0 || pe.MaxYears > MaxPolicyYears {
		return MaxPolicyYears
	}
	return pe.MaxYears
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

func (pe *ProjectionEngine) currentYear() int {
	if pe.Clock == nil {
		return time.Now().Year()
	}
	return pe.Clock().Year()
}

// DeriveStartAge converts the client's current age into the age at policy
// inception. Out-of-range results clamp to currentAge and report clamped.
func DeriveStartAge(currentAge, startYear, currentYear int) (age int, raw int, clamped bool) {
	raw = currentAge - (currentYear - startYear)
	if raw < 0 || raw > currentAge {
		return currentAge, raw, true
	}
	return raw, raw, false
}

// RunReference is Run with the tables taken from ref.
func (pe *ProjectionEngine) RunReference(params domain.PolicyParameters, ref ReferenceData) (*domain.Projection, error) {
	return pe.Run(params, ref.Base, ref.CI, ref.ECI, ref.Schedule)
}

// Run projects the policy until lapse, age 100 or the horizon, whichever
// comes first. Reference data problems are reported before any year is
// computed.
func (pe *ProjectionEngine) Run(params domain.PolicyParameters, base, ci, eci *RateTable, schedule *ChargeSchedule) (*domain.Projection, error) {
	log := pe.logger()

	if err := checkReferenceData(params, base, ci, eci, schedule); err != nil {
		return nil, err
	}

	projection := &domain.Projection{RunID: uuid.NewString()}

	startAge, rawAge, clamped := DeriveStartAge(params.CurrentAge, params.StartYear, pe.currentYear())
	projection.StartAge = startAge
	if clamped {
		msg := fmt.Sprintf("derived start age %d is outside [0, %d]; using current age %d", rawAge, params.CurrentAge, startAge)
		log.Warnf("%s", msg)
		projection.Warnings = append(projection.Warnings, domain.Warning{Code: domain.WarnStartAgeClamped, Message: msg})
	}
	for _, o := range schedule.Overlaps() {
		msg := fmt.Sprintf("charge bands %d and %d both cover policy years %d-%d; band %d applies", o.First+1, o.Second+1, o.From, o.To, o.First+1)
		log.Warnf("%s", msg)
		projection.Warnings = append(projection.Warnings, domain.Warning{Code: domain.WarnOverlappingChargeBand, Message: msg})
	}

	cat := params.Category()
	annualFee := params.AnnualPolicyFee()
	returnRate := params.IllustratedReturnPct.Div(hundred)

	accountValue := params.CurrentAccountValue
	debt := decimal.Zero
	paidYears := 0

	for py := 1; py <= pe.horizon(); py++ {
		age := startAge + (py - 1)
		if age > MaxAttainedAge {
			break
		}

		rec := domain.YearRecord{PolicyYear: py, Age: age, PolicyFee: annualFee}

		premiumPaid := params.PremiumPayable(py)
		gross := decimal.Zero
		if premiumPaid {
			gross = params.AnnualPremium
		}
		rec.PremiumIn = gross
		rec.PremiumCharge = gross.Mul(schedule.ChargePctForYear(py)).Div(hundred)

		if params.RewardPct.IsPositive() && py >= RewardFromYear &&
			(!params.RewardRequiresNineYears || paidYears >= RewardPaidYears) {
			rec.Reward = gross.Mul(params.RewardPct).Div(hundred)
		}
		rec.NetAllocation = gross.Sub(rec.PremiumCharge).Add(rec.Reward)

		if params.PremiumHolidayChargeFirstTwoYears && py <= 2 && !premiumPaid {
			rec.HolidayCharge = params.AnnualPremium
		}

		netSumAtRisk := decimal.Max(params.BaseSumAssured.Sub(decimal.Max(accountValue, decimal.Zero)), decimal.Zero)
		rec.BaseCOI = netSumAtRisk.Div(thousand).Mul(base.LookupCategory(age, cat))
		if params.CISumAssured.IsPositive() {
			rec.CICOI = params.CISumAssured.Div(thousand).Mul(ci.LookupCategory(age, cat))
		}
		if params.ECISumAssured.IsPositive() {
			rec.ECICOI = params.ECISumAssured.Div(thousand).Mul(eci.LookupCategory(age, cat))
		}
		rec.TotalCharges = rec.PolicyFee.Add(rec.HolidayCharge).Add(rec.BaseCOI).Add(rec.CICOI).Add(rec.ECICOI)

		growthBase := accountValue.Add(rec.NetAllocation.Mul(half)).Sub(rec.TotalCharges.Mul(half))
		rec.NetGrowth = growthBase.Mul(returnRate)

		end := accountValue.Add(rec.NetAllocation).Sub(rec.TotalCharges).Add(rec.NetGrowth)
		if !end.IsPositive() {
			if params.NLGActive && py <= NLGWindowYears && premiumPaid {
				debt = debt.Add(end.Neg())
				log.Debugf("year %d: shortfall %s absorbed by NLG, debt now %s", py, end.Neg().StringFixed(2), debt.StringFixed(2))
			} else {
				rec.Lapsed = true
			}
			end = decimal.Zero
		}
		rec.EndAccountValue = end
		rec.CumulativeNLGDebt = debt

		projection.Records = append(projection.Records, rec)
		log.Debugf("year %d age %d: charges %s growth %s end %s", py, age,
			rec.TotalCharges.StringFixed(2), rec.NetGrowth.StringFixed(2), end.StringFixed(2))

		if rec.Lapsed {
			log.Infof("policy lapsed in year %d at age %d", py, age)
			break
		}
		accountValue = end
		if premiumPaid && gross.IsPositive() {
			paidYears++
		}
	}

	projection.Summary = domain.Summarize(projection.Records)
	return projection, nil
}

func checkReferenceData(params domain.PolicyParameters, base, ci, eci *RateTable, schedule *ChargeSchedule) error {
	tables := []struct {
		name  string
		table *RateTable
	}{
		{"base COI table", base},
		{"CI COI table", ci},
		{"ECI COI table", eci},
	}
	cat := params.Category()
	for _, t := range tables {
		if t.table == nil || len(t.table.ages) == 0 {
			return NewConfigurationError(t.name, "", "table has no rows")
		}
		if !t.table.Has(cat) {
			return NewConfigurationError(t.name, string(cat), "no rates for category")
		}
	}
	if schedule == nil {
		return NewConfigurationError("charge schedule", "", "schedule is missing")
	}
	return nil
}
