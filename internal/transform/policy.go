package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetIllustratedReturn replaces the illustrated annual return (in percent).
type SetIllustratedReturn struct {
	ReturnPct decimal.Decimal
}

func (t *SetIllustratedReturn) Name() string { return "set_return" }

func (t *SetIllustratedReturn) Description() string {
	return fmt.Sprintf("Illustrate at %s%% a year", t.ReturnPct.String())
}

func (t *SetIllustratedReturn) Validate(base *domain.Configuration) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.ReturnPct.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("return must be above -100%%, got %s%%", t.ReturnPct), nil)
	}
	return nil
}

func (t *SetIllustratedReturn) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Policy.IllustratedReturnPct = t.ReturnPct
	return modified, nil
}

// ShiftIllustratedReturn adds Delta percentage points to the illustrated return.
type ShiftIllustratedReturn struct {
	Delta decimal.Decimal
}

func (t *ShiftIllustratedReturn) Name() string { return "shift_return" }

func (t *ShiftIllustratedReturn) Description() string {
	sign := "+"
	if t.Delta.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("Illustrated return %s%s points", sign, t.Delta.String())
}

func (t *ShiftIllustratedReturn) Validate(base *domain.Configuration) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	shifted := base.Policy.IllustratedReturnPct.Add(t.Delta)
	if shifted.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("shifted return %s%% is not above -100%%", shifted), nil)
	}
	return nil
}

func (t *ShiftIllustratedReturn) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Policy.IllustratedReturnPct = modified.Policy.IllustratedReturnPct.Add(t.Delta)
	return modified, nil
}

// SetPremiumHoliday stops premiums after the given policy year; 0 restores
// lifetime payment.
type SetPremiumHoliday struct {
	AfterYear int
}

func (t *SetPremiumHoliday) Name() string { return "premium_holiday" }

func (t *SetPremiumHoliday) Description() string {
	if t.AfterYear == 0 {
		return "Pay premiums for life"
	}
	return fmt.Sprintf("Premium holiday after policy year %d", t.AfterYear)
}

func (t *SetPremiumHoliday) Validate(base *domain.Configuration) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.AfterYear < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("year must be non-negative, got %d", t.AfterYear), nil)
	}
	return nil
}

func (t *SetPremiumHoliday) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Policy.PremiumHolidayYear = t.AfterYear
	return modified, nil
}

// ScalePremium multiplies the annual premium by Factor.
type ScalePremium struct {
	Factor decimal.Decimal
}

func (t *ScalePremium) Name() string { return "scale_premium" }

func (t *ScalePremium) Description() string {
	return fmt.Sprintf("Annual premium x%s", t.Factor.String())
}

func (t *ScalePremium) Validate(base *domain.Configuration) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Factor.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", t.Factor), nil)
	}
	return nil
}

func (t *ScalePremium) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Policy.AnnualPremium = modified.Policy.AnnualPremium.Mul(t.Factor).Round(2)
	return modified, nil
}

// SetAnnualPremium replaces the annual premium.
type SetAnnualPremium struct {
	Amount decimal.Decimal
}

func (t *SetAnnualPremium) Name() string { return "set_premium" }

func (t *SetAnnualPremium) Description() string {
	return fmt.Sprintf("Annual premium %s", t.Amount.StringFixed(2))
}

func (t *SetAnnualPremium) Validate(base *domain.Configuration) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("premium must be non-negative, got %s", t.Amount), nil)
	}
	return nil
}

func (t *SetAnnualPremium) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Policy.AnnualPremium = t.Amount
	return modified, nil
}

// Coverage names a sum assured on the policy.
type Coverage string

const (
	CoverageBase Coverage = "base"
	CoverageCI   Coverage = "ci"
	CoverageECI  Coverage = "eci"
)

// SetSumAssured replaces one coverage's sum assured. Zero removes a rider.
type SetSumAssured struct {
	Coverage Coverage
	Amount   decimal.Decimal
}

func (t *SetSumAssured) Name() string { return "set_sum_assured" }

func (t *SetSumAssured) Description() string {
	return fmt.Sprintf("Set %s sum assured to %s", strings.ToUpper(string(t.Coverage)), t.Amount.StringFixed(0))
}

func (t *SetSumAssured) Validate(base *domain.Configuration) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	switch t.Coverage {
	case CoverageBase, CoverageCI, CoverageECI:
	default:
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown coverage %q", t.Coverage), nil)
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount must be non-negative", nil)
	}
	return nil
}

func (t *SetSumAssured) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	switch t.Coverage {
	case CoverageBase:
		modified.Policy.BaseSumAssured = t.Amount
	case CoverageCI:
		modified.Policy.CISumAssured = t.Amount
	case CoverageECI:
		modified.Policy.ECISumAssured = t.Amount
	}
	return modified, nil
}

// ToggleNLG switches the non-lapse guarantee on or off.
type ToggleNLG struct {
	Active bool
}

func (t *ToggleNLG) Name() string { return "toggle_nlg" }

func (t *ToggleNLG) Description() string {
	if t.Active {
		return "Non-lapse guarantee on"
	}
	return "Non-lapse guarantee off"
}

func (t *ToggleNLG) Validate(base *domain.Configuration) error {
	return requireBase(t.Name(), base)
}

func (t *ToggleNLG) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Policy.NLGActive = t.Active
	return modified, nil
}
