package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RateRow is one age row of a COI table: the rate per $1,000 of sum at risk
// for every category.
type RateRow struct {
	Age   int
	Rates map[domain.Category]decimal.Decimal
}

// RateTable maps attained age to a COI rate for each category. It is
// immutable once built.
type RateTable struct {
	name string
	ages []int
	rows map[int]map[domain.Category]decimal.Decimal
}

// NewRateTable validates rows and builds a table sorted by age.
func NewRateTable(name string, rows []RateRow) (*RateTable, error) {
	if len(rows) == 0 {
		return nil, NewConfigurationError(name, "", "table has no rows")
	}

	rt := &RateTable{
		name: name,
		ages: make([]int, 0, len(rows)),
		rows: make(map[int]map[domain.Category]decimal.Decimal, len(rows)),
	}
	for i, row := range rows {
		field := fmt.Sprintf("row %d (age %d)", i+1, row.Age)
		if row.Age < 0 {
			return nil, NewConfigurationError(name, field, "age cannot be negative")
		}
		if _, dup := rt.rows[row.Age]; dup {
			return nil, NewConfigurationError(name, field, "duplicate age")
		}
		rates := make(map[domain.Category]decimal.Decimal, len(domain.AllCategories))
		for _, cat := range domain.AllCategories {
			r, ok := row.Rates[cat]
			if !ok {
				return nil, NewConfigurationError(name, field, fmt.Sprintf("missing %s rate", cat))
			}
			if r.IsNegative() {
				return nil, NewConfigurationError(name, field, fmt.Sprintf("negative %s rate %s", cat, r.String()))
			}
			rates[cat] = r
		}
		rt.rows[row.Age] = rates
		rt.ages = append(rt.ages, row.Age)
	}
	sort.Ints(rt.ages)

	return rt, nil
}

// Name returns the label the table was built with.
func (rt *RateTable) Name() string { return rt.name }

// Ages returns the tabulated ages in ascending order.
func (rt *RateTable) Ages() []int {
	out := make([]int, len(rt.ages))
	copy(out, rt.ages)
	return out
}

// Rows returns a copy of the table in age order.
func (rt *RateTable) Rows() []RateRow {
	out := make([]RateRow, 0, len(rt.ages))
	for _, age := range rt.ages {
		rates := make(map[domain.Category]decimal.Decimal, len(rt.rows[age]))
		for k, v := range rt.rows[age] {
			rates[k] = v
		}
		out = append(out, RateRow{Age: age, Rates: rates})
	}
	return out
}

// Has reports whether the table carries a column for the category.
func (rt *RateTable) Has(cat domain.Category) bool {
	if len(rt.ages) == 0 {
		return false
	}
	_, ok := rt.rows[rt.ages[0]][cat]
	return ok
}

// Lookup returns the rate for the age and the gender/smoker category.
func (rt *RateTable) Lookup(age int, gender domain.Gender, smoker domain.SmokerStatus) decimal.Decimal {
	return rt.LookupCategory(age, domain.CategoryFor(gender, smoker))
}

// LookupCategory returns the rate at age: the exact row when tabulated,
// the nearest end row outside the tabulated range, and a linear
// interpolation between the bracketing rows otherwise. Unknown categories
// yield zero.
func (rt *RateTable) LookupCategory(age int, cat domain.Category) decimal.Decimal {
	if len(rt.ages) == 0 {
		return decimal.Zero
	}
	if r, ok := rt.rows[age][cat]; ok {
		return r
	}

	minAge, maxAge := rt.ages[0], rt.ages[len(rt.ages)-1]
	if age <= minAge {
		return rt.rows[minAge][cat]
	}
	if age >= maxAge {
		return rt.rows[maxAge][cat]
	}

	// first tabulated age above the requested one
	i := sort.SearchInts(rt.ages, age)
	lower, upper := rt.ages[i-1], rt.ages[i]
	rLow, rUp := rt.rows[lower][cat], rt.rows[upper][cat]

	step := rUp.Sub(rLow).Mul(decimal.NewFromInt(int64(age - lower)))
	return rLow.Add(step.Div(decimal.NewFromInt(int64(upper - lower))))
}
