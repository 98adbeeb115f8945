package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"male", GenderMale, false},
		{"Male", GenderMale, false},
		{" FEMALE ", GenderFemale, false},
		{"f", GenderFemale, false},
		{"M", GenderMale, false},
		{"other", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGender(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSmokerStatus(t *testing.T) {
	for _, in := range []string{"nonsmoker", "Non-Smoker", "non_smoker", "non smoker", "NS", "no"} {
		got, err := ParseSmokerStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, NonSmoker, got, in)
	}
	for _, in := range []string{"smoker", "SMOKER", "s", "yes"} {
		got, err := ParseSmokerStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, Smoker, got, in)
	}
	_, err := ParseSmokerStatus("sometimes")
	assert.Error(t, err)
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, MaleNonSmoker, CategoryFor(GenderMale, NonSmoker))
	assert.Equal(t, MaleSmoker, CategoryFor(GenderMale, Smoker))
	assert.Equal(t, FemaleNonSmoker, CategoryFor(GenderFemale, NonSmoker))
	assert.Equal(t, FemaleSmoker, CategoryFor(GenderFemale, Smoker))
	assert.Equal(t, FemaleSmoker, CategoryFor("FEMALE", Smoker))
	assert.Len(t, AllCategories, 4)
}

func TestPolicyParameters_YAMLAcceptsLooseSpellings(t *testing.T) {
	doc := []byte(`
current_age: 40
gender: Female
smoker_status: Non-Smoker
annual_premium: 1200.50
illustrated_return_pct: 3.5
nlg_active: true
`)
	var p PolicyParameters
	require.NoError(t, yaml.Unmarshal(doc, &p))

	assert.Equal(t, 40, p.CurrentAge)
	assert.Equal(t, FemaleNonSmoker, p.Category())
	assert.True(t, p.AnnualPremium.Equal(decimal.RequireFromString("1200.50")))
	assert.True(t, p.IllustratedReturnPct.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, p.NLGActive)

	err := yaml.Unmarshal([]byte("gender: robot\n"), &p)
	assert.Error(t, err)
}

func TestPolicyParameters_PremiumPayable(t *testing.T) {
	p := DefaultPolicy(2025)
	assert.True(t, p.PremiumPayable(1))
	assert.True(t, p.PremiumPayable(70), "lifetime pay")

	p.PremiumHolidayYear = 10
	assert.True(t, p.PremiumPayable(10))
	assert.False(t, p.PremiumPayable(11))
}

func TestPolicyParameters_AnnualPolicyFee(t *testing.T) {
	p := DefaultPolicy(2025)
	assert.True(t, p.AnnualPolicyFee().Equal(decimal.NewFromInt(60)))

	p.PolicyFeeMonthly = decimal.RequireFromString("2.5")
	assert.True(t, p.AnnualPolicyFee().Equal(decimal.NewFromInt(30)))
}

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration(2030)

	assert.Equal(t, "GLA4 default", cfg.Name)
	assert.Equal(t, 2030, cfg.Policy.StartYear)
	assert.Equal(t, 27, cfg.Policy.CurrentAge)
	assert.Equal(t, MaleNonSmoker, cfg.Policy.Category())
	assert.Len(t, cfg.Charges, 5)
	assert.Zero(t, cfg.ProjectionYears)
}

func TestChargeBand_Contains(t *testing.T) {
	band := ChargeBand{FromYear: 4, ToYear: 6, PremiumChargePct: decimal.NewFromInt(4)}
	assert.False(t, band.Contains(3))
	assert.True(t, band.Contains(4))
	assert.True(t, band.Contains(6))
	assert.False(t, band.Contains(7))
}

func TestConfiguration_ChargeBandsOrDefault(t *testing.T) {
	cfg := &Configuration{}
	assert.Equal(t, DefaultChargeBands(), cfg.ChargeBandsOrDefault())

	custom := []ChargeBand{{FromYear: 1, ToYear: 99, PremiumChargePct: decimal.NewFromInt(10)}}
	cfg.Charges = custom
	assert.Equal(t, custom, cfg.ChargeBandsOrDefault())
}

func TestConfiguration_DeepCopy(t *testing.T) {
	var nilCfg *Configuration
	assert.Nil(t, nilCfg.DeepCopy())

	cfg := DefaultConfiguration(2025)
	cp := cfg.DeepCopy()
	cp.Charges[0].PremiumChargePct = decimal.NewFromInt(99)
	cp.Policy.CurrentAge = 50
	cp.Name = "copy"

	assert.True(t, cfg.Charges[0].PremiumChargePct.Equal(decimal.NewFromInt(76)))
	assert.Equal(t, 27, cfg.Policy.CurrentAge)
	assert.Equal(t, "GLA4 default", cfg.Name)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, ProjectionSummary{}, Summarize(nil))

	d := decimal.NewFromInt
	records := []YearRecord{
		{
			PolicyYear: 1, Age: 30,
			PremiumIn: d(1000), PremiumCharge: d(760), NetGrowth: d(5),
			BaseCOI: d(50), CICOI: d(20), ECICOI: d(10), TotalCharges: d(140),
			EndAccountValue: d(100), CumulativeNLGDebt: d(0),
		},
		{
			PolicyYear: 2, Age: 31,
			PremiumIn: d(1000), PremiumCharge: d(510), Reward: d(3), NetGrowth: d(7),
			BaseCOI: d(55), CICOI: d(20), ECICOI: d(10), TotalCharges: d(145),
			EndAccountValue: d(0), CumulativeNLGDebt: d(40),
		},
		{
			PolicyYear: 3, Age: 32,
			BaseCOI: d(60), TotalCharges: d(60),
			EndAccountValue: d(0), CumulativeNLGDebt: d(40), Lapsed: true,
		},
	}

	s := Summarize(records)
	assert.Equal(t, 3, s.Years)
	assert.True(t, s.TotalPremiums.Equal(d(2000)))
	assert.True(t, s.TotalPremiumCharge.Equal(d(1270)))
	assert.True(t, s.TotalReward.Equal(d(3)))
	assert.True(t, s.TotalCharges.Equal(d(345)))
	assert.True(t, s.TotalCOI.Equal(d(225)))
	assert.True(t, s.TotalGrowth.Equal(d(12)))
	assert.True(t, s.PeakNLGDebt.Equal(d(40)))
	assert.True(t, s.FinalAccountValue.IsZero())
	assert.True(t, s.Lapsed())
	assert.Equal(t, 3, s.LapseYear)
	assert.Equal(t, 32, s.LapseAge)
}

func TestProjection_LastAndWarnings(t *testing.T) {
	var nilProj *Projection
	_, ok := nilProj.Last()
	assert.False(t, ok)

	p := &Projection{
		Records:  []YearRecord{{PolicyYear: 1}, {PolicyYear: 2}},
		Warnings: []Warning{{Code: WarnStartAgeClamped, Message: "clamped"}},
	}
	last, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.PolicyYear)
	assert.True(t, p.HasWarning(WarnStartAgeClamped))
	assert.False(t, p.HasWarning(WarnOverlappingChargeBand))
}
