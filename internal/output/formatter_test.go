package output

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestProjection() *domain.Projection {
	records := []domain.YearRecord{
		{
			PolicyYear: 1, Age: 27,
			PremiumIn: d("2379"), PremiumCharge: d("1808.04"), PolicyFee: d("60"),
			BaseCOI: d("72.8"), CICOI: d("51.8"), ECICOI: d("67.8"), TotalCharges: d("252.4"),
			NetAllocation: d("570.96"), NetGrowth: d("6.3712"), EndAccountValue: d("324.9312"),
		},
		{
			PolicyYear: 2, Age: 28,
			PremiumIn: d("2379"), PremiumCharge: d("1213.29"), PolicyFee: d("60"),
			TotalCharges: d("262.3556517376"), NetAllocation: d("1165.71"),
			EndAccountValue: d("1259.349883227648"), CumulativeNLGDebt: d("1500.5"),
		},
		{PolicyYear: 3, Age: 29, Lapsed: true, CumulativeNLGDebt: d("1500.5")},
	}
	return &domain.Projection{
		RunID:    "run-1",
		Name:     "sample",
		StartAge: 27,
		Records:  records,
		Warnings: []domain.Warning{{Code: domain.WarnStartAgeClamped, Message: "derived start age 35 is outside [0, 30]"}},
		Summary:  domain.Summarize(records),
	}
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.Projection
	formatter := FormatterFunc{
		ID:  "test-formatter",
		Ext: "out",
		F: func(p *domain.Projection) ([]byte, error) {
			received = p
			return []byte("test output"), nil
		},
	}

	p := buildTestProjection()
	out, err := formatter.Format(p)

	assert.NoError(t, err)
	assert.Equal(t, p, received, "Should pass the projection")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
	assert.Equal(t, "ilp_projection.out", DefaultFilename(formatter))
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")

	written, err := WriteFormatted(CSVFormatter{}, buildTestProjection(), path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Policy Year,Age,Premium In"))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{ID: "broken", Ext: "x", F: func(*domain.Projection) ([]byte, error) {
		return nil, errors.New("boom")
	}}

	_, err := WriteFormatted(formatter, buildTestProjection(), filepath.Join(t.TempDir(), "x"))
	assert.EqualError(t, err, "boom")
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestProjection())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, LedgerColumns, rows[0])
	assert.Equal(t, []string{"1", "27", "2379.00", "1808.04", "0.00", "60.00", "0.00", "72.80", "51.80", "67.80",
		"252.40", "570.96", "6.37", "324.93", "0.00", "False"}, rows[1])
	assert.Equal(t, "1500.50", rows[2][14])
	assert.Equal(t, "True", rows[3][15])
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestProjection())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "ILP PROJECTION: sample")
	assert.Contains(t, s, "Total premiums:        $4,758")
	assert.Contains(t, s, "LAPSED in policy year 3 (age 29)")
	assert.Contains(t, s, "START_AGE_CLAMPED")
	assert.Contains(t, s, "End Account Value")
	assert.Contains(t, s, "1,259")
	assert.Contains(t, s, "1,808")
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestProjection())
	require.NoError(t, err)

	var decoded domain.Projection
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Records, 3)
	assert.True(t, decoded.Records[0].EndAccountValue.Equal(d("324.9312")), "full precision is kept")
	assert.Equal(t, 3, decoded.Summary.LapseYear)
}

func TestHTMLFormatter_Format(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestProjection())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "<title>ILP Projection - sample</title>")
	assert.Contains(t, s, "<th>Net Debt (NLG)</th>")
	assert.Contains(t, s, `class="lapsed"`)
	assert.Contains(t, s, "Lapsed in year 3")
	assert.Contains(t, s, DefaultAssumptions[0])
}

func TestFormatWhole(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999.4", "999"},
		{"1000", "1,000"},
		{"152344.4155", "152,344"},
		{"1234567.5", "1,234,568"},
		{"2.5", "2"},
		{"-1234.6", "-1,235"},
		{"-0.4", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWhole(d(tt.in)), tt.in)
	}
	assert.Equal(t, "-$1,200", FormatCurrency(d("-1200")))
	assert.Equal(t, "4.00%", FormatPercentage(d("4")))
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("table").Name())
	assert.Equal(t, "csv", GetFormatterByName(" CSV ").Name())
	assert.Equal(t, "html", GetFormatterByName("html-report").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "table")
}
