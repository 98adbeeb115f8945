package calculation

import (
	"testing"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("expected %s, got %s %v", want, got.String(), msgAndArgs)
	}
}

// flatTable builds a table where every category carries the same rate.
func flatTable(t *testing.T, name string, ratesByAge map[int]string) *RateTable {
	t.Helper()
	rows := make([]RateRow, 0, len(ratesByAge))
	for age, r := range ratesByAge {
		rates := make(map[domain.Category]decimal.Decimal, 4)
		for _, cat := range domain.AllCategories {
			rates[cat] = dec(r)
		}
		rows = append(rows, RateRow{Age: age, Rates: rates})
	}
	table, err := NewRateTable(name, rows)
	require.NoError(t, err)
	return table
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func (tl *TestLogger) count(prefix string) int {
	n := 0
	for _, m := range tl.messages {
		if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
