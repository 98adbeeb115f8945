package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerColumns are the CSV headers, one per YearRecord field.
var LedgerColumns = []string{
	"Policy Year", "Age", "Premium In", "Prem Charge", "Reward", "Policy Fee",
	"Holiday Charge", "Base COI", "CI COI", "ECI COI", "Total Charges",
	"Net Alloc", "Net Growth", "End Account Value", "Net Debt (NLG)", "Lapsed?",
}

// ledgerMoney returns the monetary cells of a record in column order.
func ledgerMoney(r domain.YearRecord) []decimal.Decimal {
	return []decimal.Decimal{
		r.PremiumIn, r.PremiumCharge, r.Reward, r.PolicyFee, r.HolidayCharge,
		r.BaseCOI, r.CICOI, r.ECICOI, r.TotalCharges, r.NetAllocation,
		r.NetGrowth, r.EndAccountValue, r.CumulativeNLGDebt,
	}
}

// CSVFormatter writes one row per policy year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(p *domain.Projection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(LedgerColumns); err != nil {
		return nil, err
	}
	for _, r := range p.Records {
		row := []string{strconv.Itoa(r.PolicyYear), strconv.Itoa(r.Age)}
		for _, m := range ledgerMoney(r) {
			row = append(row, FormatMoney(m))
		}
		row = append(row, lapsedLabel(r.Lapsed))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lapsedLabel(lapsed bool) string {
	if lapsed {
		return "True"
	}
	return "False"
}
