package config

import (
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

//go:embed data/*.csv
var defaultTables embed.FS

// TableKind identifies one of the three COI tables.
type TableKind string

const (
	TableBase TableKind = "base"
	TableCI   TableKind = "ci"
	TableECI  TableKind = "eci"
)

// AllTableKinds in pricing order.
var AllTableKinds = []TableKind{TableBase, TableCI, TableECI}

// ParseTableKind accepts base, ci and eci in any case.
func ParseTableKind(s string) (TableKind, error) {
	switch k := TableKind(strings.ToLower(strings.TrimSpace(s))); k {
	case TableBase, TableCI, TableECI:
		return k, nil
	}
	return "", fmt.Errorf("unknown table %q (expected base, ci or eci)", s)
}

// Label is the human-readable table name used in errors.
func (k TableKind) Label() string {
	switch k {
	case TableCI:
		return "CI COI table"
	case TableECI:
		return "ECI COI table"
	default:
		return "base COI table"
	}
}

func (k TableKind) defaultFile() string {
	return "data/" + string(k) + "_coi.csv"
}

// headerAliases maps accepted header spellings to categories.
var headerAliases = map[string]domain.Category{
	"male_nonsmoker":    domain.MaleNonSmoker,
	"male_non_smoker":   domain.MaleNonSmoker,
	"male nonsmoker":    domain.MaleNonSmoker,
	"male_smoker":       domain.MaleSmoker,
	"male smoker":       domain.MaleSmoker,
	"female_nonsmoker":  domain.FemaleNonSmoker,
	"female_non_smoker": domain.FemaleNonSmoker,
	"female nonsmoker":  domain.FemaleNonSmoker,
	"female_smoker":     domain.FemaleSmoker,
	"female smoker":     domain.FemaleSmoker,
}

// Table parsing errors
var (
	ErrEmptyTable     = errors.New("rate table CSV is empty")
	ErrMissingColumns = errors.New("missing required columns")
)

// ParseRateTableCSV reads a COI table with an age column and one column per
// category. Column order is free and headers are case-insensitive.
func ParseRateTableCSV(name string, r io.Reader) (*calculation.RateTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
	}

	ageCol := -1
	catCols := make(map[domain.Category]int, len(domain.AllCategories))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "age" {
			ageCol = i
			continue
		}
		if cat, ok := headerAliases[key]; ok {
			catCols[cat] = i
		}
	}

	var missing []string
	if ageCol < 0 {
		missing = append(missing, "age")
	}
	for _, cat := range domain.AllCategories {
		if _, ok := catCols[cat]; !ok {
			missing = append(missing, string(cat))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", name, ErrMissingColumns, strings.Join(missing, ", "))
	}

	var rows []calculation.RateRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", name, line, err)
		}
		if isBlank(record) {
			continue
		}

		age, err := strconv.Atoi(strings.TrimSpace(record[ageCol]))
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: invalid age %q", name, line, record[ageCol])
		}
		row := calculation.RateRow{Age: age, Rates: make(map[domain.Category]decimal.Decimal, len(catCols))}
		for cat, col := range catCols {
			if col >= len(record) {
				return nil, fmt.Errorf("%s: line %d: missing %s value", name, line, cat)
			}
			rate, err := decimal.NewFromString(strings.TrimSpace(record[col]))
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: invalid %s rate %q", name, line, cat, record[col])
			}
			row.Rates[cat] = rate
		}
		rows = append(rows, row)
	}

	return calculation.NewRateTable(name, rows)
}

// WriteRateTableCSV writes a table in the canonical column order.
func WriteRateTableCSV(w io.Writer, table *calculation.RateTable) error {
	cw := csv.NewWriter(w)
	header := []string{"age"}
	for _, cat := range domain.AllCategories {
		header = append(header, string(cat))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range table.Rows() {
		record := []string{strconv.Itoa(row.Age)}
		for _, cat := range domain.AllCategories {
			record = append(record, row.Rates[cat].String())
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// DefaultRateTable returns the embedded table of the given kind.
func DefaultRateTable(kind TableKind) (*calculation.RateTable, error) {
	f, err := defaultTables.Open(kind.defaultFile())
	if err != nil {
		return nil, fmt.Errorf("failed to open default %s: %w", kind.Label(), err)
	}
	defer f.Close()
	return ParseRateTableCSV(kind.Label(), f)
}

// DefaultReferenceData returns the embedded COI tables and the standard
// charge schedule.
func DefaultReferenceData() (calculation.ReferenceData, error) {
	var ref calculation.ReferenceData
	for _, kind := range AllTableKinds {
		table, err := DefaultRateTable(kind)
		if err != nil {
			return calculation.ReferenceData{}, err
		}
		setTable(&ref, kind, table)
	}
	ref.Schedule = calculation.DefaultChargeSchedule()
	return ref, nil
}

// ObjectFetcher retrieves a remote table by URI.
type ObjectFetcher interface {
	Fetch(ctx context.Context, uri string) (io.ReadCloser, error)
}

// TableLoader resolves table sources: embedded defaults, local CSV files
// and, when Remote is set, s3:// objects.
type TableLoader struct {
	Remote ObjectFetcher
}

// NewTableLoader creates a loader; remote may be nil.
func NewTableLoader(remote ObjectFetcher) *TableLoader {
	return &TableLoader{Remote: remote}
}

// Load resolves one table source.
func (tl *TableLoader) Load(ctx context.Context, kind TableKind, source string) (*calculation.RateTable, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return DefaultRateTable(kind)
	case strings.HasPrefix(source, "s3://"):
		if tl.Remote == nil {
			return nil, fmt.Errorf("%s: no S3 client configured for %s", kind.Label(), source)
		}
		body, err := tl.Remote.Fetch(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind.Label(), err)
		}
		defer body.Close()
		return ParseRateTableCSV(kind.Label(), body)
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to open %s: %w", kind.Label(), source, err)
		}
		defer f.Close()
		return ParseRateTableCSV(kind.Label(), f)
	}
}

// LoadReferenceData resolves every table the configuration names and builds
// its charge schedule.
func (tl *TableLoader) LoadReferenceData(ctx context.Context, cfg *domain.Configuration) (calculation.ReferenceData, error) {
	var ref calculation.ReferenceData
	sources := map[TableKind]string{
		TableBase: cfg.Tables.Base,
		TableCI:   cfg.Tables.CI,
		TableECI:  cfg.Tables.ECI,
	}
	for _, kind := range AllTableKinds {
		table, err := tl.Load(ctx, kind, sources[kind])
		if err != nil {
			return calculation.ReferenceData{}, err
		}
		setTable(&ref, kind, table)
	}

	schedule, err := calculation.NewChargeSchedule(cfg.ChargeBandsOrDefault())
	if err != nil {
		return calculation.ReferenceData{}, err
	}
	ref.Schedule = schedule
	return ref, nil
}

// NeedsRemote reports whether any table source is an s3:// URI.
func NeedsRemote(cfg *domain.Configuration) bool {
	for _, s := range []string{cfg.Tables.Base, cfg.Tables.CI, cfg.Tables.ECI} {
		if strings.HasPrefix(strings.TrimSpace(s), "s3://") {
			return true
		}
	}
	return false
}

func setTable(ref *calculation.ReferenceData, kind TableKind, table *calculation.RateTable) {
	switch kind {
	case TableBase:
		ref.Base = table
	case TableCI:
		ref.CI = table
	case TableECI:
		ref.ECI = table
	}
}

// TableOf picks the table of the given kind out of ref.
func TableOf(ref calculation.ReferenceData, kind TableKind) *calculation.RateTable {
	switch kind {
	case TableCI:
		return ref.CI
	case TableECI:
		return ref.ECI
	default:
		return ref.Base
	}
}
