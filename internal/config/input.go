package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	minStartYear = 1900
	maxStartYear = 2100
	maxEntryAge  = 99
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config *domain.Configuration
	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		config, err = ip.ParseJSON(data)
	} else {
		config, err = ip.ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return config, nil
}

// ParseYAML decodes and validates a YAML scenario.
func (ip *InputParser) ParseYAML(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ParseJSON decodes and validates a JSON scenario with the same shape as the
// YAML file.
func (ip *InputParser) ParseJSON(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is empty")
	}
	if err := ip.validatePolicy(&config.Policy); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}
	for i, band := range config.Charges {
		if err := validateChargeBand(band); err != nil {
			return fmt.Errorf("charge band %d validation failed: %w", i+1, err)
		}
	}
	if config.ProjectionYears < 0 {
		return fmt.Errorf("projection_years cannot be negative")
	}
	for name, src := range map[string]string{"base": config.Tables.Base, "ci": config.Tables.CI, "eci": config.Tables.ECI} {
		if strings.HasPrefix(src, "s3://") {
			if _, _, err := ParseS3URI(src); err != nil {
				return fmt.Errorf("tables.%s: %w", name, err)
			}
		}
	}
	return nil
}

func (ip *InputParser) validatePolicy(p *domain.PolicyParameters) error {
	if p.CurrentAge < 0 || p.CurrentAge > maxEntryAge {
		return fmt.Errorf("current_age must be between 0 and %d, got %d", maxEntryAge, p.CurrentAge)
	}
	if _, err := domain.ParseGender(string(p.Gender)); err != nil {
		return err
	}
	if _, err := domain.ParseSmokerStatus(string(p.SmokerStatus)); err != nil {
		return err
	}
	if p.StartMonth < 1 || p.StartMonth > 12 {
		return fmt.Errorf("start_month must be between 1 and 12, got %d", p.StartMonth)
	}
	if p.StartYear < minStartYear || p.StartYear > maxStartYear {
		return fmt.Errorf("start_year must be between %d and %d, got %d", minStartYear, maxStartYear, p.StartYear)
	}
	if p.PremiumHolidayYear < 0 {
		return fmt.Errorf("premium_holiday_year cannot be negative")
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"annual_premium", p.AnnualPremium},
		{"current_account_value", p.CurrentAccountValue},
		{"base_sum_assured", p.BaseSumAssured},
		{"ci_sum_assured", p.CISumAssured},
		{"eci_sum_assured", p.ECISumAssured},
		{"reward_pct", p.RewardPct},
		{"policy_fee_monthly", p.PolicyFeeMonthly},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.field)
		}
	}
	return nil
}

func validateChargeBand(b domain.ChargeBand) error {
	if b.FromYear < 1 {
		return fmt.Errorf("policy_year_from must be at least 1")
	}
	if b.ToYear < b.FromYear {
		return fmt.Errorf("policy_year_to (%d) cannot be before policy_year_from (%d)", b.ToYear, b.FromYear)
	}
	if b.PremiumChargePct.IsNegative() {
		return fmt.Errorf("premium_charge_pct cannot be negative")
	}
	return nil
}

// MarshalYAML renders a configuration as a scenario file.
func MarshalYAML(config *domain.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toFileShape(config)); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
