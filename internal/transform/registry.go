package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PolicyTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_return", createSetIllustratedReturn)
	registry.Register("shift_return", createShiftIllustratedReturn)
	registry.Register("premium_holiday", createSetPremiumHoliday)
	registry.Register("scale_premium", createScalePremium)
	registry.Register("set_premium", createSetAnnualPremium)
	registry.Register("set_sum_assured", createSetSumAssured)
	registry.Register("toggle_nlg", createToggleNLG)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PolicyTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_sum_assured:coverage=ci,amount=50000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PolicyTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetIllustratedReturn(params map[string]string) (PolicyTransform, error) {
	pct, err := decimalParam("set_return", params, "pct")
	if err != nil {
		return nil, err
	}
	return &SetIllustratedReturn{ReturnPct: pct}, nil
}

func createShiftIllustratedReturn(params map[string]string) (PolicyTransform, error) {
	delta, err := decimalParam("shift_return", params, "delta")
	if err != nil {
		return nil, err
	}
	return &ShiftIllustratedReturn{Delta: delta}, nil
}

func createSetPremiumHoliday(params map[string]string) (PolicyTransform, error) {
	yearStr, ok := params["after"]
	if !ok {
		return nil, fmt.Errorf("premium_holiday requires 'after' parameter")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("invalid after value: %w", err)
	}
	return &SetPremiumHoliday{AfterYear: year}, nil
}

func createScalePremium(params map[string]string) (PolicyTransform, error) {
	factor, err := decimalParam("scale_premium", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScalePremium{Factor: factor}, nil
}

func createSetAnnualPremium(params map[string]string) (PolicyTransform, error) {
	amount, err := decimalParam("set_premium", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetAnnualPremium{Amount: amount}, nil
}

func createSetSumAssured(params map[string]string) (PolicyTransform, error) {
	coverage, ok := params["coverage"]
	if !ok {
		return nil, fmt.Errorf("set_sum_assured requires 'coverage' parameter")
	}
	amount, err := decimalParam("set_sum_assured", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSumAssured{Coverage: Coverage(strings.ToLower(coverage)), Amount: amount}, nil
}

func createToggleNLG(params map[string]string) (PolicyTransform, error) {
	activeStr, ok := params["active"]
	if !ok {
		return nil, fmt.Errorf("toggle_nlg requires 'active' parameter")
	}
	active, err := strconv.ParseBool(activeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid active value: %w", err)
	}
	return &ToggleNLG{Active: active}, nil
}
