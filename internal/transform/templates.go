package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PolicyTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-if
// variations of a policy illustration
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Return assumptions
	registry.Register(Template{
		Name:        "return_low",
		Description: "Illustrate at 2% a year",
		Transforms:  []PolicyTransform{&SetIllustratedReturn{ReturnPct: decimal.NewFromInt(2)}},
	})
	registry.Register(Template{
		Name:        "return_high",
		Description: "Illustrate at 8% a year",
		Transforms:  []PolicyTransform{&SetIllustratedReturn{ReturnPct: decimal.NewFromInt(8)}},
	})

	// Funding
	registry.Register(Template{
		Name:        "holiday_after_5",
		Description: "Stop premiums after policy year 5",
		Transforms:  []PolicyTransform{&SetPremiumHoliday{AfterYear: 5}},
	})
	registry.Register(Template{
		Name:        "holiday_after_10",
		Description: "Stop premiums after policy year 10",
		Transforms:  []PolicyTransform{&SetPremiumHoliday{AfterYear: 10}},
	})
	registry.Register(Template{
		Name:        "premium_plus_10pct",
		Description: "Raise the annual premium by 10%",
		Transforms:  []PolicyTransform{&ScalePremium{Factor: decimal.NewFromFloat(1.1)}},
	})

	// Coverage and guarantees
	registry.Register(Template{
		Name:        "no_nlg",
		Description: "Illustrate without the non-lapse guarantee",
		Transforms:  []PolicyTransform{&ToggleNLG{Active: false}},
	})
	registry.Register(Template{
		Name:        "no_riders",
		Description: "Drop the CI and ECI riders",
		Transforms: []PolicyTransform{
			&SetSumAssured{Coverage: CoverageCI, Amount: decimal.Zero},
			&SetSumAssured{Coverage: CoverageECI, Amount: decimal.Zero},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Configuration, template Template) (*domain.Configuration, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  ilpgo compare policy.yaml --with return_low,return_high\n")
	sb.WriteString("  ilpgo compare policy.yaml --with holiday_after_5,no_nlg\n")

	return sb.String()
}
