package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/rgehrsitz/ilpgo/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Projection        *calculation.ProjectionEngine
	Tables            *config.TableLoader
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine. A nil loader resolves
// only embedded and local tables.
func NewCompareEngine(pe *calculation.ProjectionEngine, tables *config.TableLoader) *CompareEngine {
	if tables == nil {
		tables = config.NewTableLoader(nil)
	}
	return &CompareEngine{
		Projection:        pe,
		Tables:            tables,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // List of template names to apply
	ConfigPath string
}

// variant is one scenario to run, already transformed.
type variant struct {
	cfg         *domain.Configuration
	name        string
	description string
}

// Compare runs the base configuration and one alternative per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	cfg *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no base configuration")
	}

	baseName := scenarioName(cfg, "base")
	variants := []variant{{cfg: cfg, name: baseName, description: "As configured"}}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(cfg, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = baseName + "_" + template.Name

		variants = append(variants, variant{cfg: modified, name: modified.Name, description: template.Description})
	}

	return ce.run(ctx, variants, options.ConfigPath)
}

// CompareConfigurations compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareConfigurations(
	ctx context.Context,
	base *domain.Configuration,
	alternatives []*domain.Configuration,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("no base configuration")
	}

	variants := []variant{{cfg: base, name: scenarioName(base, "base"), description: "As configured"}}
	for i, alt := range alternatives {
		variants = append(variants, variant{
			cfg:         alt,
			name:        scenarioName(alt, fmt.Sprintf("alternative_%d", i+1)),
			description: "Scenario file",
		})
	}
	return ce.run(ctx, variants, "")
}

func (ce *CompareEngine) run(ctx context.Context, variants []variant, configPath string) (*ComparisonSet, error) {
	jobs := make([]calculation.BatchJob, 0, len(variants))
	cache := make(map[domain.TableSources]calculation.ReferenceData)

	for _, v := range variants {
		ref, err := ce.referenceFor(ctx, v.cfg, cache)
		if err != nil {
			return nil, fmt.Errorf("failed to load tables for %s: %w", v.name, err)
		}
		jobs = append(jobs, calculation.BatchJob{
			Name:      v.name,
			Params:    v.cfg.Policy,
			Reference: ref,
			Years:     v.cfg.ProjectionYears,
		})
	}

	results, err := ce.Projection.RunBatch(ctx, jobs)
	if err != nil {
		return nil, err
	}

	metrics := make([]ComparisonResult, len(results))
	for i, res := range results {
		if res.Err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", res.Name, res.Err)
		}
		metrics[i] = ce.MetricsCalculator.CalculateMetrics(res.Name, variants[i].cfg.Policy, res.Projection)
		metrics[i].Description = variants[i].description
	}

	baseResult := metrics[0]
	alternatives := make([]ComparisonResult, 0, len(metrics)-1)
	for _, alt := range metrics[1:] {
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseResult.ScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         configPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// referenceFor loads tables once per distinct source set. The charge
// schedule always comes from the variant itself.
func (ce *CompareEngine) referenceFor(ctx context.Context, cfg *domain.Configuration, cache map[domain.TableSources]calculation.ReferenceData) (calculation.ReferenceData, error) {
	if ref, ok := cache[cfg.Tables]; ok {
		schedule, err := calculation.NewChargeSchedule(cfg.ChargeBandsOrDefault())
		if err != nil {
			return calculation.ReferenceData{}, err
		}
		ref.Schedule = schedule
		return ref, nil
	}

	ref, err := ce.Tables.LoadReferenceData(ctx, cfg)
	if err != nil {
		return calculation.ReferenceData{}, err
	}
	cache[cfg.Tables] = ref
	return ref, nil
}

func scenarioName(cfg *domain.Configuration, fallback string) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return fallback
}
