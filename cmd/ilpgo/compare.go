package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ilpgo/internal/compare"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/rgehrsitz/ilpgo/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [scenario-file] [other-scenario-files...]",
		Short: "Compare a scenario against what-if templates or other scenario files",
		Long: `Compare a base scenario against alternatives.

Examples:
  ilpgo compare scenario.yaml --with return_low,return_high
  ilpgo compare scenario.yaml --with holiday_after_5,no_nlg --format csv
  ilpgo compare scenario.yaml higher_premium.yaml
  ilpgo compare --list-templates  # Show all available templates
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("scenario file required for comparison (use --list-templates to see available templates)")
			}

			templatesStr, _ := cmd.Flags().GetString("with")
			templateNames := transform.ParseTemplateList(templatesStr)
			if len(templateNames) == 0 && len(args) == 1 {
				return fmt.Errorf("--with or a second scenario file is required")
			}
			if len(templateNames) > 0 && len(args) > 1 {
				return fmt.Errorf("use either --with templates or extra scenario files, not both")
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			var render func(*compare.ComparisonSet) (string, error)
			switch strings.ToLower(outputFormat) {
			case "csv":
				render = (&compare.CSVFormatter{}).Format
			case "json":
				render = (&compare.JSONFormatter{Pretty: true}).Format
			case "table", "console", "":
				render = func(set *compare.ComparisonSet) (string, error) {
					return (&compare.TableFormatter{}).Format(set), nil
				}
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", outputFormat)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			base, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			alternatives := make([]*domain.Configuration, 0, len(args)-1)
			for _, path := range args[1:] {
				alt, err := loadScenario(path)
				if err != nil {
					return err
				}
				alternatives = append(alternatives, alt)
			}

			loader, err := a.tableLoader(cmd.Context(), append([]*domain.Configuration{base}, alternatives...)...)
			if err != nil {
				return err
			}

			compareEngine := compare.NewCompareEngine(a.engine, loader)

			var set *compare.ComparisonSet
			if len(templateNames) > 0 {
				set, err = compareEngine.Compare(cmd.Context(), base, compare.CompareOptions{
					Templates:  templateNames,
					ConfigPath: args[0],
				})
			} else {
				set, err = compareEngine.CompareConfigurations(cmd.Context(), base, alternatives)
				if set != nil {
					set.ConfigPath = args[0]
				}
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			out, err := render(set)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}
