package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ilpgo/internal/output"
	"github.com/rgehrsitz/ilpgo/internal/transform"
	"github.com/spf13/cobra"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [scenario-file]",
		Short: "Project a policy year by year",
		Long: `Run the projection for a scenario file and print the ledger.

Examples:
  ilpgo project scenario.yaml
  ilpgo project scenario.yaml --format csv --save
  ilpgo project scenario.yaml --format html --output report.html --years 40
  ilpgo project scenario.yaml --apply set_return:pct=6 --apply premium_holiday:after=12
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			cfg, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			if specs, _ := cmd.Flags().GetStringArray("apply"); len(specs) > 0 {
				registry := transform.NewTransformRegistry()
				transforms := make([]transform.PolicyTransform, 0, len(specs))
				for _, spec := range specs {
					t, err := registry.ParseTransformSpec(spec)
					if err != nil {
						return fmt.Errorf("invalid --apply %q: %w (transforms: %s)", spec, err, strings.Join(registry.List(), ", "))
					}
					transforms = append(transforms, t)
				}
				if cfg, err = transform.ApplyTransforms(cfg, transforms); err != nil {
					return err
				}
			}
			if years, _ := cmd.Flags().GetInt("years"); years > 0 {
				cfg.ProjectionYears = years
			}

			loader, err := a.tableLoader(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ref, err := loader.LoadReferenceData(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			engine := a.engine
			if cfg.ProjectionYears > 0 {
				engine = engine.WithHorizon(cfg.ProjectionYears)
			}
			projection, err := engine.RunReference(cfg.Policy, ref)
			if err != nil {
				return err
			}
			projection.Name = cfg.Name
			a.log.Infof("run %s: %d years, final account value %s", projection.RunID,
				projection.Summary.Years, projection.Summary.FinalAccountValue.StringFixed(2))

			outputPath, _ := cmd.Flags().GetString("output")
			save, _ := cmd.Flags().GetBool("save")
			if outputPath == "" && !save {
				data, err := formatter.Format(projection)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			written, err := output.WriteFormatted(formatter, projection, outputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Projection written to %s\n", written)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, html)")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Bool("save", false, "Write to ilp_projection.<ext> in the current directory")
	cmd.Flags().StringArray("apply", nil, "Apply a transform before projecting, e.g. set_return:pct=6 (repeatable)")
	cmd.Flags().Int("years", 0, "Limit the projection to this many policy years")
	return cmd
}
