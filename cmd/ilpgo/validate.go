package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file and the tables it names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			cfg, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			loader, err := a.tableLoader(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ref, err := loader.LoadReferenceData(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cat := cfg.Policy.Category()
			for _, kind := range config.AllTableKinds {
				if !config.TableOf(ref, kind).Has(cat) {
					return fmt.Errorf("%s has no %s column", kind.Label(), cat)
				}
			}
			for _, o := range ref.Schedule.Overlaps() {
				fmt.Fprintf(out, "Warning: charge bands %d and %d overlap in policy years %d-%d\n",
					o.First+1, o.Second+1, o.From, o.To)
			}

			fmt.Fprintf(out, "Scenario file %s is valid\n", args[0])
			return nil
		},
	}
}

func exampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example [output-file]",
		Short: "Generate an example scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := args[0]
			force, _ := cmd.Flags().GetBool("force")
			if fileExists(outputFile) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outputFile)
			}

			data, err := config.MarshalYAML(config.ExampleConfiguration(time.Now().Year()))
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Example scenario saved to %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
