package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/spf13/cobra"
)

func tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect the COI rate tables",
	}
	cmd.PersistentFlags().String("scenario", "", "Use the tables named by this scenario file instead of the defaults")

	show := &cobra.Command{
		Use:   "show [base|ci|eci]",
		Short: "Print the effective rate table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := config.ParseTableKind(args[0])
			if err != nil {
				return err
			}
			tbl, err := effectiveTable(cmd, kind)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "csv":
				return config.WriteRateTableCSV(cmd.OutOrStdout(), tbl)
			case "table", "":
				fmt.Fprintln(cmd.OutOrStdout(), kind.Label())
				fmt.Fprintln(cmd.OutOrStdout(), renderRateTable(tbl))
				return nil
			default:
				return fmt.Errorf("unknown format %q (valid: table, csv)", format)
			}
		},
	}
	show.Flags().StringP("format", "f", "table", "Output format (table, csv)")

	lookup := &cobra.Command{
		Use:   "lookup [base|ci|eci] [age]",
		Short: "Look up one rate per 1,000 sum assured",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := config.ParseTableKind(args[0])
			if err != nil {
				return err
			}
			age, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid age %q", args[1])
			}
			genderStr, _ := cmd.Flags().GetString("gender")
			gender, err := domain.ParseGender(genderStr)
			if err != nil {
				return err
			}
			smokerStr, _ := cmd.Flags().GetString("smoker")
			smoker, err := domain.ParseSmokerStatus(smokerStr)
			if err != nil {
				return err
			}

			tbl, err := effectiveTable(cmd, kind)
			if err != nil {
				return err
			}
			rate := tbl.Lookup(age, gender, smoker)
			fmt.Fprintf(cmd.OutOrStdout(), "%s, age %d, %s: %s per 1,000\n",
				kind.Label(), age, domain.CategoryFor(gender, smoker), rate.String())
			return nil
		},
	}
	lookup.Flags().String("gender", "male", "male or female")
	lookup.Flags().String("smoker", "nonsmoker", "smoker or nonsmoker")

	cmd.AddCommand(show, lookup)
	return cmd
}

func effectiveTable(cmd *cobra.Command, kind config.TableKind) (*calculation.RateTable, error) {
	scenario, _ := cmd.Flags().GetString("scenario")
	if scenario == "" {
		return config.DefaultRateTable(kind)
	}

	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}
	defer a.close()

	cfg, err := loadScenario(scenario)
	if err != nil {
		return nil, err
	}
	loader, err := a.tableLoader(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	sources := map[config.TableKind]string{
		config.TableBase: cfg.Tables.Base,
		config.TableCI:   cfg.Tables.CI,
		config.TableECI:  cfg.Tables.ECI,
	}
	return loader.Load(cmd.Context(), kind, sources[kind])
}

func renderRateTable(tbl *calculation.RateTable) string {
	headers := []string{"Age"}
	for _, cat := range domain.AllCategories {
		headers = append(headers, string(cat))
	}

	right := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return right
		})

	for _, row := range tbl.Rows() {
		cells := []string{strconv.Itoa(row.Age)}
		for _, cat := range domain.AllCategories {
			cells = append(cells, row.Rates[cat].String())
		}
		t.Row(cells...)
	}
	return t.String()
}
