package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/rgehrsitz/ilpgo/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ilpgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ilpgo",
		Short: "Investment-linked policy projection CLI",
		Long: `Project the account value of an investment-linked life policy year by year:
premium charges, loyalty rewards, policy fees, cost of insurance for the base
cover and the CI/ECI riders, growth, the non-lapse guarantee and lapse.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("env-file", "", "Load settings from this .env file (default: ./.env if present)")
	root.PersistentFlags().Bool("debug", false, "Log every projection year")

	root.AddCommand(projectCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(exampleCmd())
	root.AddCommand(tablesCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// app bundles what every command needs: settings, a logger and the engine.
type app struct {
	settings config.Settings
	log      *logging.Sugared
	engine   *calculation.ProjectionEngine
}

func newApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	var settings config.Settings
	if envFile != "" {
		if !fileExists(envFile) {
			return nil, fmt.Errorf("env file %s not found", envFile)
		}
		settings = config.LoadSettings(envFile)
	} else {
		settings = config.LoadSettings()
	}

	level := settings.LogLevel
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	log := logging.NewSugared(logging.NewTo(level, settings.Production(), cmd.ErrOrStderr()))

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(log)

	return &app{settings: settings, log: log, engine: engine}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// tableLoader returns a loader with S3 access when any scenario needs it.
func (a *app) tableLoader(ctx context.Context, cfgs ...*domain.Configuration) (*config.TableLoader, error) {
	remote := false
	for _, cfg := range cfgs {
		if cfg != nil && config.NeedsRemote(cfg) {
			remote = true
		}
	}
	if !remote {
		return config.NewTableLoader(nil), nil
	}
	fetcher, err := config.NewS3TableFetcher(ctx, a.settings.AWSRegion)
	if err != nil {
		return nil, err
	}
	return config.NewTableLoader(fetcher), nil
}

func loadScenario(path string) (*domain.Configuration, error) {
	return config.NewInputParser().LoadFromFile(path)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
