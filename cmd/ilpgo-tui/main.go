package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/rgehrsitz/ilpgo/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ilpgo-tui <scenario-file>")
		os.Exit(1)
	}
	configPath := os.Args[1]

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: scenario file not found: %s\n", configPath)
		os.Exit(1)
	}

	settings := config.LoadSettings()
	if settings.LogLevel == "debug" {
		// the terminal belongs to the UI, so debug output goes to a file
		f, err := tea.LogToFile("ilpgo-tui.log", "ilpgo")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	// s3:// table sources need a client; local and embedded tables do not
	var remote config.ObjectFetcher
	if settings.AWSRegion != "" {
		fetcher, err := config.NewS3TableFetcher(context.Background(), settings.AWSRegion)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		remote = fetcher
	}

	model := tui.NewModel(configPath, calculation.NewProjectionEngine(), config.NewTableLoader(remote))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
