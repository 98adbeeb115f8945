package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rgehrsitz/ilpgo/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(p *domain.Projection) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the output is saved.
	Extension() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID  string
	Ext string
	F   func(*domain.Projection) ([]byte, error)
}

func (ff FormatterFunc) Format(p *domain.Projection) ([]byte, error) { return ff.F(p) }
func (ff FormatterFunc) Name() string                                { return ff.ID }
func (ff FormatterFunc) Extension() string                           { return ff.Ext }

// DefaultFilename is the download name used when no output path is given.
func DefaultFilename(f Formatter) string {
	return "ilp_projection." + f.Extension()
}

// WriteFormatted runs a formatter and writes its output to filename, or to
// DefaultFilename when filename is empty. It returns the path written.
func WriteFormatted(f Formatter, p *domain.Projection, filename string) (string, error) {
	data, err := f.Format(p)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = DefaultFilename(f)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
	HTMLFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":       "console",
	"text":        "console",
	"ledger":      "console",
	"csv-ledger":  "csv",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
