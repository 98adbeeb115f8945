package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ilpgo/internal/domain"
)

// JSONFormatter emits the full projection, records and warnings included.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(p *domain.Projection) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
