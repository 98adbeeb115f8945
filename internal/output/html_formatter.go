package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/ilpgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/projection.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"whole": FormatWhole,
	"row":   LedgerRow,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(p *domain.Projection) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Projection
		Columns     []string
		Assumptions []string
	}{p, LedgerColumns, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
