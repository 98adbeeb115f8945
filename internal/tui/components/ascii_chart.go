package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/rgehrsitz/ilpgo/internal/tui/tuistyles"
)

const yAxisWidth = 10

// DataSeries is one line of a chart.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws one or more series on a character grid.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string
	Width      int
	Height     int
	XAxisLabel string
}

// NewASCIIChart creates an empty chart.
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{Title: title, Width: 72, Height: 15}
}

// ProjectionChart plots the end-of-year account value by age. The NLG debt
// line is added only when the guarantee ever carried a debt.
func ProjectionChart(p *domain.Projection) *ASCIIChart {
	c := NewASCIIChart("Account value by age").WithAxisLabel("Attained age")
	if p == nil || len(p.Records) == 0 {
		return c
	}

	values := make([]float64, len(p.Records))
	debt := make([]float64, len(p.Records))
	labels := make([]string, len(p.Records))
	hasDebt := false
	for i, r := range p.Records {
		values[i] = r.EndAccountValue.InexactFloat64()
		debt[i] = r.CumulativeNLGDebt.InexactFloat64()
		labels[i] = strconv.Itoa(r.Age)
		if r.CumulativeNLGDebt.IsPositive() {
			hasDebt = true
		}
	}

	c.AddSeries("Account value", values, tuistyles.ColorChartLine1)
	if hasDebt {
		c.AddSeries("NLG debt", debt, tuistyles.ColorChartLine2)
	}
	return c.WithLabels(labels)
}

// AddSeries appends a line.
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels, one per point.
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the outer dimensions. Values too small to draw are raised.
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = max(width, yAxisWidth+12)
	c.Height = max(height, 3)
	return c
}

// WithAxisLabel sets the caption under the x-axis.
func (c *ASCIIChart) WithAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

func (c *ASCIIChart) empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Render returns the chart as styled text.
func (c *ASCIIChart) Render() string {
	if c.empty() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	b.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
	}
	if len(c.Series) > 1 {
		b.WriteString("\n\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

// bounds returns the padded value range. The range is never empty.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo >= 0 && hi > 0 {
		// balances are never negative, keep zero on the axis
		lo = 0
	}
	if hi-lo < 1 {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo != 0 {
		lo -= pad
	}
	return lo, hi + pad
}

func (c *ASCIIChart) plotWidth() int { return c.Width - yAxisWidth - 3 }

// column maps point i of n onto the plot width.
func (c *ASCIIChart) column(i, n int) int {
	if n <= 1 {
		return 0
	}
	return int(float64(i) / float64(n-1) * float64(c.plotWidth()-1))
}

func (c *ASCIIChart) row(v, lo, hi float64) int {
	return c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := c.plotWidth()
	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for idx, s := range c.Series {
		mark := seriesChar(idx)
		n := len(s.Points)
		for i, v := range s.Points {
			x, y := c.column(i, n), c.row(v, lo, hi)
			if i > 0 {
				drawLine(grid, c.column(i-1, n), c.row(s.Points[i-1], lo, hi), x, y, mark)
			}
			plot(grid, x, y, mark, true)
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var b strings.Builder
	for i, r := range grid {
		v := hi - float64(i)/float64(c.Height-1)*(hi-lo)
		b.WriteString(axis.Render(formatChartValue(v)))
		b.WriteString(" │ ")
		b.WriteString(c.colourRow(r))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", width+1))
	if len(c.Labels) > 0 {
		b.WriteString("\n")
		b.WriteString(c.renderXAxisLabels())
	}
	return b.String()
}

// colourRow applies each series colour to its marks.
func (c *ASCIIChart) colourRow(r []rune) string {
	var b strings.Builder
	for _, ch := range r {
		styled := false
		for idx, s := range c.Series {
			if ch == seriesChar(idx) && s.Color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(s.Color).Render(string(ch)))
				styled = true
				break
			}
		}
		if !styled {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

func plot(grid [][]rune, x, y int, ch rune, overwrite bool) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	if overwrite || grid[y][x] == ' ' {
		grid[y][x] = ch
	}
}

// drawLine joins two grid cells (Bresenham).
func drawLine(grid [][]rune, x0, y0, x1, y1 int, ch rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		plot(grid, x0, y0, ch, false)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// renderXAxisLabels places up to six labels under their columns, dropping any
// that would overlap the previous one.
func (c *ASCIIChart) renderXAxisLabels() string {
	const maxLabels = 6
	n := len(c.Labels)
	step := max(1, (n+maxLabels-1)/maxLabels)

	line := []rune(strings.Repeat(" ", yAxisWidth+3+c.plotWidth()+4))
	next := 0
	for i := 0; i < n; i += step {
		pos := yAxisWidth + 3 + c.column(i, n)
		label := []rune(c.Labels[i])
		if pos < next || pos+len(label) > len(line) {
			continue
		}
		copy(line[pos:], label)
		next = pos + len(label) + 1
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		mark := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", mark, s.Name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue abbreviates axis values, e.g. $152K.
func formatChartValue(value float64) string {
	switch a := math.Abs(value); {
	case a >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case a >= 1_000:
		return fmt.Sprintf("$%.0fK", value/1_000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
