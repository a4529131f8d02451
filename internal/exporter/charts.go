package exporter

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"fundingpulse/pkg/contracts/domain"
)

// Chart sizes
const (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 5 * vg.Inch
)

var (
	barColor  = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	lineColor = color.RGBA{R: 0, G: 100, B: 0, A: 255}
)

// ChartRenderer draws the dashboard charts as PNG images
type ChartRenderer struct {
	width  vg.Length
	height vg.Length
	logger *slog.Logger
}

// NewChartRenderer creates a renderer with the default chart size
func NewChartRenderer(logger *slog.Logger) *ChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartRenderer{
		width:  ChartWidth,
		height: ChartHeight,
		logger: logger.With(slog.String("component", "chart_renderer")),
	}
}

// BarChart renders one bar per item, in order
func (c *ChartRenderer) BarChart(w io.Writer, title, xLabel string, items []domain.AmountByKey) error {
	return c.bars(w, title, xLabel, items, false)
}

// ShareChart renders one bar per item labelled with its percentage share
func (c *ChartRenderer) ShareChart(w io.Writer, title, xLabel string, items []domain.AmountByKey) error {
	return c.bars(w, title, xLabel, items, true)
}

// TrendChart renders the month-on-month series as a line with point markers
func (c *ChartRenderer) TrendChart(w io.Writer, title string, mode domain.TrendMode, points []domain.PeriodPoint) error {
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Label()
		values[i] = p.Value.InexactFloat64()
	}

	yLabel := "Investments"
	if mode == domain.TrendAmount {
		yLabel = "Amount"
	}
	return c.line(w, title, "Month", yLabel, labels, values)
}

// YearChart renders a year-indexed series as a line with point markers
func (c *ChartRenderer) YearChart(w io.Writer, title string, points []domain.YearPoint) error {
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = fmt.Sprintf("%d", p.Year)
		values[i] = p.Amount.InexactFloat64()
	}
	return c.line(w, title, "Year", "Amount", labels, values)
}

func (c *ChartRenderer) bars(w io.Writer, title, xLabel string, items []domain.AmountByKey, withShare bool) error {
	p := newPlot(title, xLabel, "Amount")

	if len(items) > 0 {
		values := make(plotter.Values, len(items))
		labels := make([]string, len(items))
		for i, it := range items {
			values[i] = it.Amount.InexactFloat64()
			labels[i] = it.Key
		}

		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return fmt.Errorf("failed to build bar chart: %w", err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)

		p.NominalX(labels...)
		if len(items) > 4 {
			p.X.Tick.Label.Rotation = math.Pi / 6
			p.X.Tick.Label.YAlign = draw.YCenter
			p.X.Tick.Label.XAlign = draw.XRight
		}

		maxValue := maxOf(values)
		p.Y.Min = 0
		p.Y.Max = maxValue * 1.15
		if p.Y.Max == 0 {
			p.Y.Max = 1
		}

		if withShare {
			xys := make([]plotter.XY, len(items))
			shareLabels := make([]string, len(items))
			for i, it := range items {
				xys[i] = plotter.XY{X: float64(i), Y: values[i] + p.Y.Max*0.02}
				shareLabels[i] = FormatPercent(it.Share)
			}
			labelsPlot, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: shareLabels})
			if err != nil {
				return fmt.Errorf("failed to build share labels: %w", err)
			}
			for i := range labelsPlot.TextStyle {
				labelsPlot.TextStyle[i].XAlign = draw.XCenter
			}
			p.Add(labelsPlot)
		}
	}

	return c.write(w, p, title)
}

func (c *ChartRenderer) line(w io.Writer, title, xLabel, yLabel string, labels []string, values []float64) error {
	p := newPlot(title, xLabel, yLabel)

	if len(values) > 0 {
		points := make(plotter.XYs, len(values))
		for i, v := range values {
			points[i].X = float64(i)
			points[i].Y = v
		}

		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return fmt.Errorf("failed to build line chart: %w", err)
		}
		line.Color = lineColor
		line.Width = vg.Points(2)
		scatter.GlyphStyle.Color = lineColor
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(line, scatter)

		p.NominalX(labels...)
		if len(labels) > 12 {
			p.X.Tick.Label.Rotation = math.Pi / 3
			p.X.Tick.Label.YAlign = draw.YCenter
			p.X.Tick.Label.XAlign = draw.XRight
		}
		p.Y.Min = 0
	}

	return c.write(w, p, title)
}

func (c *ChartRenderer) write(w io.Writer, p *plot.Plot, title string) error {
	wt, err := p.WriterTo(c.width, c.height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png canvas: %w", err)
	}
	n, err := wt.WriteTo(w)
	if err != nil {
		return fmt.Errorf("failed to write chart %q: %w", title, err)
	}

	c.logger.Debug("Chart rendered",
		slog.String("title", title),
		slog.Int64("bytes", n))
	return nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
