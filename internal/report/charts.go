package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/reelstats/reelstats/internal/analytics"
)

const (
	chartWidth  = 1000
	chartHeight = 700

	marginLeft   = 90.0
	marginRight  = 40.0
	marginTop    = 60.0
	marginBottom = 110.0

	histogramBins  = 10
	labelTopViewed = 5
)

// Chart file names written by RenderCharts.
const (
	ChartBudgetVsRating     = "budget_vs_rating.png"
	ChartBudgetDistribution = "budget_distribution.png"
	ChartGenreAverages      = "genre_average_rating.png"
	ChartGenreDistribution  = "genre_distribution.png"
	ChartViewsVsBudget      = "trailer_views_vs_budget.png"
)

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// RenderCharts draws one PNG per chart whose summary has data and returns the
// paths written.
func RenderCharts(dir string, res *analytics.Results) ([]string, error) {
	if res == nil {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	charts := make(map[string]*gg.Context)
	var order []string
	add := func(name string, dc *gg.Context) {
		charts[name] = dc
		order = append(order, name)
	}

	if res.Extremes != nil {
		add(ChartBudgetVsRating, BudgetVsRatingChart(res.Extremes))
		add(ChartBudgetDistribution, BudgetHistogram(res.Extremes))
	}
	if len(res.Genres) > 0 {
		add(ChartGenreAverages, GenreAverageChart(res.Genres))
		add(ChartGenreDistribution, GenrePieChart(res.Genres))
	}
	if res.Popularity != nil {
		add(ChartViewsVsBudget, ViewsVsBudgetChart(res.Popularity))
	}

	paths := make([]string, 0, len(order))
	for _, name := range order {
		path := filepath.Join(dir, name)
		if err := charts[name].SavePNG(path); err != nil {
			return paths, fmt.Errorf("save %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// BudgetVsRatingChart scatters budget against rating.
func BudgetVsRatingChart(e *analytics.Extremes) *gg.Context {
	xs := make([]float64, len(e.Rows))
	ys := make([]float64, len(e.Rows))
	for i, r := range e.Rows {
		xs[i] = float64(r.Budget)
		ys[i] = r.Rating
	}

	p := newPlot("Budget vs IMDb Rating", "Budget (USD)", "IMDb Rating", xs, ys)
	p.scatter(xs, ys, "#1f77b4")
	return p.dc
}

// BudgetHistogram buckets budgets into equal width bins.
func BudgetHistogram(e *analytics.Extremes) *gg.Context {
	budgets := make([]float64, len(e.Rows))
	for i, r := range e.Rows {
		budgets[i] = float64(r.Budget)
	}
	lo, hi, counts := histogram(budgets, histogramBins)

	maxCount := 0.0
	for _, c := range counts {
		maxCount = math.Max(maxCount, float64(c))
	}

	p := newPlot("Budget Distribution of Movies", "Budget", "Number of Movies", []float64{lo, hi}, []float64{0, maxCount})
	p.ymin = 0
	p.drawAxes()

	width := (hi - lo) / float64(len(counts))
	for i, c := range counts {
		x0 := p.px(lo + float64(i)*width)
		x1 := p.px(lo + float64(i+1)*width)
		y := p.py(float64(c))
		p.dc.DrawRectangle(x0, y, x1-x0, p.y1-y)
		p.dc.SetHexColor("#2ca02c")
		p.dc.FillPreserve()
		p.dc.SetRGB(0, 0, 0)
		p.dc.SetLineWidth(1)
		p.dc.Stroke()
	}
	return p.dc
}

// GenreAverageChart draws one bar per genre.
func GenreAverageChart(genres []analytics.GenreAverage) *gg.Context {
	maxAvg := 0.0
	for _, g := range genres {
		maxAvg = math.Max(maxAvg, g.Average)
	}

	p := newPlot("Average IMDb Rating by Genre", "Genre", "Average Rating",
		[]float64{0, float64(len(genres))}, []float64{0, maxAvg})
	p.xmin, p.xmax, p.ymin = 0, float64(len(genres)), 0
	p.drawFrame()
	p.drawYTicks()

	slot := (p.x1 - p.x0) / float64(len(genres))
	for i, g := range genres {
		x := p.x0 + float64(i)*slot
		y := p.py(g.Average)
		p.dc.DrawRectangle(x+slot*0.15, y, slot*0.7, p.y1-y)
		p.dc.SetHexColor("#1f77b4")
		p.dc.Fill()

		p.dc.SetRGB(0, 0, 0)
		cx := x + slot/2
		p.dc.Push()
		p.dc.RotateAbout(gg.Radians(-45), cx, p.y1+12)
		p.dc.DrawStringAnchored(g.Genre, cx, p.y1+12, 1, 0.5)
		p.dc.Pop()
	}
	return p.dc
}

// GenrePieChart shows the share of valid ratings per genre.
func GenrePieChart(genres []analytics.GenreAverage) *gg.Context {
	dc := newCanvas("Genre Distribution in OMDb Movies")

	total := 0
	for _, g := range genres {
		total += g.Count
	}

	cx, cy := float64(chartWidth)*0.38, float64(chartHeight)/2+20
	r := float64(chartHeight)/2 - 90
	angle := -math.Pi / 2
	legendY := marginTop + 40

	for i, g := range genres {
		share := float64(g.Count) / float64(total)
		next := angle + share*2*math.Pi
		color := palette[i%len(palette)]

		dc.SetHexColor(color)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, angle, next)
		dc.ClosePath()
		dc.Fill()
		angle = next

		lx := float64(chartWidth) * 0.72
		dc.DrawRectangle(lx, legendY-8, 14, 14)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%s (%.1f%%)", g.Genre, share*100), lx+22, legendY, 0, 0.5)
		legendY += 24
	}
	return dc
}

// ViewsVsBudgetChart scatters budget in millions against total trailer views
// and labels the most viewed movies.
func ViewsVsBudgetChart(pop *analytics.Popularity) *gg.Context {
	xs := make([]float64, len(pop.Movies))
	ys := make([]float64, len(pop.Movies))
	for i, m := range pop.Movies {
		xs[i] = float64(m.Budget) / 1_000_000
		ys[i] = float64(m.Views)
	}

	p := newPlot("YouTube Trailer Views vs Movie Budget", "Movie Budget (Millions USD)", "Total Trailer Views", xs, ys)
	p.scatter(xs, ys, "#008080")

	p.dc.SetRGB(0, 0, 0)
	for _, m := range pop.TopByViews(labelTopViewed) {
		x, y := p.px(float64(m.Budget)/1_000_000), p.py(float64(m.Views))
		p.dc.DrawStringAnchored(m.Title, x+6, y-6, 0, 0)
	}
	return p.dc
}

func newCanvas(title string) *gg.Context {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(chartWidth)/2, marginTop/2, 0.5, 0.5)
	return dc
}

// plot is a rectangular data area with linear axes.
type plot struct {
	dc             *gg.Context
	x0, y0, x1, y1 float64
	xmin, xmax     float64
	ymin, ymax     float64
	xlabel, ylabel string
}

func newPlot(title, xlabel, ylabel string, xs, ys []float64) *plot {
	p := &plot{
		dc:     newCanvas(title),
		x0:     marginLeft,
		y0:     marginTop,
		x1:     chartWidth - marginRight,
		y1:     chartHeight - marginBottom,
		xlabel: xlabel,
		ylabel: ylabel,
	}
	p.xmin, p.xmax = paddedRange(xs)
	p.ymin, p.ymax = paddedRange(ys)
	return p
}

func (p *plot) px(x float64) float64 {
	return p.x0 + (x-p.xmin)/(p.xmax-p.xmin)*(p.x1-p.x0)
}

func (p *plot) py(y float64) float64 {
	return p.y1 - (y-p.ymin)/(p.ymax-p.ymin)*(p.y1-p.y0)
}

func (p *plot) drawAxes() {
	p.drawFrame()
	p.drawYTicks()

	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := p.xmin + float64(i)*(p.xmax-p.xmin)/ticks
		x := p.px(v)
		p.dc.DrawLine(x, p.y1, x, p.y1+5)
		p.dc.Stroke()
		p.dc.DrawStringAnchored(tickLabel(v), x, p.y1+18, 0.5, 0.5)
	}
}

func (p *plot) drawFrame() {
	p.dc.SetRGB(0, 0, 0)
	p.dc.SetLineWidth(1)
	p.dc.DrawLine(p.x0, p.y1, p.x1, p.y1)
	p.dc.DrawLine(p.x0, p.y0, p.x0, p.y1)
	p.dc.Stroke()

	p.dc.DrawStringAnchored(p.xlabel, (p.x0+p.x1)/2, chartHeight-30, 0.5, 0.5)

	lx, ly := 25.0, (p.y0+p.y1)/2
	p.dc.Push()
	p.dc.RotateAbout(gg.Radians(-90), lx, ly)
	p.dc.DrawStringAnchored(p.ylabel, lx, ly, 0.5, 0.5)
	p.dc.Pop()
}

func (p *plot) drawYTicks() {
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := p.ymin + float64(i)*(p.ymax-p.ymin)/ticks
		y := p.py(v)
		p.dc.DrawLine(p.x0-5, y, p.x0, y)
		p.dc.Stroke()
		p.dc.DrawStringAnchored(tickLabel(v), p.x0-8, y, 1, 0.5)
	}
}

func (p *plot) scatter(xs, ys []float64, color string) {
	p.drawAxes()
	p.dc.SetHexColor(color)
	for i := range xs {
		p.dc.DrawCircle(p.px(xs[i]), p.py(ys[i]), 4)
		p.dc.Fill()
	}
}

// paddedRange returns the data range widened by 5% on each side, or by one
// unit when all values are equal.
func paddedRange(vs []float64) (float64, float64) {
	if len(vs) == 0 {
		return 0, 1
	}
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// histogram splits values into n equal width bins over [min, max].
func histogram(values []float64, n int) (float64, float64, []int) {
	counts := make([]int, n)
	if len(values) == 0 {
		return 0, 1, counts
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(n)
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}
	return lo, hi, counts
}

func tickLabel(v float64) string {
	if math.Abs(v) >= 1000 {
		return humanize.SIWithDigits(v, 1, "")
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
