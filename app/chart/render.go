package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// svgChart is an instance rendered once at construction; Dispose drops the
// buffer.
type svgChart struct {
	slot string
	svg  []byte
}

func (c *svgChart) Render(w io.Writer) error {
	if c.svg == nil {
		return ErrDisposed
	}
	_, err := w.Write(c.svg)
	return err
}

func (c *svgChart) Dispose() {
	c.svg = nil
}

// RenderSVG is the default Factory.
func RenderSVG(slot string, cfg Config) (Chart, error) {
	var buf bytes.Buffer

	var err error
	switch cfg.Kind {
	case KindDoughnut:
		err = renderDoughnut(cfg, &buf)
	case KindBar:
		err = renderBar(cfg, &buf)
	case KindLine:
		err = renderLine(cfg, &buf)
	case KindRadar:
		err = renderRadar(cfg, &buf)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	return &svgChart{slot: slot, svg: buf.Bytes()}, nil
}

func percentTicks(max float64) []gochart.Tick {
	ticks := make([]gochart.Tick, 0, 6)
	for i := 0; i <= 5; i++ {
		v := max * float64(i) / 5
		ticks = append(ticks, gochart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

func renderDoughnut(cfg Config, w io.Writer) error {
	width, height := cfg.size()
	if len(cfg.Datasets) == 0 {
		return renderEmpty(cfg, w)
	}
	ds := cfg.Datasets[0]

	values := make([]gochart.Value, 0, len(ds.Data))
	for i, v := range ds.Data {
		// go-chart normalizes by the total, zero slices carry no area
		if v <= 0 {
			continue
		}
		label := ""
		if i < len(cfg.Labels) {
			label = cfg.Labels[i]
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%s)", label, strconv.FormatFloat(v, 'f', -1, 64)),
			Value: v,
			Style: gochart.Style{FillColor: colorAt(ds.Colors, i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return renderEmpty(cfg, w)
	}

	dc := gochart.DonutChart{
		Title:  cfg.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return dc.Render(gochart.SVG, w)
}

func renderBar(cfg Config, w io.Writer) error {
	width, height := cfg.size()
	if len(cfg.Datasets) == 0 || len(cfg.Labels) == 0 {
		return renderEmpty(cfg, w)
	}
	ds := cfg.Datasets[0]

	bars := make([]gochart.Value, 0, len(cfg.Labels))
	for i, label := range cfg.Labels {
		v := 0.0
		if i < len(ds.Data) {
			v = ds.Data[i]
		}
		bars = append(bars, gochart.Value{
			Label: label,
			Value: v,
			Style: gochart.Style{FillColor: colorAt(ds.Colors, i), StrokeColor: colorAt(ds.Colors, i)},
		})
	}

	bc := gochart.BarChart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		BarWidth:   40,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Bars:       bars,
	}
	scale := yScale(cfg)
	bc.YAxis = gochart.YAxis{
		Range: &gochart.ContinuousRange{Min: 0, Max: scale},
		Ticks: percentTicks(scale),
	}
	return bc.Render(gochart.SVG, w)
}

func renderLine(cfg Config, w io.Writer) error {
	width, height := cfg.size()
	n := len(cfg.Labels)
	if n == 0 || len(cfg.Datasets) == 0 {
		return renderEmpty(cfg, w)
	}

	// go-chart takes the x range from the ticks, the blank ticks at each end
	// keep it wide enough for a single subject
	xs := make([]float64, n)
	ticks := make([]gochart.Tick, 0, n+2)
	ticks = append(ticks, gochart.Tick{Value: -0.5})
	for i, label := range cfg.Labels {
		xs[i] = float64(i)
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: label})
	}
	ticks = append(ticks, gochart.Tick{Value: float64(n) - 0.5})

	series := make([]gochart.Series, 0, len(cfg.Datasets))
	for _, ds := range cfg.Datasets {
		ys := make([]float64, n)
		copy(ys, ds.Data)
		col := parseColor(ds.BorderColor)
		series = append(series, gochart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    4,
			},
		})
	}

	scale := yScale(cfg)
	ch := gochart.Chart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      gochart.XAxis{Ticks: ticks},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: scale},
			Ticks: percentTicks(scale),
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(gochart.SVG, w)
}

// renderRadar draws the multi-axis chart directly on a go-chart SVG renderer;
// go-chart has no radar type.
func renderRadar(cfg Config, w io.Writer) error {
	width, height := cfg.size()
	n := len(cfg.Labels)
	if n == 0 || len(cfg.Datasets) == 0 {
		return renderEmpty(cfg, w)
	}

	r, err := gochart.SVG(width, height)
	if err != nil {
		return err
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)

	scaleMax := yScale(cfg)

	cx, cy := width/2, height/2
	radius := float64(minInt(width, height))/2 - 60
	if radius < 10 {
		radius = 10
	}

	point := func(i int, frac float64) (int, int) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		return cx + int(math.Round(math.Cos(angle)*radius*frac)),
			cy + int(math.Round(math.Sin(angle)*radius*frac))
	}

	// 1. Grid rings and spokes
	grid := drawing.Color{R: 200, G: 200, B: 200, A: 255}
	r.SetStrokeColor(grid)
	r.SetStrokeWidth(1)
	for ring := 1; ring <= 5; ring++ {
		frac := float64(ring) / 5
		x, y := point(0, frac)
		r.MoveTo(x, y)
		for i := 1; i < n; i++ {
			x, y = point(i, frac)
			r.LineTo(x, y)
		}
		r.Close()
		r.Stroke()
	}
	for i := 0; i < n; i++ {
		x, y := point(i, 1)
		r.MoveTo(cx, cy)
		r.LineTo(x, y)
		r.Stroke()
	}

	// 2. One polygon per dataset
	for _, ds := range cfg.Datasets {
		frac := func(i int) float64 {
			if i >= len(ds.Data) {
				return 0
			}
			return math.Max(0, math.Min(ds.Data[i]/scaleMax, 1))
		}
		r.SetFillColor(colorAt(ds.Colors, 0))
		r.SetStrokeColor(parseColor(ds.BorderColor))
		r.SetStrokeWidth(2)
		x, y := point(0, frac(0))
		r.MoveTo(x, y)
		for i := 1; i < n; i++ {
			x, y = point(i, frac(i))
			r.LineTo(x, y)
		}
		r.Close()
		r.FillStroke()
	}

	// 3. Axis labels
	r.SetFontColor(drawing.Color{R: 44, G: 62, B: 80, A: 255})
	r.SetFontSize(11)
	for i, label := range cfg.Labels {
		x, y := point(i, 1.12)
		r.Text(label, x-len(label)*3, y+4)
	}
	if cfg.Title != "" {
		r.SetFontSize(14)
		r.Text(cfg.Title, 10, 20)
	}

	return r.Save(w)
}

func renderEmpty(cfg Config, w io.Writer) error {
	width, height := cfg.size()
	r, err := gochart.SVG(width, height)
	if err != nil {
		return err
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)
	r.SetFontColor(drawing.Color{R: 127, G: 140, B: 141, A: 255})
	r.SetFontSize(14)
	r.Text("No data", width/2-28, height/2)
	return r.Save(w)
}

func colorAt(colors []string, i int) drawing.Color {
	switch {
	case len(colors) == 0:
		return gochart.ColorBlue
	case i < len(colors):
		return parseColor(colors[i])
	default:
		return parseColor(colors[0])
	}
}

// parseColor reads "#rrggbb" and "rgba(r, g, b, a)" (the forms the dashboard
// configs use).
func parseColor(s string) drawing.Color {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")"), ",")
		if len(parts) != 4 {
			return gochart.ColorBlue
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil {
				return gochart.ColorBlue
			}
			rgb[i] = uint8(v)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return gochart.ColorBlue
		}
		return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(math.Round(a * 255))}
	default:
		return gochart.ColorBlue
	}
}

// yScale is the top of the value axis: the configured maximum, else the
// largest value. Never zero, go-chart rejects an empty range.
func yScale(cfg Config) float64 {
	if cfg.ScaleMax > 0 {
		return cfg.ScaleMax
	}
	if m := maxValue(cfg.Datasets); m > 0 {
		return m
	}
	return 1
}

func maxValue(datasets []Dataset) float64 {
	m := 0.0
	for _, ds := range datasets {
		for _, v := range ds.Data {
			m = math.Max(m, v)
		}
	}
	return m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
