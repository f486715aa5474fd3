package record

import (
	"errors"
	"fmt"
	"io"

	"fade-life/pkg/sims/life"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughSamples is returned when a chart would have fewer than two
// points.
var ErrNotEnoughSamples = errors.New("record: need at least two samples")

// Sample is the population of one generation.
type Sample struct {
	Generation int
	Alive      int
	Dying      int
}

// History collects one sample per observed generation.
type History struct {
	Samples []Sample
}

// Observe appends the engine's current population.
func (h *History) Observe(e *life.Engine) {
	alive, dying := e.Population()
	h.Samples = append(h.Samples, Sample{Generation: e.Generation(), Alive: alive, Dying: dying})
}

// Last returns the most recent sample.
func (h *History) Last() Sample {
	if len(h.Samples) == 0 {
		return Sample{}
	}
	return h.Samples[len(h.Samples)-1]
}

// Peak returns the sample with the most alive cells.
func (h *History) Peak() Sample {
	var best Sample
	for _, s := range h.Samples {
		if s.Alive > best.Alive {
			best = s
		}
	}
	return best
}

// Extinction returns the first generation at which nothing was alive or
// dying.
func (h *History) Extinction() (int, bool) {
	for _, s := range h.Samples {
		if s.Alive == 0 && s.Dying == 0 {
			return s.Generation, true
		}
	}
	return 0, false
}

// WriteChart renders the alive and dying populations as a PNG line chart.
func WriteChart(w io.Writer, title string, h *History) error {
	if len(h.Samples) < 2 {
		return ErrNotEnoughSamples
	}
	xs := make([]float64, len(h.Samples))
	alive := make([]float64, len(h.Samples))
	dying := make([]float64, len(h.Samples))
	top := 1.0
	for i, s := range h.Samples {
		xs[i] = float64(s.Generation)
		alive[i] = float64(s.Alive)
		dying[i] = float64(s.Dying)
		top = max(top, alive[i], dying[i])
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 480,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Generation",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  "Cells",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.05},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Alive",
				XValues: xs,
				YValues: alive,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 0x03, G: 0x4f, B: 0x1b, A: 255}, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "Dying",
				XValues: xs,
				YValues: dying,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 0xce, G: 0xac, B: 0x5c, A: 255}, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("record: render chart: %w", err)
	}
	return nil
}
