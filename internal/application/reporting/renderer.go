package reporting

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// RegionRenderer produces the dashboard region image embedded in exported
// reports.  Render must fail with CodeRenderRegionMissing, and produce no
// other effect, when the view has no active candidate to draw.
type RegionRenderer interface {
	Render(view View) ([]byte, error)
}

// View is the dashboard state handed to the renderer: the ranked candidate
// set, the active selection and the derived narrative.
type View struct {
	Candidates []solution.Candidate
	Selection  int
	Narrative  string
	Width      int
	Height     int
}

// active returns the selected candidate, or false when the selection does
// not address the set.
func (v View) active() (solution.Candidate, bool) {
	if v.Selection < 0 || v.Selection >= len(v.Candidates) {
		return solution.Candidate{}, false
	}
	return v.Candidates[v.Selection], true
}

// ChartRenderer draws the strength/cost frontier as a PNG, with the active
// candidate annotated.
type ChartRenderer struct{}

// NewChartRenderer returns a ChartRenderer.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

// Render draws the frontier scatter.  The active candidate is highlighted
// and labeled with its batch number.
func (r *ChartRenderer) Render(view View) ([]byte, error) {
	activeCand, ok := view.active()
	if !ok {
		return nil, errors.New(errors.CodeRenderRegionMissing, "no active candidate to render")
	}

	xs := make([]float64, len(view.Candidates))
	ys := make([]float64, len(view.Candidates))
	for i, c := range view.Candidates {
		xs[i] = c.Metrics.Strength
		ys[i] = c.Metrics.Cost
	}

	graph := chart.Chart{
		Title:  view.Narrative,
		Width:  view.Width,
		Height: view.Height,
		XAxis:  chart.XAxis{Name: "Strength (MPa)", Range: paddedRange(xs)},
		YAxis:  chart.YAxis{Name: "Cost ($/ton)", Range: paddedRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Frontier",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    drawing.ColorBlue,
				},
				XValues: xs,
				YValues: ys,
			},
			chart.AnnotationSeries{
				Annotations: []chart.Value2{{
					XValue: activeCand.Metrics.Strength,
					YValue: activeCand.Metrics.Cost,
					Label:  fmt.Sprintf("Batch #%d", solution.BatchNumber(view.Selection)),
				}},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, errors.CodeRenderFailed, "failed to render frontier chart")
	}
	return buf.Bytes(), nil
}

// paddedRange widens the axis range so single-point and flat sets still
// render instead of collapsing to a zero-width domain.
func paddedRange(values []float64) *chart.ContinuousRange {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	pad := (max - min) * 0.1
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: min - pad, Max: max + pad}
}
