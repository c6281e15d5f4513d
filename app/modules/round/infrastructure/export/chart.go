package roundexport

import (
	"bytes"

	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorBackground = drawing.ColorFromHex("0f1f17")
	colorLine       = drawing.ColorFromHex("4caf7a")
	colorAccent     = drawing.ColorFromHex("d4af37")
	colorText       = drawing.ColorFromHex("e8efe9")
)

// ScoreChart renders the running score to par over the round as a PNG.
func ScoreChart(round rounddomain.Round) ([]byte, error) {
	card := round.Scorecard()
	if len(card.Lines) == 0 {
		return renderNoDataPlaceholder()
	}

	xValues := make([]float64, 0, len(card.Lines)+1)
	yValues := make([]float64, 0, len(card.Lines)+1)
	xValues = append(xValues, 0)
	yValues = append(yValues, 0)
	running := 0
	for i, line := range card.Lines {
		running += line.ToPar
		xValues = append(xValues, float64(i+1))
		yValues = append(yValues, float64(running))
	}

	series := chart.ContinuousSeries{
		Name:    "Score to par",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: colorLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    colorAccent,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: colorBackground,
		},
		Canvas: chart.Style{
			FillColor: colorBackground,
		},
		XAxis: chart.XAxis{
			Name:           "Holes played",
			ValueFormatter: chart.IntValueFormatter,
			Style:          chart.Style{FontColor: colorText},
		},
		YAxis: chart.YAxis{
			Name:           "To par",
			ValueFormatter: chart.IntValueFormatter,
			Style:          chart.Style{FontColor: colorText},
		},
		Series: []chart.Series{series},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const msg = "No holes played"

	// go-chart refuses to render without a series, and needs a non-zero range.
	blank := chart.ContinuousSeries{
		XValues: []float64{0, 1},
		YValues: []float64{0, 1},
		Style: chart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: 0,
		},
	}

	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Background: chart.Style{
			FillColor: colorBackground,
		},
		Canvas: chart.Style{
			FillColor: colorBackground,
		},
		XAxis:  chart.XAxis{Style: chart.Hidden()},
		YAxis:  chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{blank},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(colorText)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
