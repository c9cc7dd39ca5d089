// Package sorchart renders decoded SOR records as charts: an interactive
// HTML scatter of loss/reflectance per key event, and a static PNG profile
// of loss against distance along the fiber.
package sorchart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/sorparser/internal/sor"
)

// WriteHTML renders rec's key events as an interactive go-echarts scatter
// plot (distance on X, splice loss on Y, reflectance as the bubble color)
// and writes the standalone HTML document to w.
func WriteHTML(w io.Writer, rec *sor.Record) error {
	if rec.KeyEvents == nil || len(rec.KeyEvents.Events) == 0 {
		return fmt.Errorf("sorchart: record %s has no key events to chart", rec.Filename)
	}

	data := make([]opts.ScatterData, 0, len(rec.KeyEvents.Events))
	maxAbsReflectance := 0.0
	for _, evt := range rec.KeyEvents.Events {
		data = append(data, opts.ScatterData{Value: []interface{}{evt.DistanceM, evt.SpliceLossDB, evt.ReflectanceDB}})
		if abs := -evt.ReflectanceDB; abs > maxAbsReflectance {
			maxAbsReflectance = abs
		}
	}
	if maxAbsReflectance == 0 {
		maxAbsReflectance = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "SOR Key Events", Theme: "white", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Key Events", Subtitle: fmt.Sprintf("%s (%d events)", rec.Filename, len(rec.KeyEvents.Events))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Splice loss (dB)", NameLocation: "middle", NameGap: 40}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        -float32(maxAbsReflectance),
			Max:        0,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#fde725", "#35b779", "#31688e", "#440154"}},
		}),
	)
	scatter.AddSeries("key events", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	return scatter.Render(w)
}
