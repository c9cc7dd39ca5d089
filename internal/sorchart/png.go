package sorchart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/sorparser/internal/sor"
)

// SavePNG renders a cumulative splice-loss-vs-distance profile of rec's key
// events to a PNG file at path.
func SavePNG(path string, rec *sor.Record) error {
	if rec.KeyEvents == nil || len(rec.KeyEvents.Events) == 0 {
		return fmt.Errorf("sorchart: record %s has no key events to chart", rec.Filename)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cumulative loss along %s", rec.Filename)
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Cumulative splice loss (dB)"

	pts := make(plotter.XYs, 0, len(rec.KeyEvents.Events))
	cumulative := 0.0
	for _, evt := range rec.KeyEvents.Events {
		if evt.SpliceLossDB > 0 {
			cumulative += evt.SpliceLossDB
		}
		pts = append(pts, plotter.XY{X: evt.DistanceM, Y: cumulative})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building loss profile line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building loss profile markers: %w", err)
	}
	scatter.Radius = vg.Points(2)
	p.Add(scatter)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
