package workspace

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	plotWidth  = 12 * vg.Inch
	plotHeight = 6 * vg.Inch
	plotDPI    = 150
)

// SavePlot writes a PNG with two scatter projections of the sampled tips: the top view (x, y) on
// the left and the side view (x, z) on the right.
func SavePlot(points []Point, path string) error {
	top, err := scatter(points, "Top view", "x (m)", "y (m)", func(p Point) (float64, float64) {
		return p.Tip.X, p.Tip.Y
	})
	if err != nil {
		return err
	}
	side, err := scatter(points, "Side view", "x (m)", "z (m)", func(p Point) (float64, float64) {
		return p.Tip.X, p.Tip.Z
	})
	if err != nil {
		return err
	}

	c := vgimg.NewWith(vgimg.UseWH(plotWidth, plotHeight), vgimg.UseDPI(plotDPI))
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 4}
	canvases := plot.Align([][]*plot.Plot{{top, side}}, tiles, dc)
	top.Draw(canvases[0][0])
	side.Draw(canvases[0][1])

	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create plot file")
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return errors.Wrap(err, "cannot write plot")
	}
	return errors.Wrap(bw.Flush(), "cannot write plot")
}

func scatter(points []Point, title, xLabel, yLabel string, project func(Point) (float64, float64)) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X, xys[i].Y = project(pt)
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build %s", title)
	}
	s.GlyphStyle.Radius = vg.Points(1)
	p.Add(s)
	return p, nil
}
