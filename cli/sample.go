package cli

import (
	"fmt"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/armsim/workspace"
)

const (
	histogramBins  = 20
	histogramWidth = 50
)

func (a *armsimApp) sampleAction(c *cli.Context) error {
	count := c.Int(flagCount)
	if count < 1 {
		return errors.Errorf("--%s must be at least 1", flagCount)
	}
	opts := []workspace.Option{
		workspace.WithChecker(a.cfg.Checker()),
		workspace.WithLogger(a.logger.Sublogger("workspace")),
	}
	if c.IsSet(flagSeed) {
		opts = append(opts, workspace.WithSeed(c.Int64(flagSeed)))
	}

	points, err := workspace.Sample(c.Context, a.cfg.Model(), count, opts...)
	if err != nil {
		return err
	}
	summary, err := workspace.Summarize(points)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", summaryTable(count, summary))

	if c.Bool(flagHistogram) && len(points) > 0 {
		hist := histogram.Hist(histogramBins, workspace.Reaches(points))
		printf(c.App.Writer, "reach (m):")
		if err := histogram.Fprint(c.App.Writer, hist, histogram.Linear(histogramWidth)); err != nil {
			return errors.Wrap(err, "cannot print histogram")
		}
	}

	if path := c.String(flagPlot); path != "" {
		if len(points) == 0 {
			return errors.New("no reachable points to plot")
		}
		if err := workspace.SavePlot(points, path); err != nil {
			return err
		}
		printf(c.App.Writer, "wrote %s", path)
	}
	return nil
}

func summaryTable(requested int, s workspace.Summary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRow(table.Row{"samples", requested})
	t.AppendRow(table.Row{"reachable", s.Count})
	if s.Count > 0 {
		t.AppendRow(table.Row{"reachable %", fmt.Sprintf("%.1f", 100*float64(s.Count)/float64(requested))})
		t.AppendRow(table.Row{"reach mean", fmt.Sprintf("%.4f", s.ReachMean)})
		t.AppendRow(table.Row{"reach stddev", fmt.Sprintf("%.4f", s.ReachStdDev)})
		t.AppendRow(table.Row{"reach min", fmt.Sprintf("%.4f", s.ReachMin)})
		t.AppendRow(table.Row{"reach max", fmt.Sprintf("%.4f", s.ReachMax)})
		t.AppendRow(table.Row{"reach p95", fmt.Sprintf("%.4f", s.ReachP95)})
		t.AppendRow(table.Row{"bounds min", formatPoint(s.Min)})
		t.AppendRow(table.Row{"bounds max", formatPoint(s.Max)})
		t.AppendRow(table.Row{"bounds volume", fmt.Sprintf("%.4f", math.Abs(
			(s.Max.X-s.Min.X)*(s.Max.Y-s.Min.Y)*(s.Max.Z-s.Min.Z)))})
	}
	return t.Render()
}
