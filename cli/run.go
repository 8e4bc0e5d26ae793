package cli

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/armsim/config"
	"go.viam.com/armsim/control"
)

func loopConfig(cfg *config.Config) control.Config {
	return control.Config{
		Model:     cfg.Model(),
		Solver:    cfg.Solver(),
		Checker:   cfg.Checker(),
		Frequency: cfg.Loop.Frequency,
	}
}

func (a *armsimApp) runAction(c *cli.Context) error {
	target, err := parsePoint(c.String(flagTarget))
	if err != nil {
		return err
	}
	loop, err := control.NewLoop(a.logger.Sublogger("control"), loopConfig(a.cfg), clock.New())
	if err != nil {
		return err
	}
	loop.SetMode(control.Track)
	loop.SetTarget(target)

	if a.cfgPath != "" {
		w, err := config.Watch(a.cfgPath, a.logger.Sublogger("config"), func(cfg *config.Config) {
			if err := loop.Reconfigure(loopConfig(cfg)); err != nil {
				a.logger.Warnw("cannot apply reloaded config", "error", err)
			}
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := w.Close(); err != nil {
				a.logger.Warnw("cannot stop config watcher", "error", err)
			}
		}()
	}

	if err := loop.Start(); err != nil {
		return err
	}
	goutils.SelectContextOrWait(c.Context, c.Duration(flagDuration))
	loop.Close()

	s := loop.State()
	printf(c.App.Writer, "%s", stateTable(s, a.cfg))
	printf(c.App.Writer, "tip: %s", formatPoint(s.Positions.Tip()))
	printf(c.App.Writer, "target: %s", formatPoint(s.Target))
	printf(c.App.Writer, "distance: %.4f", s.Positions.Tip().Distance(s.Target))
	printf(c.App.Writer, "colliding: %v rejections: %d", s.Colliding, loop.Rejections())
	return nil
}

func stateTable(s control.State, cfg *config.Config) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Joint", "Angle (rad)", "Min", "Max"})
	for i, angle := range s.Angles {
		j := cfg.Joints[i]
		t.AppendRow(table.Row{i, j.Name, fmt.Sprintf("%.4f", angle), j.Min, j.Max})
	}
	return t.Render()
}
