package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/armsim/config"
	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/utils"
)

// armsimApp holds what the global flags set up for every command.
type armsimApp struct {
	logger  logging.Logger
	cfg     *config.Config
	cfgPath string
	logFile io.Closer
}

func (a *armsimApp) before(c *cli.Context) error {
	a.logger = logging.NewBlankLogger("armsim")
	a.logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	a.logger.SetLevel(logging.INFO)
	if c.Bool(generalFlagDebug) {
		a.logger.SetLevel(logging.DEBUG)
	}
	if path := c.String(generalFlagLogFile); path != "" {
		appender, closer := logging.NewFileAppender(path)
		a.logger.AddAppender(appender)
		a.logFile = closer
	}
	logging.ReplaceGlobal(a.logger)

	a.cfg = config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		cfg, err := config.Read(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.cfgPath = path
		a.logger.Debugw("loaded config", "path", path)
	}
	return nil
}

func (a *armsimApp) after(c *cli.Context) error {
	var err error
	if a.logger != nil {
		err = a.logger.Sync()
	}
	if a.logFile != nil {
		err = multierr.Combine(err, a.logFile.Close())
	}
	return err
}

func (a *armsimApp) angles(c *cli.Context) (referenceframe.JointAngles, error) {
	return parseAngles(c.String(flagAngles), c.Bool(flagDegrees))
}

func (a *armsimApp) fkAction(c *cli.Context) error {
	angles, err := a.angles(c)
	if err != nil {
		return err
	}
	m := a.cfg.Model()
	if !m.Limits.Contains(angles) {
		a.logger.Warnw("angles are outside the joint limits", "angles", angles)
	}
	positions := m.Transform(angles)
	printf(c.App.Writer, "%s", positionsTable(positions))
	printf(c.App.Writer, "collision: %v", a.cfg.Checker().Check(positions))
	return nil
}

func (a *armsimApp) collideAction(c *cli.Context) error {
	angles, err := a.angles(c)
	if err != nil {
		return err
	}
	collisions := a.cfg.Checker().Collisions(a.cfg.Model().Transform(angles))
	printf(c.App.Writer, "collision: %v", len(collisions) > 0)
	for _, col := range collisions {
		printf(c.App.Writer, "\t%s: %s", col.Kind, col)
	}
	return nil
}

func (a *armsimApp) ikAction(c *cli.Context) error {
	target, err := parsePoint(c.String(flagTarget))
	if err != nil {
		return err
	}
	seed, err := a.angles(c)
	if err != nil {
		return err
	}
	frames := c.Int(flagFrames)
	if frames < 1 {
		return errors.Errorf("--%s must be at least 1", flagFrames)
	}

	m := a.cfg.Model()
	solver := a.cfg.Solver()
	sol := solver.Solve(m, target, seed)
	for frame := 1; frame < frames && !sol.Converged; frame++ {
		a.logger.Debugw("ik frame", "frame", frame, "distance", sol.Distance)
		sol = solver.Solve(m, target, sol.Angles)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Joint", "Angle (rad)", "Angle (deg)"})
	for i, angle := range sol.Angles {
		t.AppendRow(table.Row{i, a.cfg.Joints[i].Name, fmt.Sprintf("%.4f", angle), fmt.Sprintf("%.2f", utils.RadToDeg(angle))})
	}
	printf(c.App.Writer, "%s", t.Render())

	positions := m.Transform(sol.Angles)
	printf(c.App.Writer, "tip: %s", formatPoint(positions.Tip()))
	printf(c.App.Writer, "distance: %.4f converged: %v", sol.Distance, sol.Converged)
	if a.cfg.Checker().Check(positions) {
		printf(c.App.Writer, "warning: solution collides and would be rejected")
	}
	return nil
}

func positionsTable(positions referenceframe.Positions) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Point", "X", "Y", "Z"})
	for i, p := range positions {
		name := fmt.Sprintf("J%d", i+1)
		if i == referenceframe.NumJoints {
			name = "Tip"
		}
		t.AppendRow(table.Row{i, name, fmt.Sprintf("%.4f", p.X), fmt.Sprintf("%.4f", p.Y), fmt.Sprintf("%.4f", p.Z)})
	}
	return t.Render()
}

