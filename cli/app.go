// Package cli contains the armsim command line interface.
package cli

import (
	"io"
	"time"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagConfig  = "config"
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	flagAngles    = "angles"
	flagDegrees   = "degrees"
	flagTarget    = "target"
	flagFrames    = "frames"
	flagCount     = "count"
	flagSeed      = "seed"
	flagPlot      = "plot"
	flagHistogram = "histogram"
	flagFormat    = "format"
	flagDuration  = "duration"
)

var anglesFlag = &cli.StringFlag{
	Name:    flagAngles,
	Aliases: []string{"a"},
	Usage:   "comma separated joint angles `a0,...,a6`, base first; missing trailing joints are zero",
}

var degreesFlag = &cli.BoolFlag{
	Name:  flagDegrees,
	Usage: "interpret angles in degrees instead of radians",
}

var targetFlag = &cli.StringFlag{
	Name:     flagTarget,
	Aliases:  []string{"t"},
	Usage:    "target point `x,y,z` in meters",
	Required: true,
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	a := &armsimApp{}
	app := &cli.App{
		Name:            "armsim",
		Usage:           "simulate the kinematics of a seven joint arm",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load arm configuration from `FILE` (.json, .yaml or .yml)",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to the rotating log `FILE`",
			},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			{
				Name:   "fk",
				Usage:  "print joint positions for a set of joint angles",
				Flags:  []cli.Flag{anglesFlag, degreesFlag},
				Action: a.fkAction,
			},
			{
				Name:  "ik",
				Usage: "solve joint angles that bring the tip to a target",
				Flags: []cli.Flag{
					targetFlag,
					anglesFlag,
					degreesFlag,
					&cli.IntFlag{
						Name:  flagFrames,
						Usage: "number of consecutive solves, each seeded with the previous result",
						Value: 1,
					},
				},
				Action: a.ikAction,
			},
			{
				Name:   "collide",
				Usage:  "check a set of joint angles for floor and self collisions",
				Flags:  []cli.Flag{anglesFlag, degreesFlag},
				Action: a.collideAction,
			},
			{
				Name:  "sample",
				Usage: "estimate the reachable workspace by random sampling",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagCount,
						Usage: "number of configurations to draw",
						Value: 10000,
					},
					&cli.Int64Flag{
						Name:  flagSeed,
						Usage: "random seed; omit for a time based seed",
					},
					&cli.StringFlag{
						Name:  flagPlot,
						Usage: "write top and side scatter plots to the PNG `FILE`",
					},
					&cli.BoolFlag{
						Name:  flagHistogram,
						Usage: "print a histogram of tip distances from the base",
					},
				},
				Action: a.sampleAction,
			},
			{
				Name:            "config",
				Usage:           "work with arm configuration files",
				HideHelpCommand: true,
				Subcommands: []*cli.Command{
					{
						Name:  "default",
						Usage: "print the default configuration",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  flagFormat,
								Usage: "output format, json or yaml",
								Value: "yaml",
							},
						},
						Action: a.configDefaultAction,
					},
					{
						Name:      "validate",
						Usage:     "validate a configuration file",
						ArgsUsage: "<file>",
						Action:    a.configValidateAction,
					},
					{
						Name:   "schema",
						Usage:  "print the JSON schema of the configuration",
						Action: a.configSchemaAction,
					},
					{
						Name:      "reset",
						Usage:     "overwrite a configuration file with the defaults",
						ArgsUsage: "<file>",
						Action:    a.configResetAction,
					},
				},
			},
			{
				Name:  "run",
				Usage: "run the control loop tracking a target and print the final state",
				Flags: []cli.Flag{
					targetFlag,
					&cli.DurationFlag{
						Name:  flagDuration,
						Usage: "how long to run the loop",
						Value: 2 * time.Second,
					},
				},
				Action: a.runAction,
			},
		},
	}
	return app
}
