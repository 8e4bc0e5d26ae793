// Package config defines the on-disk description of the simulated arm: its chain, collision
// settings, solver parameters and control loop rate.
package config

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/armsim/collision"
	"go.viam.com/armsim/motionplan/ik"
	"go.viam.com/armsim/referenceframe"
)

const (
	// DefaultFrequency is the control loop rate in Hz.
	DefaultFrequency = 60
	// MinFrequency and MaxFrequency bound the control loop rate.
	MinFrequency = 1
	MaxFrequency = 200
)

// DefaultJointNames name the joints of the factory arm, base first.
var DefaultJointNames = [referenceframe.NumJoints]string{
	"base",
	"shoulder",
	"upper_arm_roll",
	"elbow",
	"forearm_roll",
	"wrist_pitch",
	"wrist_roll",
}

// Config describes an arm.
type Config struct {
	// Dimensions are the link lengths in meters, base column first and tip offset last.
	Dimensions []float64  `json:"dimensions" yaml:"dimensions" jsonschema:"minItems=8,maxItems=8"`
	Joints     []Joint    `json:"joints" yaml:"joints" jsonschema:"minItems=7,maxItems=7"`
	Collision  Collision  `json:"collision" yaml:"collision"`
	IK         IK         `json:"ik" yaml:"ik"`
	Loop       LoopConfig `json:"loop" yaml:"loop"`
}

// Joint describes one revolute joint. Angles are in radians and speeds in radians per second.
type Joint struct {
	Name  string  `json:"name,omitempty" yaml:"name,omitempty"`
	Axis  string  `json:"axis" yaml:"axis" jsonschema:"enum=x,enum=y,enum=z"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Speed float64 `json:"speed" yaml:"speed" jsonschema:"minimum=0"`
}

// Collision holds the floor plane and link thickness.
type Collision struct {
	FloorHeight float64 `json:"floor_height" yaml:"floor_height"`
	FloorBuffer float64 `json:"floor_buffer" yaml:"floor_buffer" jsonschema:"minimum=0"`
	LinkRadius  float64 `json:"link_radius" yaml:"link_radius" jsonschema:"minimum=0"`
}

// IK holds the solver parameters.
type IK struct {
	Iterations    int     `json:"iterations" yaml:"iterations" jsonschema:"minimum=1"`
	Damping       float64 `json:"damping" yaml:"damping" jsonschema:"exclusiveMinimum=0,maximum=1"`
	GoalThreshold float64 `json:"goal_threshold" yaml:"goal_threshold" jsonschema:"exclusiveMinimum=0"`
}

// LoopConfig holds the control loop settings.
type LoopConfig struct {
	Frequency int `json:"frequency" yaml:"frequency" jsonschema:"minimum=1,maximum=200"`
}

// Default returns the factory configuration.
func Default() *Config {
	dims := referenceframe.DefaultDimensions
	cfg := &Config{
		Dimensions: dims[:],
		Joints:     make([]Joint, referenceframe.NumJoints),
		Collision: Collision{
			FloorHeight: collision.FloorHeight,
			FloorBuffer: collision.FloorBuffer,
			LinkRadius:  collision.LinkRadius,
		},
		IK: IK{
			Iterations:    ik.DefaultMaxIterations,
			Damping:       ik.DefaultDamping,
			GoalThreshold: ik.DefaultGoalThreshold,
		},
		Loop: LoopConfig{Frequency: DefaultFrequency},
	}
	for i := range cfg.Joints {
		cfg.Joints[i] = Joint{
			Name:  DefaultJointNames[i],
			Axis:  referenceframe.DefaultAxes[i].String(),
			Min:   referenceframe.DefaultLimits[i].Min,
			Max:   referenceframe.DefaultLimits[i].Max,
			Speed: referenceframe.DefaultSpeeds[i],
		}
	}
	return cfg
}

// Validate returns every problem with the config combined into one error.
func (cfg *Config) Validate() error {
	var err error
	if len(cfg.Dimensions) != referenceframe.NumJoints+1 {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("dimensions",
			errors.Errorf("expected %d link lengths, got %d", referenceframe.NumJoints+1, len(cfg.Dimensions))))
	}
	for i, l := range cfg.Dimensions {
		if l <= 0 {
			multierr.AppendInto(&err, goutils.NewConfigValidationError(indexPath("dimensions", i),
				errors.Errorf("link length must be positive, got %v", l)))
		}
	}

	if len(cfg.Joints) != referenceframe.NumJoints {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("joints",
			errors.Errorf("expected %d joints, got %d", referenceframe.NumJoints, len(cfg.Joints))))
	}
	for i, j := range cfg.Joints {
		multierr.AppendInto(&err, j.Validate(indexPath("joints", i)))
	}

	if cfg.Collision.FloorBuffer < 0 {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("collision.floor_buffer",
			errors.New("must not be negative")))
	}
	if cfg.Collision.LinkRadius <= 0 {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("collision.link_radius",
			errors.New("must be positive")))
	}

	if cfg.IK.Iterations < 1 {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("ik.iterations",
			errors.New("must be at least 1")))
	}
	if cfg.IK.Damping <= 0 || cfg.IK.Damping > 1 {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("ik.damping",
			errors.Errorf("must be in (0, 1], got %v", cfg.IK.Damping)))
	}
	if cfg.IK.GoalThreshold <= 0 {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("ik.goal_threshold",
			errors.New("must be positive")))
	}

	if cfg.Loop.Frequency < MinFrequency || cfg.Loop.Frequency > MaxFrequency {
		multierr.AppendInto(&err, goutils.NewConfigValidationError("loop.frequency",
			errors.Errorf("must be between %d and %d Hz, got %d", MinFrequency, MaxFrequency, cfg.Loop.Frequency)))
	}
	return err
}

// Validate checks a single joint.
func (j Joint) Validate(path string) error {
	var err error
	if _, axisErr := referenceframe.ParseAxis(j.Axis); axisErr != nil {
		multierr.AppendInto(&err, goutils.NewConfigValidationError(path+".axis", axisErr))
	}
	if j.Min > j.Max {
		multierr.AppendInto(&err, goutils.NewConfigValidationError(path,
			errors.Errorf("min %v exceeds max %v", j.Min, j.Max)))
	}
	if j.Speed < 0 {
		multierr.AppendInto(&err, goutils.NewConfigValidationError(path+".speed",
			errors.New("must not be negative")))
	}
	return err
}

// Model converts the config to a chain model. The config must be valid.
func (cfg *Config) Model() referenceframe.Model {
	var m referenceframe.Model
	copy(m.Dimensions[:], cfg.Dimensions)
	for i, j := range cfg.Joints {
		if i >= referenceframe.NumJoints {
			break
		}
		//nolint:errcheck
		m.Axes[i], _ = referenceframe.ParseAxis(j.Axis)
		m.Limits[i] = referenceframe.Limit{Min: j.Min, Max: j.Max}
		m.Speeds[i] = j.Speed
	}
	return m
}

// Checker returns the collision checker described by the config.
func (cfg *Config) Checker() collision.Checker {
	return collision.Checker{
		FloorHeight: cfg.Collision.FloorHeight,
		FloorBuffer: cfg.Collision.FloorBuffer,
		Clearance:   2 * cfg.Collision.LinkRadius,
	}
}

// Solver returns the IK solver described by the config.
func (cfg *Config) Solver() ik.Solver {
	return ik.Solver{
		MaxIterations: cfg.IK.Iterations,
		Damping:       cfg.IK.Damping,
		GoalThreshold: cfg.IK.GoalThreshold,
		FirstJoint:    ik.DefaultFirstJoint,
	}
}

func indexPath(field string, i int) string {
	return field + "." + strconv.Itoa(i)
}
