// Package control drives the simulated arm one tick at a time. A Loop owns the arm state, maps
// operator input onto joint or target motion, and commits a new pose only when it is collision free.
package control

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/armsim/collision"
	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/motionplan/ik"
	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/utils"
)

// GripperSpeed is the fraction of full travel the gripper covers per second at full input.
const GripperSpeed = 1.0

// Mode selects how input moves the arm.
type Mode int

const (
	// Manual jogs every joint directly.
	Manual Mode = iota
	// Track moves a target point and lets the IK solver follow it with the tip. Only the wrist roll
	// is still jogged directly.
	Track
)

func (m Mode) String() string {
	if m == Track {
		return "track"
	}
	return "manual"
}

// State is a snapshot of the arm.
type State struct {
	Angles    referenceframe.JointAngles
	Gripper   float64
	Target    r3.Vector
	Mode      Mode
	Colliding bool
	// Rejected is set when the most recent tick discarded its proposed pose.
	Rejected  bool
	Positions referenceframe.Positions
}

// Input is the operator command held between ticks. Jog values and Gripper are in [-1, 1] and are
// scaled by the joint speeds and the gripper speed. TargetDelta is a target velocity in meters per
// second.
type Input struct {
	Jog         [referenceframe.NumJoints]float64
	Gripper     float64
	TargetDelta r3.Vector
}

// Config holds everything a Loop needs to advance the arm.
type Config struct {
	Model     referenceframe.Model
	Solver    ik.Solver
	Checker   collision.Checker
	Frequency int
}

// DefaultConfig returns the factory loop configuration.
func DefaultConfig() Config {
	return Config{
		Model:     referenceframe.DefaultModel(),
		Solver:    ik.DefaultSolver(),
		Checker:   collision.DefaultChecker(),
		Frequency: 60,
	}
}

// Validate checks the loop rate and the model.
func (cfg Config) Validate() error {
	if cfg.Frequency < 1 || cfg.Frequency > 200 {
		return errors.Errorf("loop frequency must be between 1 and 200 Hz, got %d", cfg.Frequency)
	}
	return cfg.Model.Validate()
}

// Loop holds the arm state and advances it on each tick.
type Loop struct {
	logger logging.Logger
	clk    clock.Clock

	mu         sync.Mutex
	cfg        Config
	state      State
	input      Input
	rejections int
	subscriber func(State)
	workers    utils.StoppableWorkers
}

// NewLoop returns a loop with the arm at rest in Manual mode.
func NewLoop(logger logging.Logger, cfg Config, clk clock.Clock) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	l := &Loop{logger: logger, clk: clk, cfg: cfg}
	l.state = l.pose(cfg.Model.Limits.Clamp(referenceframe.JointAngles{}))
	l.state.Target = l.state.Positions.Tip()
	return l, nil
}

func (l *Loop) pose(angles referenceframe.JointAngles) State {
	positions := l.cfg.Model.Transform(angles)
	return State{
		Angles:    angles,
		Positions: positions,
		Colliding: l.cfg.Checker.Check(positions),
	}
}

// State returns the current snapshot.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Rejections returns how many proposed poses have been discarded for colliding.
func (l *Loop) Rejections() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rejections
}

// SetInput replaces the command applied on each following tick.
func (l *Loop) SetInput(in Input) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.input = in
}

// SetMode switches modes. Entering Track places the target at the current tip so the arm holds
// still until the target is moved.
func (l *Loop) SetMode(mode Mode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if mode == Track && l.state.Mode != Track {
		l.state.Target = l.state.Positions.Tip()
	}
	l.state.Mode = mode
}

// SetTarget moves the target directly.
func (l *Loop) SetTarget(target r3.Vector) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Target = target
}

// SetAngles proposes a pose, for instance one loaded from a saved preset. It is committed only if
// it is collision free after clamping; the committed state is returned with Rejected set otherwise.
func (l *Loop) SetAngles(angles referenceframe.JointAngles) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commit(l.cfg.Model.Limits.Clamp(angles))
	return l.state
}

// Subscribe registers fn to receive the state after every tick driven by Start. Passing nil
// unsubscribes.
func (l *Loop) Subscribe(fn func(State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscriber = fn
}

// SetModel swaps the chain model used from the next tick on. The current angles are clamped to the
// new limits and the pose recomputed.
func (l *Loop) SetModel(m referenceframe.Model) error {
	cfg := l.Config()
	cfg.Model = m
	return l.Reconfigure(cfg)
}

// Config returns the active configuration.
func (l *Loop) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// Reconfigure replaces the model, solver and checker. A frequency change takes effect the next time
// the loop is started.
func (l *Loop) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = cfg
	next := l.pose(cfg.Model.Limits.Clamp(l.state.Angles))
	next.Gripper, next.Target, next.Mode = l.state.Gripper, l.state.Target, l.state.Mode
	l.state = next
	l.logger.Debugw("loop reconfigured", "colliding", l.state.Colliding)
	return nil
}

// Tick advances the arm by dt using the held input and returns the new state.
func (l *Loop) Tick(dt time.Duration) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	seconds := dt.Seconds()
	in := l.input
	m := l.cfg.Model
	prev := l.state

	proposal := prev.Angles
	switch prev.Mode {
	case Track:
		l.state.Target = prev.Target.Add(in.TargetDelta.Mul(seconds))
		proposal = l.cfg.Solver.Solve(m, l.state.Target, prev.Angles).Angles
		wrist := referenceframe.NumJoints - 1
		proposal[wrist] = m.Limits[wrist].Clamp(proposal[wrist] + jog(in.Jog[wrist])*m.Speeds[wrist]*seconds)
	default:
		for i := range proposal {
			proposal[i] += jog(in.Jog[i]) * m.Speeds[i] * seconds
		}
		proposal = m.Limits.Clamp(proposal)
	}
	l.state.Gripper = utils.Clamp(prev.Gripper+jog(in.Gripper)*GripperSpeed*seconds, 0, 1)

	l.commit(proposal)
	return l.state
}

func jog(v float64) float64 {
	return utils.Clamp(v, -1, 1)
}

// commit adopts angles unless they collide. Must be called with mu held.
func (l *Loop) commit(angles referenceframe.JointAngles) {
	next := l.pose(angles)
	next.Gripper, next.Target, next.Mode = l.state.Gripper, l.state.Target, l.state.Mode
	if next.Colliding {
		l.rejections++
		if cols := l.cfg.Checker.Collisions(next.Positions); len(cols) > 0 {
			l.logger.Debugw("rejected colliding pose", "reason", cols[0].String(), "rejections", l.rejections)
		}
		l.state.Rejected = true
		return
	}
	l.state = next
}

// Start ticks the loop at the configured frequency until Close is called.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.workers != nil {
		return errors.New("control loop already running")
	}
	dt := time.Duration(float64(time.Second) / float64(l.cfg.Frequency))
	ticker := l.clk.Ticker(dt)
	l.logger.Infow("running control loop", "frequency", l.cfg.Frequency, "period", dt)

	l.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			state := l.Tick(dt)
			l.mu.Lock()
			subscriber := l.subscriber
			l.mu.Unlock()
			if subscriber != nil {
				subscriber(state)
			}
		}
	})
	return nil
}

// Close stops a running loop. It is safe to call on a loop that was never started.
func (l *Loop) Close() {
	l.mu.Lock()
	workers := l.workers
	l.workers = nil
	l.mu.Unlock()
	if workers != nil {
		l.logger.Debug("closing control loop")
		workers.Stop()
	}
}
