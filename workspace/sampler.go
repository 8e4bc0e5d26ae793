// Package workspace estimates the reachable workspace of an arm by Monte-Carlo sampling: random joint
// configurations within limits are posed with forward kinematics and the tips of the collision free
// ones are kept.
package workspace

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/armsim/collision"
	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/utils"
)

// ErrSuperseded is the cause reported by a sampling request that was replaced by a newer one.
var ErrSuperseded = errors.New("workspace sampling superseded by a newer request")

// cancelCheckInterval is how many samples a shard draws between context checks.
const cancelCheckInterval = 256

// Point is one collision free sample.
type Point struct {
	Angles referenceframe.JointAngles
	Tip    r3.Vector
}

type options struct {
	seed    int64
	checker collision.Checker
	logger  logging.Logger
}

// Option configures a sampling request.
type Option func(*options)

// WithSeed makes a request reproducible. Without it the seed is taken from the clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithChecker replaces the default collision checker.
func WithChecker(checker collision.Checker) Option {
	return func(o *options) {
		o.checker = checker
	}
}

// WithLogger sets the logger requests are reported to.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{
		seed:    time.Now().UnixNano(),
		checker: collision.DefaultChecker(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewBlankLogger("workspace")
	}
	return o
}

// SampleWorkspace draws count configurations of the default chain and returns the tip of every one
// that passes the default collision check. The result holds between zero and count points.
func SampleWorkspace(limits referenceframe.Limits, dims referenceframe.Dimensions, count int) []r3.Vector {
	m := referenceframe.Model{Axes: referenceframe.DefaultAxes, Dimensions: dims, Limits: limits}
	points, err := Sample(context.Background(), m, count)
	if err != nil {
		return nil
	}
	tips := make([]r3.Vector, 0, len(points))
	for _, p := range points {
		tips = append(tips, p.Tip)
	}
	return tips
}

// Sample draws count configurations of m, split across utils.ParallelFactor shards. Shard k seeds its
// own generator with seed+k and results are concatenated in shard order, so a fixed seed and
// parallel factor always yield the same points. If ctx is cancelled the cause is returned along with
// no points.
func Sample(ctx context.Context, m referenceframe.Model, count int, opts ...Option) ([]Point, error) {
	o := newOptions(opts)
	if count <= 0 {
		return nil, nil
	}

	shards := utils.ParallelFactor
	if shards > count {
		shards = count
	}
	requestID := uuid.New()
	o.logger.Debugw("sampling workspace", "request", requestID, "count", count, "shards", shards, "seed", o.seed)
	start := time.Now()

	results := make([][]Point, shards)
	g, gctx := errgroup.WithContext(ctx)
	for shard := 0; shard < shards; shard++ {
		n := count / shards
		if shard < count%shards {
			n++
		}
		//nolint:gosec
		rng := rand.New(rand.NewSource(o.seed + int64(shard)))
		g.Go(func() error {
			points, err := sampleShard(gctx, m, o.checker, rng, n)
			if err != nil {
				return err
			}
			results[shard] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.Debugw("workspace sampling stopped", "request", requestID, "error", err)
		return nil, err
	}

	var points []Point
	for _, r := range results {
		points = append(points, r...)
	}
	o.logger.Infow("sampled workspace",
		"request", requestID,
		"requested", count,
		"reachable", len(points),
		"elapsed", time.Since(start),
	)
	return points, nil
}

func sampleShard(
	ctx context.Context,
	m referenceframe.Model,
	checker collision.Checker,
	rng *rand.Rand,
	n int,
) ([]Point, error) {
	var points []Point
	for i := 0; i < n; i++ {
		if i%cancelCheckInterval == 0 && ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		angles := referenceframe.RandomInputs(m.Limits, rng)
		positions := m.Transform(angles)
		if checker.Check(positions) {
			continue
		}
		points = append(points, Point{Angles: angles, Tip: positions.Tip()})
	}
	return points, nil
}

// Sampler serializes sampling requests for one model: starting a request cancels the one in flight,
// which then returns ErrSuperseded.
type Sampler struct {
	model  referenceframe.Model
	logger logging.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelCauseFunc

	// onStart, when set, is called once a request has been registered.
	onStart func()
}

// NewSampler returns a Sampler for m.
func NewSampler(m referenceframe.Model, logger logging.Logger) *Sampler {
	return &Sampler{model: m, logger: logger}
}

// SetModel changes the model used by later requests.
func (s *Sampler) SetModel(m referenceframe.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
}

// Sample runs a request, superseding any request still running.
func (s *Sampler) Sample(ctx context.Context, count int, opts ...Option) ([]Point, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel(ErrSuperseded)
	}
	s.generation++
	generation := s.generation
	s.cancel = cancel
	m := s.model
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.generation == generation {
			s.cancel = nil
		}
		s.mu.Unlock()
	}()

	if s.onStart != nil {
		s.onStart()
	}
	return Sample(ctx, m, count, append([]Option{WithLogger(s.logger)}, opts...)...)
}

// Stop cancels the request in flight, if any.
func (s *Sampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel(context.Canceled)
		s.cancel = nil
	}
}
