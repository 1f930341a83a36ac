package physics

import "log/slog"

// Config holds the world-global configuration options: solver iteration
// counts, slop thresholds, gravity, and the pluggable narrow-phase and
// logging hooks. Built via NewConfig and the functional options below,
// which apply sane defaults overridable one field at a time.
type Config struct {
	// FixedDeltaTime is the solver time step in seconds; must be > 0.
	FixedDeltaTime float64
	// VelocityIterations is the Gauss-Seidel iteration count per step; must
	// be >= 1.
	VelocityIterations int
	// PositionCorrection, if false, zeroes β at prepare time.
	PositionCorrection bool
	// WarmStarting, if false, skips applying/accumulating impulses across
	// ticks.
	WarmStarting bool
	// AABBMargin is the enlargement applied to dynamic leaves; must be >= 0.
	AABBMargin float64
	// RestitutionSlop and LinearSlop are thresholds below which restitution
	// and penetration bias are clamped to zero; must be >= 0.
	RestitutionSlop float64
	LinearSlop      float64

	// Gravity is applied to every dynamic body's velocity during
	// integrateForces.
	Gravity Vec2

	// Manifolder supplies narrow-phase contact manifolds for a candidate
	// pair; defaults to the reference circle/polygon implementation.
	// Callers may substitute their own narrow phase.
	Manifolder Manifolder

	// Logger receives structured diagnostics (per-step stats, and in debug
	// builds the tree invariant violation logged just before Step panics).
	// Defaults to slog.Default() when nil.
	Logger *slog.Logger

	// ContactPersistence bounds how many ticks a warm-start contact entry
	// survives without being refreshed, so the cache does not grow without
	// bound once shapes stop touching. Zero disables eviction.
	ContactPersistence uint64
}

// Option configures a Config via the functional-options pattern.
type Option func(*Config)

// NewConfig builds a Config with sane defaults, then applies opts in
// order.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		FixedDeltaTime:     1.0 / 60.0,
		VelocityIterations: 10,
		PositionCorrection: true,
		WarmStarting:       true,
		AABBMargin:         0.05,
		RestitutionSlop:    0.5,
		LinearSlop:         0.005,
		Gravity:            V(0, -10),
		Manifolder:         DefaultManifolder{},
		ContactPersistence: 3,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

func WithGravity(g Vec2) Option { return func(c *Config) { c.Gravity = g } }

func WithFixedDeltaTime(dt float64) Option { return func(c *Config) { c.FixedDeltaTime = dt } }

func WithVelocityIterations(n int) Option { return func(c *Config) { c.VelocityIterations = n } }

func WithPositionCorrection(on bool) Option { return func(c *Config) { c.PositionCorrection = on } }

func WithWarmStarting(on bool) Option { return func(c *Config) { c.WarmStarting = on } }

func WithAABBMargin(m float64) Option { return func(c *Config) { c.AABBMargin = m } }

func WithSlop(restitution, linear float64) Option {
	return func(c *Config) { c.RestitutionSlop = restitution; c.LinearSlop = linear }
}

func WithManifolder(m Manifolder) Option { return func(c *Config) { c.Manifolder = m } }

func WithLogger(l *slog.Logger) Option { return func(c *Config) { c.Logger = l } }

// Validate returns an InvalidConfiguration error for any non-positive
// time step.
func (c *Config) Validate() error {
	if c.FixedDeltaTime <= 0 {
		return newError(KindInvalidConfiguration, "fixedDeltaTime must be > 0")
	}
	if c.VelocityIterations < 1 {
		return newError(KindInvalidConfiguration, "velocityIterations must be >= 1")
	}
	if c.AABBMargin < 0 {
		return newError(KindInvalidConfiguration, "aabbMargin must be >= 0")
	}
	if c.RestitutionSlop < 0 || c.LinearSlop < 0 {
		return newError(KindInvalidConfiguration, "restitutionSlop/linearSlop must be >= 0")
	}
	return nil
}
