package physics

import "math"

// Constraint is the shared solver protocol: every constraint (contact or
// joint) is prepared once per step, then solved across the configured
// iteration count. Each kind implements this interface rather than the
// solver switching on a closed set of concrete types, so the iteration
// order stays centrally controlled in World.Step while new constraint
// kinds can still be added without touching it.
type Constraint interface {
	// Prepare assembles the Jacobian for the current pose, computes the
	// effective mass and bias, and (if warm starting is enabled) applies
	// the previously accumulated impulse.
	Prepare(cfg *Config, dt float64)
	// Solve computes and applies one iteration's corrective impulse.
	Solve(cfg *Config)
	// Bodies returns the one or two bodies this constraint references
	// (the second is nil for one-body constraints such as Grab).
	Bodies() (a, b *RigidBody)
}

// Softness computes the (β, γ) soft-constraint pair from a spring/damper
// parameterization (frequency and damping ratio). Every joint with a
// positive Frequency calls this single implementation, so matched positive
// (freq, zeta) produce matched steady-state behavior across joint kinds.
// Distance, weld, line and prismatic joints with Frequency 0 do not call it
// and run rigid (γ = 0, β = 0.2 when position correction is on); GrabJoint
// always calls it.
//
// freq is clamped to a minimum of 0.01 Hz and zeta to [0,1].
func Softness(freq, zeta, effectiveMass, h float64) (beta, gamma float64) {
	if freq < 0.01 {
		freq = 0.01
	}
	zeta = clamp(zeta, 0, 1)

	omega := 2 * math.Pi * freq
	d := 2 * effectiveMass * zeta * omega
	k := effectiveMass * omega * omega

	denom := d + h*k
	if denom == 0 {
		return 0, 0
	}
	beta = h * k / denom
	gamma = 1 / (denom * h)
	return
}

// PositionBias computes the Baumgarte bias term b = (β/Δt)·C, returning zero
// when position correction is disabled.
func PositionBias(cfg *Config, beta, c, dt float64) float64 {
	if !cfg.PositionCorrection {
		return 0
	}
	if dt == 0 {
		return 0
	}
	return (beta / dt) * c
}
