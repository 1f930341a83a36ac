package physics

// GrabJoint pulls a single body's anchor point toward a world-space target,
// using the two-row one-body Jacobian [I, skew(r)]. Typically used for
// mouse/cursor dragging.
type GrabJoint struct {
	A *RigidBody

	LocalAnchor Vec2
	Target      Vec2

	Frequency float64
	Damping   float64

	accImpulse Vec2

	rA    Vec2
	mass  Mat22
	bias  Vec2
	gamma float64
}

var _ Constraint = (*GrabJoint)(nil)

func NewGrabJoint(a *RigidBody, localAnchor, target Vec2, frequency, damping float64) *GrabJoint {
	return &GrabJoint{A: a, LocalAnchor: localAnchor, Target: target, Frequency: frequency, Damping: damping}
}

func (j *GrabJoint) Bodies() (a, b *RigidBody) { return j.A, nil }

func (j *GrabJoint) Prepare(cfg *Config, dt float64) {
	a := j.A
	pa := a.LocalToGlobal(j.LocalAnchor)
	j.rA = pa.Sub(a.Pos)

	// K = invMass·I2 + invInertia·[[ry², −rx·ry], [−rx·ry, rx²]], the
	// single-body point-constraint effective mass.
	rx, ry := j.rA.X, j.rA.Y
	k := Mat22{
		A11: a.invMass + a.invInertia*ry*ry,
		A12: -a.invInertia * rx * ry,
		A21: -a.invInertia * rx * ry,
		A22: a.invMass + a.invInertia*rx*rx,
	}

	beta, gamma := Softness(j.Frequency, j.Damping, a.Mass(), dt)
	j.gamma = gamma
	k = k.Add(Mat22Diag(gamma, gamma))
	j.mass = k.Inverse()

	c := pa.Sub(j.Target)
	j.bias = V(PositionBias(cfg, beta, c.X, dt), PositionBias(cfg, beta, c.Y, dt))

	if cfg.WarmStarting {
		a.ApplyImpulseAt(j.accImpulse, pa)
	} else {
		j.accImpulse = Vec2Zero()
	}
}

func (j *GrabJoint) Solve(cfg *Config) {
	a := j.A
	pa := a.Pos.Add(j.rA)
	vel := a.Vel.Add(CrossScalar(a.AngVel, j.rA))

	rhs := vel.Add(j.bias).Add(j.accImpulse.Scale(j.gamma)).Neg()
	lambda := j.mass.MulVec2(rhs)
	j.accImpulse = j.accImpulse.Add(lambda)

	a.ApplyImpulseAt(lambda, pa)
}
