package physics

// LineJoint constrains B's anchor to slide only along a fixed axis defined
// in A's local frame, resolved via a single perpendicular-distance row.
//
// t is the perpendicular of the fixed joint axis (not of the instantaneous
// anchor separation), and the un-normalized separation d = pb−pa stands in
// for the constraint's position term in the cross products, so the
// Jacobian's units stay consistent — a cross product of two lengths, not a
// length with a unit vector. The constraint value C = d·t is zero exactly
// when B's anchor lies on A's axis line.
type LineJoint struct {
	A, B *RigidBody

	LocalAnchorA, LocalAnchorB Vec2
	LocalAxisA                 Vec2 // sliding axis, in A's local frame

	Frequency float64
	Damping   float64

	accImpulse float64

	rA, rB Vec2
	perp   Vec2
	s1, s2 float64
	mass   float64
	bias   float64
	gamma  float64
}

var _ Constraint = (*LineJoint)(nil)

func NewLineJoint(a, b *RigidBody, localAnchorA, localAnchorB, localAxisA Vec2) *LineJoint {
	return &LineJoint{A: a, B: b, LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB, LocalAxisA: localAxisA}
}

func (j *LineJoint) Bodies() (a, b *RigidBody) { return j.A, j.B }

func (j *LineJoint) Prepare(cfg *Config, dt float64) {
	a, b := j.A, j.B
	pa := a.LocalToGlobal(j.LocalAnchorA)
	pb := b.LocalToGlobal(j.LocalAnchorB)
	j.rA = pa.Sub(a.Pos)
	j.rB = pb.Sub(b.Pos)

	axis := j.LocalAxisA.Rotate(a.Rot)
	j.perp = axis.Perp()
	d := pb.Sub(pa)

	j.s1 = d.Add(j.rA).Cross(j.perp)
	j.s2 = j.rB.Cross(j.perp)

	k := a.invMass + b.invMass + a.invInertia*j.s1*j.s1 + b.invInertia*j.s2*j.s2

	effMass := b.Mass()
	if effMass == 0 {
		effMass = a.Mass()
	}
	beta, gamma := 0.0, 0.0
	if j.Frequency > 0 {
		beta, gamma = Softness(j.Frequency, j.Damping, effMass, dt)
	} else if cfg.PositionCorrection {
		beta = 0.2
	}
	j.gamma = gamma
	k += gamma
	if k > 0 {
		j.mass = 1 / k
	}

	c := d.Dot(j.perp)
	j.bias = PositionBias(cfg, beta, c, dt)

	if cfg.WarmStarting {
		j.applyImpulse(j.accImpulse)
	} else {
		j.accImpulse = 0
	}
}

func (j *LineJoint) applyImpulse(lambda float64) {
	a, b := j.A, j.B
	impulse := j.perp.Scale(lambda)
	a.Vel = a.Vel.Sub(impulse.Scale(a.invMass))
	a.AngVel -= a.invInertia * j.s1 * lambda
	b.Vel = b.Vel.Add(impulse.Scale(b.invMass))
	b.AngVel += b.invInertia * j.s2 * lambda
}

func (j *LineJoint) jv() float64 {
	a, b := j.A, j.B
	return j.perp.Dot(b.Vel.Sub(a.Vel)) - j.s1*a.AngVel + j.s2*b.AngVel
}

func (j *LineJoint) Solve(cfg *Config) {
	lambda := -j.mass * (j.jv() + j.bias + j.gamma*j.accImpulse)
	j.accImpulse += lambda
	j.applyImpulse(lambda)
}
