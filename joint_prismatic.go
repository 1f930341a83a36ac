package physics

// PrismaticJoint is the LineJoint's sliding-axis row plus a relative-angle
// lock row `[0,−1,0,1]`. The two rows couple through the angular terms
// (s1, s2), so the effective mass is a genuine 2x2 matrix rather than two
// independent scalars; see joint_line.go for the sliding-axis row's
// derivation.
type PrismaticJoint struct {
	A, B *RigidBody

	LocalAnchorA, LocalAnchorB Vec2
	LocalAxisA                 Vec2
	ReferenceAngle             float64

	Frequency float64
	Damping   float64

	accImpulse Vec2 // (perp-row impulse, angle-row impulse)

	rA, rB Vec2
	perp   Vec2
	s1, s2 float64
	mass   Mat22
	bias   Vec2
	gamma  float64
}

var _ Constraint = (*PrismaticJoint)(nil)

func NewPrismaticJoint(a, b *RigidBody, localAnchorA, localAnchorB, localAxisA Vec2) *PrismaticJoint {
	return &PrismaticJoint{
		A: a, B: b,
		LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB, LocalAxisA: localAxisA,
		ReferenceAngle: b.Rot - a.Rot,
	}
}

// rejectStaticStatic returns an InvalidConfiguration error when both bodies
// are static; prismatic and line joints require at least one dynamic body
// since a fixed sliding axis between two static bodies can never move.
func rejectStaticStatic(a, b *RigidBody) error {
	if a.IsStatic() && b.IsStatic() {
		return newError(KindInvalidConfiguration, "joint cannot connect two static bodies")
	}
	return nil
}

func (j *PrismaticJoint) Bodies() (a, b *RigidBody) { return j.A, j.B }

func (j *PrismaticJoint) Prepare(cfg *Config, dt float64) {
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

	k11 := a.invMass + b.invMass + a.invInertia*j.s1*j.s1 + b.invInertia*j.s2*j.s2
	k12 := a.invInertia*j.s1 + b.invInertia*j.s2
	k22 := a.invInertia + b.invInertia
	if k22 == 0 {
		k22 = 1
	}

	effMass := b.Mass()
	if effMass == 0 {
		effMass = a.Mass()
	}
	beta, gamma := 0.0, 0.0
	if j.Frequency > 0 {
		beta, gamma = Softness(j.Frequency, j.Damping, effMass, dt)
		k11 += gamma
		k22 += gamma
	} else if cfg.PositionCorrection {
		beta = 0.2
	}
	j.gamma = gamma
	j.mass = Mat22{A11: k11, A12: k12, A21: k12, A22: k22}.Inverse()

	cLine := d.Dot(j.perp)
	cAngle := b.Rot - a.Rot - j.ReferenceAngle
	j.bias = V(PositionBias(cfg, beta, cLine, dt), PositionBias(cfg, beta, cAngle, dt))

	if cfg.WarmStarting {
		j.applyImpulse(j.accImpulse)
	} else {
		j.accImpulse = Vec2Zero()
	}
}

func (j *PrismaticJoint) applyImpulse(lambda Vec2) {
	a, b := j.A, j.B
	impulse := j.perp.Scale(lambda.X)
	a.Vel = a.Vel.Sub(impulse.Scale(a.invMass))
	a.AngVel -= a.invInertia * (j.s1*lambda.X + lambda.Y)
	b.Vel = b.Vel.Add(impulse.Scale(b.invMass))
	b.AngVel += b.invInertia * (j.s2*lambda.X + lambda.Y)
}

func (j *PrismaticJoint) Solve(cfg *Config) {
	a, b := j.A, j.B
	jvLine := j.perp.Dot(b.Vel.Sub(a.Vel)) - j.s1*a.AngVel + j.s2*b.AngVel
	jvAngle := b.AngVel - a.AngVel

	rhs := V(
		-(jvLine + j.bias.X + j.gamma*j.accImpulse.X),
		-(jvAngle + j.bias.Y + j.gamma*j.accImpulse.Y),
	)
	lambda := j.mass.MulVec2(rhs)
	j.accImpulse = j.accImpulse.Add(lambda)
	j.applyImpulse(lambda)
}
