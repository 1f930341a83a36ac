package physics

// WeldJoint rigidly locks B's pose to A's pose (up to a fixed relative
// angle), using the three-row Jacobian
// [−I, −skew(rA), I, skew(rB); 0,−1,0,1].
type WeldJoint struct {
	A, B *RigidBody

	LocalAnchorA, LocalAnchorB Vec2
	ReferenceAngle             float64 // θ₀

	Frequency float64
	Damping   float64

	accImpulse [3]float64 // (x, y, angle)

	rA, rB Vec2
	mass   Mat33
	bias   [3]float64
	gamma  float64
}

var _ Constraint = (*WeldJoint)(nil)

func NewWeldJoint(a, b *RigidBody, localAnchorA, localAnchorB Vec2) *WeldJoint {
	return &WeldJoint{
		A: a, B: b,
		LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB,
		ReferenceAngle: b.Rot - a.Rot,
	}
}

func (j *WeldJoint) Bodies() (a, b *RigidBody) { return j.A, j.B }

func (j *WeldJoint) Prepare(cfg *Config, dt float64) {
	a, b := j.A, j.B
	pa := a.LocalToGlobal(j.LocalAnchorA)
	pb := b.LocalToGlobal(j.LocalAnchorB)
	j.rA = pa.Sub(a.Pos)
	j.rB = pb.Sub(b.Pos)

	mA, mB := a.invMass, b.invMass
	iA, iB := a.invInertia, b.invInertia
	rx1, ry1 := j.rA.X, j.rA.Y
	rx2, ry2 := j.rB.X, j.rB.Y

	var k Mat33
	k[0][0] = mA + mB + iA*ry1*ry1 + iB*ry2*ry2
	k[0][1] = -iA*rx1*ry1 - iB*rx2*ry2
	k[0][2] = -iA*ry1 - iB*ry2
	k[1][0] = k[0][1]
	k[1][1] = mA + mB + iA*rx1*rx1 + iB*rx2*rx2
	k[1][2] = iA*rx1 + iB*rx2
	k[2][0] = k[0][2]
	k[2][1] = k[1][2]
	k[2][2] = iA + iB

	effMass := b.Mass()
	if effMass == 0 {
		effMass = a.Mass()
	}
	beta, gamma := 0.0, 0.0
	if j.Frequency > 0 {
		beta, gamma = Softness(j.Frequency, j.Damping, effMass, dt)
		k = k.AddDiag(gamma)
	} else if cfg.PositionCorrection {
		beta = 0.2
	}
	j.gamma = gamma
	j.mass = k.Inverse()

	cLinear := pb.Sub(pa)
	cAngular := b.Rot - a.Rot - j.ReferenceAngle
	j.bias = [3]float64{
		PositionBias(cfg, beta, cLinear.X, dt),
		PositionBias(cfg, beta, cLinear.Y, dt),
		PositionBias(cfg, beta, cAngular, dt),
	}

	if cfg.WarmStarting {
		impulse := V(j.accImpulse[0], j.accImpulse[1])
		a.ApplyImpulseAt(impulse.Neg(), pa)
		a.AngVel -= a.invInertia * j.accImpulse[2]
		b.ApplyImpulseAt(impulse, pb)
		b.AngVel += b.invInertia * j.accImpulse[2]
	} else {
		j.accImpulse = [3]float64{}
	}
}

func (j *WeldJoint) Solve(cfg *Config) {
	a, b := j.A, j.B
	vel := relativeVelocityAt(a, b, j.rA, j.rB)
	angVel := b.AngVel - a.AngVel

	jv := [3]float64{vel.X, vel.Y, angVel}
	rhs := [3]float64{
		-(jv[0] + j.bias[0] + j.gamma*j.accImpulse[0]),
		-(jv[1] + j.bias[1] + j.gamma*j.accImpulse[1]),
		-(jv[2] + j.bias[2] + j.gamma*j.accImpulse[2]),
	}
	lambda := j.mass.MulVec3(rhs)
	j.accImpulse[0] += lambda[0]
	j.accImpulse[1] += lambda[1]
	j.accImpulse[2] += lambda[2]

	impulse := V(lambda[0], lambda[1])
	pa := a.Pos.Add(j.rA)
	pb := b.Pos.Add(j.rB)
	a.ApplyImpulseAt(impulse.Neg(), pa)
	a.AngVel -= a.invInertia * lambda[2]
	b.ApplyImpulseAt(impulse, pb)
	b.AngVel += b.invInertia * lambda[2]
}
