package physics

// DistanceJoint pins A and B to a fixed separation L along the line
// between their anchors, using the one-row Jacobian
// [−n, −(rA×n), n, (rB×n)].
type DistanceJoint struct {
	A, B *RigidBody

	LocalAnchorA, LocalAnchorB Vec2
	Length                     float64

	Frequency float64 // Hz, 0 disables softness (rigid, β/γ computed with γ=0)
	Damping   float64 // ζ ∈ [0,1]

	accImpulse float64

	// prepared state
	n      Vec2
	rA, rB Vec2
	mass   float64
	bias   float64
	gamma  float64
}

var _ Constraint = (*DistanceJoint)(nil)

// NewDistanceJoint constructs a rigid (undamped) distance joint; set
// Frequency/Damping afterwards for a soft spring behavior.
func NewDistanceJoint(a, b *RigidBody, localAnchorA, localAnchorB Vec2, length float64) *DistanceJoint {
	return &DistanceJoint{A: a, B: b, LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB, Length: length}
}

func (j *DistanceJoint) Bodies() (a, b *RigidBody) { return j.A, j.B }

func (j *DistanceJoint) Prepare(cfg *Config, dt float64) {
	a, b := j.A, j.B
	pa := a.LocalToGlobal(j.LocalAnchorA)
	pb := b.LocalToGlobal(j.LocalAnchorB)
	j.rA = pa.Sub(a.Pos)
	j.rB = pb.Sub(b.Pos)

	delta := pb.Sub(pa)
	dist := delta.Length()
	if dist > 1e-9 {
		j.n = delta.Scale(1 / dist)
	} else {
		j.n = V(1, 0)
	}

	crA := j.rA.Cross(j.n)
	crB := j.rB.Cross(j.n)
	k := a.invMass + b.invMass + a.invInertia*crA*crA + b.invInertia*crB*crB

	effMass := b.Mass()
	if effMass == 0 {
		effMass = a.Mass()
	}
	beta, gamma := 0.0, 0.0
	if j.Frequency > 0 {
		beta, gamma = Softness(j.Frequency, j.Damping, effMass, dt)
	} else if cfg.PositionCorrection {
		beta = 0.2 // default Baumgarte factor for a rigid (non-soft) joint
	}
	j.gamma = gamma

	k += gamma
	if k > 0 {
		j.mass = 1 / k
	}

	c := dist - j.Length
	j.bias = PositionBias(cfg, beta, c, dt)

	if cfg.WarmStarting {
		impulse := j.n.Scale(j.accImpulse)
		a.ApplyImpulseAt(impulse.Neg(), pa)
		b.ApplyImpulseAt(impulse, pb)
	} else {
		j.accImpulse = 0
	}
}

func (j *DistanceJoint) Solve(cfg *Config) {
	a, b := j.A, j.B
	relVel := relativeVelocityAt(a, b, j.rA, j.rB)
	jv := relVel.Dot(j.n)

	lambda := -j.mass * (jv + j.bias + j.gamma*j.accImpulse)
	j.accImpulse += lambda

	impulse := j.n.Scale(lambda)
	pa := a.Pos.Add(j.rA)
	pb := b.Pos.Add(j.rB)
	a.ApplyImpulseAt(impulse.Neg(), pa)
	b.ApplyImpulseAt(impulse, pb)
}

// CurrentLength reports ‖pb−pa‖ for the joint's current anchors.
func (j *DistanceJoint) CurrentLength() float64 {
	pa := j.A.LocalToGlobal(j.LocalAnchorA)
	pb := j.B.LocalToGlobal(j.LocalAnchorB)
	return pb.Distance(pa)
}
