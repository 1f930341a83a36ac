package physics

// BodyKind classifies a body's role in the simulation.
type BodyKind int

const (
	Static BodyKind = iota
	Dynamic
)

// BodyID is a stable numeric identity assigned by the World on Add.
type BodyID uint32

// noNode is the back-pointer sentinel meaning "no tree leaf" — a body that
// has not yet been added to a World, or that was just removed. Modeled as
// an arena index rather than a pointer, to match the tree's own node
// addressing.
const noNode = -1

// RigidBody holds the pose, velocity, and mass/inertia caches of one body.
type RigidBody struct {
	ID BodyID

	Pos Vec2
	Rot float64 // radians

	Vel    Vec2
	AngVel float64

	mass, invMass       float64
	inertia, invInertia float64

	Restitution float64 // [0,1]
	Friction    float64 // [0,1]
	ContactBeta float64 // [0,1], Baumgarte factor for this body's contacts

	Kind  BodyKind
	Shape Shape

	force  Vec2
	torque float64

	node int // index into the owning World's tree arena, or noNode
}

// NewStaticBody creates an immovable body (zero inverse mass/inertia,
// never integrated).
func NewStaticBody(pos Vec2, rot float64, shape Shape) *RigidBody {
	b := &RigidBody{Pos: pos, Rot: rot, Shape: shape, Kind: Static, node: noNode}
	return b
}

// NewDynamicBody creates a movable body with mass/inertia derived from the
// shape's density.
func NewDynamicBody(pos Vec2, rot float64, shape Shape, density float64) *RigidBody {
	b := &RigidBody{
		Pos: pos, Rot: rot, Shape: shape, Kind: Dynamic, node: noNode,
		Restitution: 0, Friction: 0.2, ContactBeta: 0.2,
	}
	mass, inertia := shape.ComputeMass(density)
	b.SetMass(mass)
	b.SetInertia(inertia)
	return b
}

// SetMass recomputes the cached inverse mass atomically with mass. A zero
// or static body gets zero inverse mass.
func (b *RigidBody) SetMass(m float64) {
	b.mass = m
	if b.Kind == Static || m == 0 {
		b.invMass = 0
		return
	}
	b.invMass = 1 / m
}

func (b *RigidBody) SetInertia(i float64) {
	b.inertia = i
	if b.Kind == Static || i == 0 {
		b.invInertia = 0
		return
	}
	b.invInertia = 1 / i
}

func (b *RigidBody) Mass() float64       { return b.mass }
func (b *RigidBody) InvMass() float64    { return b.invMass }
func (b *RigidBody) Inertia() float64    { return b.inertia }
func (b *RigidBody) InvInertia() float64 { return b.invInertia }
func (b *RigidBody) IsStatic() bool      { return b.Kind == Static }
func (b *RigidBody) NodeIndex() int      { return b.node }

// ApplyForce accumulates a force for the next integrateForces call. Cleared
// every step after integration.
func (b *RigidBody) ApplyForce(f Vec2) {
	if b.Kind == Static {
		return
	}
	b.force = b.force.Add(f)
}

// ApplyTorque accumulates a torque for the next integrateForces call.
func (b *RigidBody) ApplyTorque(t float64) {
	if b.Kind == Static {
		return
	}
	b.torque += t
}

// ApplyImpulseAt applies a linear impulse at a world-space point, updating
// linear and angular velocity — the body-local half of every constraint's
// applyImpulse contract.
func (b *RigidBody) ApplyImpulseAt(impulse, worldPoint Vec2) {
	if b.invMass == 0 && b.invInertia == 0 {
		return
	}
	b.Vel = b.Vel.Add(impulse.Scale(b.invMass))
	r := worldPoint.Sub(b.Pos)
	b.AngVel += b.invInertia * r.Cross(impulse)
}

// integrateForces advances velocity by accumulated force/gravity, applied
// before the velocity solver runs. Static bodies are never integrated.
func (b *RigidBody) integrateForces(gravity Vec2, dt float64) {
	if b.Kind != Dynamic || b.invMass == 0 {
		return
	}
	b.Vel = b.Vel.Add(gravity.Add(b.force.Scale(b.invMass)).Scale(dt))
	b.AngVel += b.torque * b.invInertia * dt
}

// integratePose advances position/rotation from the (already solved)
// velocity; run after the velocity solver each step.
func (b *RigidBody) integratePose(dt float64) {
	if b.Kind != Dynamic {
		return
	}
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Rot += b.AngVel * dt
}

func (b *RigidBody) clearForces() {
	b.force = Vec2Zero()
	b.torque = 0
}

// LocalToGlobal transforms a body-local point into world space using the
// current pose. Callers must never cache this across a step boundary — it
// is recomputed, not memoized, each call.
func (b *RigidBody) LocalToGlobal(p Vec2) Vec2 {
	return p.Rotate(b.Rot).Add(b.Pos)
}

// GlobalToLocal is LocalToGlobal's inverse.
func (b *RigidBody) GlobalToLocal(p Vec2) Vec2 {
	return p.Sub(b.Pos).Rotate(-b.Rot)
}

// WorldAABB returns the body's current AABB in world space (unmargined);
// the tree applies its own margin on top of this.
func (b *RigidBody) WorldAABB() AABB {
	local := b.Shape.LocalAABB()
	corners := [4]Vec2{
		{local.Min.X, local.Min.Y}, {local.Max.X, local.Min.Y},
		{local.Max.X, local.Max.Y}, {local.Min.X, local.Max.Y},
	}
	out := AABB{Min: b.LocalToGlobal(corners[0]), Max: b.LocalToGlobal(corners[0])}
	for _, c := range corners[1:] {
		w := b.LocalToGlobal(c)
		out.Min = V(minf(out.Min.X, w.X), minf(out.Min.Y, w.Y))
		out.Max = V(maxf(out.Max.X, w.X), maxf(out.Max.Y, w.Y))
	}
	return out
}
