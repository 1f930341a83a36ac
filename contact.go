package physics

import "math"

// contactKey is the stable warm-start identity of a contact point, derived
// from the shape-feature pair so that a point persisting across ticks
// inherits its previous accumulated impulse.
type contactKey struct {
	bodyA, bodyB BodyID
	featureA     int
	featureB     int
}

// warmStartEntry caches one contact point's accumulated impulses across
// ticks, plus the tick it was last refreshed at.
type warmStartEntry struct {
	normalImpulse  float64
	tangentImpulse float64
	lastStamp      uint64
}

// contactPointSolver is one row-pair (normal + tangent) of a
// ContactConstraint.
type contactPointSolver struct {
	key contactKey

	rA, rB Vec2 // contact offsets from body centers, at prepare time

	normalMass  float64
	tangentMass float64
	bias        float64 // restitution bias, computed once at prepare

	normalImpulse  float64
	tangentImpulse float64

	penetration float64
}

// ContactConstraint is the per-manifold contact constraint: one normal row
// and one tangent (friction) row per contact point.
type ContactConstraint struct {
	A, B *RigidBody

	Normal Vec2
	Points []*contactPointSolver

	friction    float64
	contactBeta float64
}

var _ Constraint = (*ContactConstraint)(nil)

func newContactConstraint(a, b *RigidBody, m Manifold, cache map[contactKey]*warmStartEntry, warmStarting bool) *ContactConstraint {
	cc := &ContactConstraint{
		A: a, B: b, Normal: m.Normal,
		friction:    math.Sqrt(a.Friction * b.Friction),
		contactBeta: math.Min(a.ContactBeta, b.ContactBeta),
	}
	for _, p := range m.Points {
		key := contactKey{bodyA: a.ID, bodyB: b.ID, featureA: p.FeatureA, featureB: p.FeatureB}
		ps := &contactPointSolver{key: key, penetration: p.Penetration}
		if warmStarting {
			if entry, ok := cache[key]; ok {
				ps.normalImpulse = entry.normalImpulse
				ps.tangentImpulse = entry.tangentImpulse
			}
		}
		ps.rA = p.Position.Sub(a.Pos)
		ps.rB = p.Position.Sub(b.Pos)
		cc.Points = append(cc.Points, ps)
	}
	return cc
}

func (c *ContactConstraint) Bodies() (a, b *RigidBody) { return c.A, c.B }

func (c *ContactConstraint) Prepare(cfg *Config, dt float64) {
	a, b := c.A, c.B
	n := c.Normal
	t := n.Perp()

	for _, p := range c.Points {
		rnA := p.rA.Cross(n)
		rnB := p.rB.Cross(n)
		kNormal := a.invMass + b.invMass + a.invInertia*rnA*rnA + b.invInertia*rnB*rnB
		if kNormal > 0 {
			p.normalMass = 1 / kNormal
		}

		rtA := p.rA.Cross(t)
		rtB := p.rB.Cross(t)
		kTangent := a.invMass + b.invMass + a.invInertia*rtA*rtA + b.invInertia*rtB*rtB
		if kTangent > 0 {
			p.tangentMass = 1 / kTangent
		}

		relVel := relativeVelocityAt(a, b, p.rA, p.rB)
		vn := relVel.Dot(n)
		restitution := math.Max(a.Restitution, b.Restitution)
		p.bias = 0
		if -vn > cfg.RestitutionSlop {
			p.bias = math.Max(0, restitution*(-vn-cfg.RestitutionSlop))
			// b_n = max(0, restitution·(closing speed − restitutionSlop)).
			// vn is negative when closing, so -vn is the closing speed
			// magnitude.
		}

		if cfg.WarmStarting {
			impulse := n.Scale(p.normalImpulse).Add(t.Scale(p.tangentImpulse))
			a.ApplyImpulseAt(impulse.Neg(), p.rA.Add(a.Pos))
			b.ApplyImpulseAt(impulse, p.rB.Add(b.Pos))
		} else {
			p.normalImpulse = 0
			p.tangentImpulse = 0
		}
	}
}

func (c *ContactConstraint) Solve(cfg *Config) {
	a, b := c.A, c.B
	n := c.Normal
	t := n.Perp()

	for _, p := range c.Points {
		// Tangent (friction) row first, clamped against the *current*
		// accumulated normal impulse — friction is solved against last
		// iteration's normal impulse, one iteration behind.
		relVel := relativeVelocityAt(a, b, p.rA, p.rB)
		vt := relVel.Dot(t)
		lambdaT := -vt * p.tangentMass

		maxFriction := c.friction * p.normalImpulse
		newTangent := clamp(p.tangentImpulse+lambdaT, -maxFriction, maxFriction)
		lambdaT = newTangent - p.tangentImpulse
		p.tangentImpulse = newTangent

		tImpulse := t.Scale(lambdaT)
		a.ApplyImpulseAt(tImpulse.Neg(), p.rA.Add(a.Pos))
		b.ApplyImpulseAt(tImpulse, p.rB.Add(b.Pos))

		// Normal row.
		relVel = relativeVelocityAt(a, b, p.rA, p.rB)
		vn := relVel.Dot(n)

		penBias := 0.0
		if pen := p.penetration - cfg.LinearSlop; cfg.PositionCorrection && pen > 0 {
			penBias = (c.contactBeta / cfgDtOrOne(cfg)) * pen
		}

		lambdaN := -(vn - p.bias - penBias) * p.normalMass
		newNormal := math.Max(0, p.normalImpulse+lambdaN)
		lambdaN = newNormal - p.normalImpulse
		p.normalImpulse = newNormal

		nImpulse := n.Scale(lambdaN)
		a.ApplyImpulseAt(nImpulse.Neg(), p.rA.Add(a.Pos))
		b.ApplyImpulseAt(nImpulse, p.rB.Add(b.Pos))
	}
}

func cfgDtOrOne(cfg *Config) float64 {
	if cfg.FixedDeltaTime == 0 {
		return 1
	}
	return cfg.FixedDeltaTime
}

// relativeVelocityAt returns B's velocity minus A's velocity at the contact
// point offsets rA/rB from their respective centers.
func relativeVelocityAt(a, b *RigidBody, rA, rB Vec2) Vec2 {
	vA := a.Vel.Add(CrossScalar(a.AngVel, rA))
	vB := b.Vel.Add(CrossScalar(b.AngVel, rB))
	return vB.Sub(vA)
}

// snapshot records this constraint's impulses into the warm-start cache for
// the next tick.
func (c *ContactConstraint) snapshot(cache map[contactKey]*warmStartEntry, stamp uint64) {
	for _, p := range c.Points {
		cache[p.key] = &warmStartEntry{
			normalImpulse:  p.normalImpulse,
			tangentImpulse: p.tangentImpulse,
			lastStamp:      stamp,
		}
	}
}
