package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDynamicBodyMassInertiaFromShape(t *testing.T) {
	circle := Circle{Radius: 2}
	b := NewDynamicBody(V(0, 0), 0, circle, 1)

	wantMass, wantInertia := circle.ComputeMass(1)
	assert.InDelta(t, wantMass, b.Mass(), 1e-12)
	assert.InDelta(t, wantInertia, b.Inertia(), 1e-12)
	assert.InDelta(t, 1/wantMass, b.InvMass(), 1e-12)
	assert.InDelta(t, 1/wantInertia, b.InvInertia(), 1e-12)
}

func TestStaticBodyHasZeroInverseMassAndInertia(t *testing.T) {
	b := NewStaticBody(V(0, 0), 0, NewBox(1, 1))
	assert.Equal(t, 0.0, b.InvMass())
	assert.Equal(t, 0.0, b.InvInertia())
	assert.True(t, b.IsStatic())
}

func TestSetMassZeroGivesZeroInverse(t *testing.T) {
	b := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	b.SetMass(0)
	assert.Equal(t, 0.0, b.InvMass())
}

func TestStaticBodyIgnoresForcesAndIntegration(t *testing.T) {
	b := NewStaticBody(V(1, 2), 0, Circle{Radius: 1})
	b.ApplyForce(V(100, 100))
	b.ApplyTorque(50)
	b.integrateForces(V(0, -10), 1.0/60)
	b.integratePose(1.0 / 60)
	assert.Equal(t, V(1, 2), b.Pos)
	assert.Equal(t, Vec2Zero(), b.Vel)
}

func TestDynamicBodyIntegratesGravity(t *testing.T) {
	b := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	dt := 1.0 / 60
	b.integrateForces(V(0, -10), dt)
	assert.InDelta(t, -10*dt, b.Vel.Y, 1e-12)
	b.integratePose(dt)
	assert.InDelta(t, -10*dt*dt, b.Pos.Y, 1e-12)
}

func TestApplyImpulseAtUpdatesLinearAndAngularVelocity(t *testing.T) {
	b := NewDynamicBody(V(0, 0), 0, NewBox(1, 1), 1)
	b.ApplyImpulseAt(V(0, 1), V(1, 0))
	assert.InDelta(t, b.InvMass(), b.Vel.Y, 1e-9)
	assert.NotEqual(t, 0.0, b.AngVel)
}

func TestLocalGlobalRoundTrip(t *testing.T) {
	b := NewDynamicBody(V(3, -4), 0.7, Circle{Radius: 1}, 1)
	p := V(1.5, -2.25)
	world := b.LocalToGlobal(p)
	back := b.GlobalToLocal(world)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestWorldAABBTracksPose(t *testing.T) {
	b := NewDynamicBody(V(0, 0), 0, NewBox(1, 1), 1)
	box := b.WorldAABB()
	assert.InDelta(t, -1, box.Min.X, 1e-9)
	assert.InDelta(t, 1, box.Max.X, 1e-9)

	b.Pos = V(5, 5)
	box = b.WorldAABB()
	assert.InDelta(t, 4, box.Min.X, 1e-9)
	assert.InDelta(t, 6, box.Max.X, 1e-9)
}

func TestClearForcesResetsAccumulators(t *testing.T) {
	b := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	b.ApplyForce(V(1, 1))
	b.ApplyTorque(2)
	b.clearForces()
	b.integrateForces(Vec2Zero(), 1.0/60)
	assert.Equal(t, Vec2Zero(), b.Vel)
	assert.Equal(t, 0.0, b.AngVel)
}
