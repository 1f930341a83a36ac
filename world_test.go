package physics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	w, err := NewWorld(NewConfig(opts...))
	require.NoError(t, err)
	return w
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	_, err := NewWorld(NewConfig(WithFixedDeltaTime(0)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestWorldAddAssignsStableID(t *testing.T) {
	w := newTestWorld(t)
	a := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	b := NewDynamicBody(V(5, 5), 0, Circle{Radius: 1}, 1)
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotZero(t, a.ID)
}

func TestWorldRemoveUnknownBodyIsDanglingReference(t *testing.T) {
	w := newTestWorld(t)
	b := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	err := w.Remove(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDanglingReference))
}

func TestWorldAddJointRejectsUnownedBody(t *testing.T) {
	w := newTestWorld(t)
	a := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	b := NewDynamicBody(V(1, 0), 0, Circle{Radius: 1}, 1)
	require.NoError(t, w.Add(a))
	// b is never added to w.
	joint := NewDistanceJoint(a, b, Vec2Zero(), Vec2Zero(), 1)
	err := w.AddJoint(joint)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDanglingReference))
}

func TestWorldAddJointRejectsStaticStaticLine(t *testing.T) {
	w := newTestWorld(t)
	a := NewStaticBody(V(0, 0), 0, Circle{Radius: 1})
	b := NewStaticBody(V(5, 0), 0, Circle{Radius: 1})
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))
	joint := NewLineJoint(a, b, Vec2Zero(), Vec2Zero(), V(1, 0))
	err := w.AddJoint(joint)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

// a distance joint between a fixed anchor and a falling body converges to
// its rest length under gravity.
func TestDistanceJointConvergesToRestLength(t *testing.T) {
	w := newTestWorld(t, WithGravity(V(0, -10)))
	anchor := NewStaticBody(V(0, 10), 0, Circle{Radius: 0.1})
	bob := NewDynamicBody(V(0, 5), 0, Circle{Radius: 0.5}, 1)
	require.NoError(t, w.Add(anchor))
	require.NoError(t, w.Add(bob))

	joint := NewDistanceJoint(anchor, bob, Vec2Zero(), Vec2Zero(), 5)
	require.NoError(t, w.AddJoint(joint))

	for i := 0; i < 60; i++ {
		w.Step()
	}

	assert.InDelta(t, 5.0, joint.CurrentLength(), 1e-3)
}

// a grab joint pulls a body toward its target and settles near it within
// one second at 60Hz.
func TestGrabJointPullsBodyToTarget(t *testing.T) {
	w := newTestWorld(t, WithGravity(Vec2Zero()))
	b := NewDynamicBody(V(0, 0), 0, Circle{Radius: 0.5}, 1)
	require.NoError(t, w.Add(b))

	target := V(3, 2)
	joint := NewGrabJoint(b, Vec2Zero(), target, 5, 0.7)
	require.NoError(t, w.AddJoint(joint))

	for i := 0; i < 60; i++ {
		w.Step()
	}

	assert.InDelta(t, 0, b.Pos.Sub(target).Length(), 0.1)
	assert.Less(t, b.Vel.Length(), 0.1)
}

// total momentum is conserved across a head-on elastic collision between
// two equal-mass bodies with restitution 1, modulo the discretized-impulse
// slop the solver applies.
func TestMomentumConservedInElasticHeadOnCollision(t *testing.T) {
	w := newTestWorld(t, WithGravity(Vec2Zero()))
	a := NewDynamicBody(V(-2, 0), 0, Circle{Radius: 0.5}, 1)
	b := NewDynamicBody(V(2, 0), 0, Circle{Radius: 0.5}, 1)
	a.Restitution, b.Restitution = 1, 1
	a.Vel = V(5, 0)
	b.Vel = V(-5, 0)
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))

	before := w.Momentum()

	var after Vec2
	for i := 0; i < 120; i++ {
		w.Step()
		after = w.Momentum()
	}

	assert.InDelta(t, before.X, after.X, 1e-6)
	assert.InDelta(t, before.Y, after.Y, 1e-6)
}

// Equal-mass, restitution-1 bodies head-on should roughly exchange
// velocities after the collision resolves.
func TestEqualMassRestitutionOneReversesVelocities(t *testing.T) {
	w := newTestWorld(t, WithGravity(Vec2Zero()))
	a := NewDynamicBody(V(-1.1, 0), 0, Circle{Radius: 0.5}, 1)
	b := NewDynamicBody(V(1.1, 0), 0, Circle{Radius: 0.5}, 1)
	a.Restitution, b.Restitution = 1, 1
	a.Vel = V(2, 0)
	b.Vel = V(-2, 0)
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))

	for i := 0; i < 60; i++ {
		w.Step()
	}

	assert.Less(t, a.Vel.X, 0.0)
	assert.Greater(t, b.Vel.X, 0.0)
}

func TestWorldStepReportsStats(t *testing.T) {
	w := newTestWorld(t)
	a := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	b := NewDynamicBody(V(1.5, 0), 0, Circle{Radius: 1}, 1)
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))

	stats := w.Step()
	assert.Equal(t, uint64(1), stats.Stamp)
	assert.GreaterOrEqual(t, stats.CandidatePairs, 1)
}

func TestWorldQueryPointResolvesToBodies(t *testing.T) {
	w := newTestWorld(t)
	a := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	require.NoError(t, w.Add(a))

	found := w.QueryPoint(V(0, 0))
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)
}

func TestWorldRemoveThenQueryPointEmpty(t *testing.T) {
	w := newTestWorld(t)
	a := NewDynamicBody(V(0, 0), 0, Circle{Radius: 1}, 1)
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Remove(a))
	assert.Empty(t, w.QueryPoint(V(0, 0)))
}
