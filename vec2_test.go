package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Basics(t *testing.T) {
	a := V(1, 2)
	b := V(3, -1)

	assert.Equal(t, V(4, 1), a.Add(b))
	assert.Equal(t, V(-2, 3), a.Sub(b))
	assert.InDelta(t, a.X*b.Y-a.Y*b.X, a.Cross(b), 1e-12)
}

func TestVec2Perp(t *testing.T) {
	v := V(1, 0)
	p := v.Perp()
	assert.InDelta(t, 0, p.Dot(v), 1e-12)
	assert.Equal(t, V(0, 1), p)
}

func TestVec2Normalize(t *testing.T) {
	v := V(3, 4)
	n := v.Normalize()
	assert.InDelta(t, 1, n.Length(), 1e-12)
	assert.InDelta(t, 0, Vec2Zero().Normalize().Length(), 1e-12)
}

func TestVec2Rotate(t *testing.T) {
	v := V(1, 0)
	r := v.Rotate(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, 1, r.Y, 1e-9)
}

func TestMat22Inverse(t *testing.T) {
	m := Mat22{A11: 2, A12: 0, A21: 0, A22: 4}
	inv := m.Inverse()
	v := V(1, 1)
	round := inv.MulVec2(m.MulVec2(v))
	assert.InDelta(t, v.X, round.X, 1e-9)
	assert.InDelta(t, v.Y, round.Y, 1e-9)
}

func TestMat22SingularInverseIsZero(t *testing.T) {
	m := Mat22{}
	assert.Equal(t, Mat22{}, m.Inverse())
}
