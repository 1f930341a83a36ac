package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABBFix(t *testing.T) {
	b := AABB{Min: V(5, 5), Max: V(-1, -1)}.Fix()
	assert.True(t, b.Min.X <= b.Max.X)
	assert.True(t, b.Min.Y <= b.Max.Y)
}

func TestAABBArea(t *testing.T) {
	b := AABB{Min: V(0, 0), Max: V(2, 3)}
	assert.Equal(t, 6.0, b.Area())
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: V(0, 0), Max: V(1, 1)}
	b := AABB{Min: V(-1, 2), Max: V(3, 4)}
	u := a.Union(b)
	assert.Equal(t, V(-1, 0), u.Min)
	assert.Equal(t, V(3, 4), u.Max)
}

func TestAABBOverlaps(t *testing.T) {
	a := AABB{Min: V(0, 0), Max: V(1, 1)}
	b := AABB{Min: V(0.5, 0.5), Max: V(2, 2)}
	c := AABB{Min: V(5, 5), Max: V(6, 6)}
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestAABBContainsPoint(t *testing.T) {
	a := AABB{Min: V(-1, -1), Max: V(1, 1)}
	assert.True(t, a.ContainsPoint(V(0, 0)))
	assert.False(t, a.ContainsPoint(V(2, 0)))
}

func TestAABBContains(t *testing.T) {
	outer := AABB{Min: V(-5, -5), Max: V(5, 5)}
	inner := AABB{Min: V(-1, -1), Max: V(1, 1)}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestAABBRayIntersects(t *testing.T) {
	b := AABB{Min: V(5, -1), Max: V(6, 1)}
	assert.True(t, b.RayIntersects(V(0, 0), V(1, 0), 100))
	assert.False(t, b.RayIntersects(V(0, 0), V(0, 1), 100))
}
