package physics

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec2
}

// Fix restores the min ≤ max invariant on arbitrary user input (e.g. a box
// built from two unordered corner points).
func (b AABB) Fix() AABB {
	if b.Min.X > b.Max.X {
		b.Min.X, b.Max.X = b.Max.X, b.Min.X
	}
	if b.Min.Y > b.Max.Y {
		b.Min.Y, b.Max.Y = b.Max.Y, b.Min.Y
	}
	return b
}

func (b AABB) Area() float64 {
	return (b.Max.X - b.Min.X) * (b.Max.Y - b.Min.Y)
}

func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: V(minf(b.Min.X, o.Min.X), minf(b.Min.Y, o.Min.Y)),
		Max: V(maxf(b.Max.X, o.Max.X), maxf(b.Max.Y, o.Max.Y)),
	}
}

func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

func (b AABB) ContainsPoint(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Contains reports whether b fully contains o, used to decide whether a
// moved body's leaf box still covers its new world AABB without needing a
// tree update.
func (b AABB) Contains(o AABB) bool {
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y && b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y
}

// Expand enlarges the AABB symmetrically by margin on every side.
func (b AABB) Expand(margin float64) AABB {
	return AABB{
		Min: V(b.Min.X-margin, b.Min.Y-margin),
		Max: V(b.Max.X+margin, b.Max.Y+margin),
	}
}

// RayIntersects tests a ray (origin o, direction d, not necessarily
// normalized) against the box using the slab method. Backs World.QueryRay.
func (b AABB) RayIntersects(o, d Vec2, maxT float64) bool {
	tmin, tmax := 0.0, maxT
	for axis := 0; axis < 2; axis++ {
		var origin, dir, lo, hi float64
		if axis == 0 {
			origin, dir, lo, hi = o.X, d.X, b.Min.X, b.Max.X
		} else {
			origin, dir, lo, hi = o.Y, d.Y, b.Min.Y, b.Max.Y
		}
		if dir == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}
		inv := 1 / dir
		t1 := (lo - origin) * inv
		t2 := (hi - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = maxf(tmin, t1)
		tmax = minf(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}
