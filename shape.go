package physics

import "math"

// ShapeKind distinguishes the two narrow-phase primitives this module ships
// as a reference implementation.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapePolygon
)

// Shape is the minimal contract the core needs from a geometric primitive:
// an AABB in the shape's local frame and a mass/inertia contribution. The core never
// inspects shape geometry beyond this interface.
type Shape interface {
	Kind() ShapeKind
	// LocalAABB returns the shape's AABB in its own local frame (unrotated,
	// centered per the shape's own definition).
	LocalAABB() AABB
	// ComputeMass returns the shape's mass and rotational inertia about its
	// local origin (the point the body rotates about) for the given density.
	ComputeMass(density float64) (mass, inertia float64)
}

// Circle is a disc of the given radius centered at the body origin.
type Circle struct {
	Radius float64
}

func (Circle) Kind() ShapeKind { return ShapeCircle }

func (c Circle) LocalAABB() AABB {
	r := V(c.Radius, c.Radius)
	return AABB{Min: Vec2Zero().Sub(r), Max: Vec2Zero().Add(r)}
}

func (c Circle) ComputeMass(density float64) (mass, inertia float64) {
	mass = math.Pi * c.Radius * c.Radius * density
	inertia = mass * c.Radius * c.Radius / 2
	return
}

// Polygon is a convex polygon given by counter-clockwise local-space
// vertices. Feature indices for warm-start keys are vertex
// indices.
type Polygon struct {
	Vertices []Vec2
}

func (Polygon) Kind() ShapeKind { return ShapePolygon }

func (p Polygon) LocalAABB() AABB {
	if len(p.Vertices) == 0 {
		return AABB{}
	}
	b := AABB{Min: p.Vertices[0], Max: p.Vertices[0]}
	for _, v := range p.Vertices[1:] {
		b.Min = V(minf(b.Min.X, v.X), minf(b.Min.Y, v.Y))
		b.Max = V(maxf(b.Max.X, v.X), maxf(b.Max.Y, v.Y))
	}
	return b
}

// ComputeMass uses the standard polygon area/inertia formula (shoelace
// decomposition into triangles about the origin). The inertia is about the
// local origin; it is not shifted to the centroid.
func (p Polygon) ComputeMass(density float64) (mass, inertia float64) {
	n := len(p.Vertices)
	if n < 3 {
		return 0, 0
	}
	var area, centerX, centerY, momentOfInertia float64
	const k = 1.0 / 3.0
	for i := 0; i < n; i++ {
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%n]
		cross := v1.Cross(v2)
		triArea := 0.5 * cross
		area += triArea
		centerX += triArea * k * (v1.X + v2.X)
		centerY += triArea * k * (v1.Y + v2.Y)
		intx2 := v1.X*v1.X + v1.X*v2.X + v2.X*v2.X
		inty2 := v1.Y*v1.Y + v1.Y*v2.Y + v2.Y*v2.Y
		momentOfInertia += (0.25 * k * cross) * (intx2 + inty2)
	}
	mass = density * area
	inertia = density * momentOfInertia
	return
}

// NewBox is a convenience constructor for an axis-aligned rectangular
// polygon of the given half-extents.
func NewBox(hx, hy float64) Polygon {
	return Polygon{Vertices: []Vec2{
		V(-hx, -hy), V(hx, -hy), V(hx, hy), V(-hx, hy),
	}}
}
