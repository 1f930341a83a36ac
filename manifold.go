package physics

import "math"

// ContactPoint is one point of a narrow-phase manifold: a world-space
// position, penetration depth, and the shape-feature pair used to build a
// stable warm-start key across ticks.
type ContactPoint struct {
	Position    Vec2
	Penetration float64
	FeatureA    int
	FeatureB    int
}

// Manifold is the narrow-phase result for one candidate pair: a contact
// normal (from A to B) and up to two contact points.
type Manifold struct {
	Normal Vec2
	Points []ContactPoint
}

// Manifolder is the narrow-phase collaborator the solver treats as an
// external dependency. World.Step calls Collide for every broad-phase
// candidate pair except pairs of two static bodies.
type Manifolder interface {
	Collide(a, b *RigidBody) (Manifold, bool)
}

// DefaultManifolder is the reference circle/polygon narrow phase shipped so
// the package is runnable without a caller-supplied narrow phase. The
// SAT/clipping algorithm is the standard 2D manifold-generation technique
// (separating-axis test plus Sutherland-Hodgman clipping of the incident
// edge against the reference edge's side planes).
type DefaultManifolder struct{}

func (DefaultManifolder) Collide(a, b *RigidBody) (Manifold, bool) {
	switch a.Shape.Kind() {
	case ShapeCircle:
		sa := a.Shape.(Circle)
		switch b.Shape.Kind() {
		case ShapeCircle:
			return collideCircleCircle(a, sa, b, b.Shape.(Circle))
		case ShapePolygon:
			m, ok := collidePolygonCircle(b, b.Shape.(Polygon), a, sa)
			return flipManifold(m), ok && len(m.Points) > 0
		}
	case ShapePolygon:
		sa := a.Shape.(Polygon)
		switch b.Shape.Kind() {
		case ShapeCircle:
			return collidePolygonCircle(a, sa, b, b.Shape.(Circle))
		case ShapePolygon:
			return collidePolygonPolygon(a, sa, b, b.Shape.(Polygon))
		}
	}
	return Manifold{}, false
}

func flipManifold(m Manifold) Manifold {
	out := Manifold{Normal: m.Normal.Neg()}
	for _, p := range m.Points {
		out.Points = append(out.Points, ContactPoint{
			Position: p.Position, Penetration: p.Penetration,
			FeatureA: p.FeatureB, FeatureB: p.FeatureA,
		})
	}
	return out
}

func collideCircleCircle(a *RigidBody, ca Circle, b *RigidBody, cb Circle) (Manifold, bool) {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()
	radiusSum := ca.Radius + cb.Radius
	if dist >= radiusSum {
		return Manifold{}, false
	}
	var normal Vec2
	if dist > 1e-9 {
		normal = delta.Scale(1 / dist)
	} else {
		normal = V(1, 0)
	}
	point := a.Pos.Add(normal.Scale(ca.Radius))
	return Manifold{
		Normal: normal,
		Points: []ContactPoint{{Position: point, Penetration: radiusSum - dist, FeatureA: 0, FeatureB: 0}},
	}, true
}

// collidePolygonCircle treats the circle as a degenerate polygon feature 0,
// finding the polygon edge of minimum penetration (or, when the circle
// center lies outside that edge's half-plane, the closest point on that
// edge: an end vertex or a point along it).
func collidePolygonCircle(pb *RigidBody, poly Polygon, cb *RigidBody, circle Circle) (Manifold, bool) {
	verts := poly.Vertices
	n := len(verts)
	if n == 0 {
		return Manifold{}, false
	}
	center := pb.GlobalToLocal(cb.Pos)

	bestSep := math.Inf(-1)
	bestEdge := 0
	for i := 0; i < n; i++ {
		v1 := verts[i]
		v2 := verts[(i+1)%n]
		edge := v2.Sub(v1)
		normal := edge.Perp().Normalize()
		sep := normal.Dot(center.Sub(v1))
		if sep > circle.Radius {
			return Manifold{}, false
		}
		if sep > bestSep {
			bestSep = sep
			bestEdge = i
		}
	}

	v1 := verts[bestEdge]
	v2 := verts[(bestEdge+1)%n]
	normalLocal := v2.Sub(v1).Perp().Normalize()

	var contactLocal Vec2
	if bestSep < 0 {
		contactLocal = center.Sub(normalLocal.Scale(bestSep))
	} else {
		// Circle center is outside the edge's half-plane; use the closest
		// point on the edge segment, clamped to the nearer vertex when the
		// projection falls beyond either end.
		u1 := center.Sub(v1).Dot(v2.Sub(v1))
		u2 := center.Sub(v2).Dot(v1.Sub(v2))
		var closest Vec2
		switch {
		case u1 <= 0:
			closest = v1
		case u2 <= 0:
			closest = v2
		default:
			closest = v1.Add(v2.Sub(v1).Scale(u1 / v2.Sub(v1).LengthSq()))
		}
		d := center.Sub(closest)
		if d.LengthSq() > circle.Radius*circle.Radius {
			return Manifold{}, false
		}
		normalLocal = d.Normalize()
		contactLocal = closest
	}

	normalWorld := normalLocal.Rotate(pb.Rot)
	pointWorld := pb.LocalToGlobal(contactLocal)
	penetration := circle.Radius - bestSep
	if penetration < 0 {
		penetration = circle.Radius - center.Distance(contactLocal)
	}
	return Manifold{
		Normal: normalWorld,
		Points: []ContactPoint{{Position: pointWorld, Penetration: penetration, FeatureA: bestEdge, FeatureB: 0}},
	}, true
}

// collidePolygonPolygon implements SAT with reference/incident edge
// clipping, the standard 2D manifold-generation algorithm.
func collidePolygonPolygon(a *RigidBody, pa Polygon, b *RigidBody, pb Polygon) (Manifold, bool) {
	worldA := worldVerts(a, pa)
	worldB := worldVerts(b, pb)

	sepA, edgeA := maxSeparation(worldA, worldB)
	if sepA >= 0 {
		return Manifold{}, false
	}
	sepB, edgeB := maxSeparation(worldB, worldA)
	if sepB >= 0 {
		return Manifold{}, false
	}

	var ref, inc []Vec2
	var refEdge int
	flip := false
	const tol = 0.1
	if sepB > sepA+tol {
		ref, inc = worldB, worldA
		refEdge = edgeB
		flip = true
	} else {
		ref, inc = worldA, worldB
		refEdge = edgeA
	}

	n1 := len(ref)
	v1 := ref[refEdge]
	v2 := ref[(refEdge+1)%n1]
	refNormal := v2.Sub(v1).Perp().Normalize()

	incEdge := findIncidentEdge(inc, refNormal)
	n2 := len(inc)
	i1 := inc[incEdge]
	i2 := inc[(incEdge+1)%n2]

	tangent := v2.Sub(v1).Normalize()
	points := []ContactPoint{
		{Position: i1, FeatureA: refEdge, FeatureB: incEdge},
		{Position: i2, FeatureA: refEdge, FeatureB: (incEdge + 1) % n2},
	}
	points = clipSegment(points, tangent.Neg(), -tangent.Dot(v1))
	if len(points) < 2 {
		return Manifold{}, false
	}
	points = clipSegment(points, tangent, tangent.Dot(v2))
	if len(points) < 2 {
		return Manifold{}, false
	}

	out := make([]ContactPoint, 0, 2)
	for _, p := range points {
		sep := refNormal.Dot(p.Position.Sub(v1))
		if sep <= 0 {
			out = append(out, ContactPoint{Position: p.Position, Penetration: -sep, FeatureA: p.FeatureA, FeatureB: p.FeatureB})
		}
	}
	if len(out) == 0 {
		return Manifold{}, false
	}

	normal := refNormal
	if flip {
		normal = normal.Neg()
		for i := range out {
			out[i].FeatureA, out[i].FeatureB = out[i].FeatureB, out[i].FeatureA
		}
	}
	return Manifold{Normal: normal, Points: out}, true
}

func worldVerts(body *RigidBody, p Polygon) []Vec2 {
	out := make([]Vec2, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = body.LocalToGlobal(v)
	}
	return out
}

// maxSeparation returns the maximum (least negative / most positive)
// edge separation of verts relative to other, and the edge index achieving
// it — the core separating-axis test.
func maxSeparation(verts, other []Vec2) (float64, int) {
	best := math.Inf(-1)
	bestEdge := 0
	n := len(verts)
	for i := 0; i < n; i++ {
		v1 := verts[i]
		v2 := verts[(i+1)%n]
		normal := v2.Sub(v1).Perp().Normalize()

		minSep := math.Inf(1)
		for _, p := range other {
			s := normal.Dot(p.Sub(v1))
			if s < minSep {
				minSep = s
			}
		}
		if minSep > best {
			best = minSep
			bestEdge = i
		}
	}
	return best, bestEdge
}

func findIncidentEdge(verts []Vec2, refNormal Vec2) int {
	n := len(verts)
	best := math.Inf(1)
	bestEdge := 0
	for i := 0; i < n; i++ {
		v1 := verts[i]
		v2 := verts[(i+1)%n]
		edgeNormal := v2.Sub(v1).Perp().Normalize()
		dot := edgeNormal.Dot(refNormal)
		if dot < best {
			best = dot
			bestEdge = i
		}
	}
	return bestEdge
}

// clipSegment clips a 2-point segment against the half-plane
// normal·x <= offset. A surviving point keeps its own feature ids; a newly
// created intersection point takes the ids of the point that was clipped
// away, the usual Sutherland-Hodgman convention for contact persistence.
func clipSegment(points []ContactPoint, normal Vec2, offset float64) []ContactPoint {
	if len(points) != 2 {
		return nil
	}
	d0 := normal.Dot(points[0].Position) - offset
	d1 := normal.Dot(points[1].Position) - offset

	var out []ContactPoint
	if d0 <= 0 {
		out = append(out, points[0])
	}
	if d1 <= 0 {
		out = append(out, points[1])
	}
	if d0*d1 < 0 {
		t := d0 / (d0 - d1)
		pos := points[0].Position.Lerp(points[1].Position, t)
		src := points[0]
		if d0 <= 0 {
			src = points[1]
		}
		out = append(out, ContactPoint{Position: pos, FeatureA: src.FeatureA, FeatureB: src.FeatureB})
	}
	return out
}
