package physics

// Mat22 is a 2x2 matrix used for the effective-mass of two-row constraints
// (grab, prismatic's coupled line and angle rows). One-row constraints
// (distance, contact normal/tangent) use a scalar effective mass instead.
type Mat22 struct {
	A11, A12 float64
	A21, A22 float64
}

func Mat22Diag(a, b float64) Mat22 { return Mat22{A11: a, A22: b} }

func (m Mat22) Add(o Mat22) Mat22 {
	return Mat22{m.A11 + o.A11, m.A12 + o.A12, m.A21 + o.A21, m.A22 + o.A22}
}

func (m Mat22) Det() float64 { return m.A11*m.A22 - m.A12*m.A21 }

// Inverse returns the matrix inverse, or the zero matrix if singular. A
// singular effective-mass matrix occurs only when both bodies are immovable
// along every axis, in which case the constraint contributes no impulse.
func (m Mat22) Inverse() Mat22 {
	det := m.Det()
	if det == 0 {
		return Mat22{}
	}
	inv := 1 / det
	return Mat22{
		A11: m.A22 * inv, A12: -m.A12 * inv,
		A21: -m.A21 * inv, A22: m.A11 * inv,
	}
}

func (m Mat22) MulVec2(v Vec2) Vec2 {
	return Vec2{m.A11*v.X + m.A12*v.Y, m.A21*v.X + m.A22*v.Y}
}
