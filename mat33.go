package physics

// Mat33 is a 3x3 matrix used for the weld joint's combined
// position+angle effective mass.
type Mat33 [3][3]float64

func (m Mat33) Add(o Mat33) Mat33 {
	var r Mat33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + o[i][j]
		}
	}
	return r
}

func (m Mat33) AddDiag(v float64) Mat33 {
	r := m
	r[0][0] += v
	r[1][1] += v
	r[2][2] += v
	return r
}

// Inverse returns the 3x3 matrix inverse via the adjugate/determinant
// method, or the zero matrix if singular (both bodies immovable along
// every axis).
func (m Mat33) Inverse() Mat33 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return Mat33{}
	}
	inv := 1 / det

	var r Mat33
	r[0][0] = (e*i - f*h) * inv
	r[0][1] = (c*h - b*i) * inv
	r[0][2] = (b*f - c*e) * inv
	r[1][0] = (f*g - d*i) * inv
	r[1][1] = (a*i - c*g) * inv
	r[1][2] = (c*d - a*f) * inv
	r[2][0] = (d*h - e*g) * inv
	r[2][1] = (b*g - a*h) * inv
	r[2][2] = (a*e - b*d) * inv
	return r
}

func (m Mat33) MulVec3(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
