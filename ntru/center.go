package ntru

// CenterModQ maps coefficients to the symmetric interval (-q/2, q/2].
// Inputs may be any int64; they are reduced modulo q first.
func CenterModQ(a []int64, q uint64) []int64 {
	out := make([]int64, len(a))
	half := int64(q / 2)
	qint := int64(q)
	for i, v := range a {
		v %= qint
		if v < 0 {
			v += qint
		}
		if v > half {
			v -= qint
		}
		out[i] = v
	}
	return out
}

// DecenterToModQ maps centered coefficients back to [0,q).
func DecenterToModQ(a []int64, q uint64) []uint64 {
	out := make([]uint64, len(a))
	qint := int64(q)
	for i, v := range a {
		t := v % qint
		if t < 0 {
			t += qint
		}
		out[i] = uint64(t)
	}
	return out
}

// Center returns p with every coefficient in (-q/2, q/2].
func (p RingElement) Center(q uint64) RingElement {
	return RingElement{Coeffs: CenterModQ(p.Coeffs, q)}
}
