package ntru

import (
	"golang.org/x/crypto/sha3"
)

// HashToPoint maps data (salt || message) to a ring element with N
// coefficients in [0,Q). SHAKE256 output is read as 16-bit big-endian words;
// a word t is kept only when t < k*Q with k = floor(65536/Q), and then
// reduced modulo Q, so the coefficients are uniform.
func HashToPoint(data []byte, par Params) RingElement {
	xof := sha3.NewShake256()
	_, _ = xof.Write(data)
	out := NewRingElement(par.N)
	limit := (65536 / par.Q) * par.Q
	var buf [2]byte
	for i := 0; i < par.N; {
		_, _ = xof.Read(buf[:])
		t := uint64(buf[0])<<8 | uint64(buf[1])
		if t < limit {
			out.Coeffs[i] = int64(t % par.Q)
			i++
		}
	}
	return out
}

// HashSaltMessage hashes the concatenation salt || msg. The salt has a fixed
// length, so the split point is unambiguous.
func HashSaltMessage(salt, msg []byte, par Params) RingElement {
	data := make([]byte, 0, len(salt)+len(msg))
	data = append(data, salt...)
	data = append(data, msg...)
	return HashToPoint(data, par)
}
