package aggregate

import (
	"testing"

	"falcon-aggregate/ntru"
	"falcon-aggregate/ntru/keys"
)

// FuzzAggregateVerify feeds arbitrary shapes through Aggregate and the
// verifier; neither may panic, and a count below one is always an error.
func FuzzAggregateVerify(f *testing.F) {
	f.Add(uint8(2), uint8(16), []byte("salt"), []byte("msg"), int8(3), int8(-1))
	f.Add(uint8(0), uint8(0), []byte{}, []byte{}, int8(0), int8(0))
	f.Add(uint8(3), uint8(15), []byte{1}, []byte("x"), int8(-128), int8(127))
	par, err := ntru.NewParams(16, 97, 1000)
	if err != nil {
		f.Fatal(err)
	}
	pk := keys.NewPublicKey(ntru.HashToPoint([]byte("key"), par), par)
	v := NewVerifier(par)
	f.Fuzz(func(t *testing.T, k, n uint8, salt, msg []byte, a, b int8) {
		sigs := make([]*keys.Signature, int(k%5))
		for i := range sigs {
			d := ntru.NewRingElement(int(n % 20))
			for j := range d.Coeffs {
				d.Coeffs[j] = int64(a)*int64(j+i) - int64(b)
			}
			sigs[i] = &keys.Signature{Salt: salt, Decoded: &d}
		}
		agg, err := Aggregate(sigs)
		if err != nil {
			return
		}
		count := int(a)
		ok, err := v.Verify(msg, agg, pk, count)
		if count < 1 && err == nil {
			t.Fatalf("count %d accepted without error", count)
		}
		if err != nil && ok {
			t.Fatalf("error %v with ok=true", err)
		}
	})
}
