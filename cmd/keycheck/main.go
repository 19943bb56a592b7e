package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"falcon-aggregate/ntru"
	"falcon-aggregate/ntru/keys"
	"falcon-aggregate/ntru/signverify"
)

func maxAbs(vals []int64) int64 {
	var m int64
	for _, v := range vals {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

func main() {
	dir := flag.String("dir", "ntru_keys", "key directory")
	sigName := flag.String("sig", "", "optional signature name to inspect")
	msg := flag.String("m", "", "message the signature covers")
	flag.Parse()

	priv, err := keys.LoadPrivate(*dir)
	if err != nil {
		log.Fatalf("load private: %v", err)
	}
	par, err := priv.Params()
	if err != nil {
		log.Fatalf("params: %v", err)
	}
	fmt.Printf("N=%d q=%d beta^2=%d\n", par.N, par.Q, par.Beta2)
	fmt.Println("fG - gF = q:", ntru.CheckNTRUIdentity(priv.Fsmall, priv.Gsmall, priv.F, priv.G, par))

	h, err := ntru.PublicKeyH(ntru.RingElementFrom(priv.Fsmall), ntru.RingElementFrom(priv.Gsmall), par)
	if err != nil {
		log.Fatalf("PublicKeyH: %v", err)
	}
	fmt.Println("stored h matches g/f:", h.Equal(ntru.RingElementFrom(priv.H)))
	if pk, err := keys.LoadPublic(*dir); err == nil {
		fmt.Println("public.json matches:", pk.H.Equal(h))
	}

	n0, n1 := ntru.GramSchmidtNorms(priv.Fsmall, priv.Gsmall, par)
	fmt.Printf("Gram-Schmidt: ||(g,f)||=%.2f ||b~1||=%.2f sqrt(q)=%.2f\n", math.Sqrt(n0), math.Sqrt(n1), math.Sqrt(float64(par.Q)))
	fmt.Printf("Linf: f=%d g=%d F=%d G=%d\n", maxAbs(priv.Fsmall), maxAbs(priv.Gsmall), maxAbs(priv.F), maxAbs(priv.G))

	if *sigName == "" {
		return
	}
	sig, err := keys.Load(*dir, *sigName)
	if err != nil {
		log.Fatalf("load signature: %v", err)
	}
	if sig.Decoded == nil {
		if err := signverify.Decode(sig, par); err != nil {
			log.Fatalf("decode: %v", err)
		}
	}
	s2 := *sig.Decoded
	c := ntru.HashSaltMessage(sig.Salt, []byte(*msg), par)
	s2h, err := ntru.ConvolveModQ(s2.ModQ(par.Q), h, par)
	if err != nil {
		log.Fatalf("ConvolveModQ: %v", err)
	}
	s1, err := c.Sub(s2h)
	if err != nil {
		log.Fatalf("s1: %v", err)
	}
	center := s1.Center(par.Q)
	n, err := ntru.PairNormSquared(s1, s2, par.Q)
	if err != nil {
		log.Fatalf("norm: %v", err)
	}
	fmt.Printf("signature: ||(s1,s2)||^2=%d Linf(s1)=%d Linf(s2)=%d\n", n, maxAbs(center.Coeffs), maxAbs(s2.Coeffs))
	fmt.Println("s1 first 16:", center.Coeffs[:min(16, len(center.Coeffs))])
}
