// Package ntru implements the polynomial ring Z[x]/(x^N+1) used by an
// NTRU lattice signature scheme in the Falcon family, together with the
// primitives the single-signature signer and the aggregation layer share:
// ring arithmetic, cyclotomic reduction, centered norms, hash-to-point,
// NTT products modulo q, trapdoor generation and a nearest-plane sampler.
//
// Ring elements carry plain int64 coefficients. Reduction modulo q only
// happens where a caller asks for it explicitly (NTT products, centered
// norms), so the aggregation code can keep unreduced sums around.
package ntru
