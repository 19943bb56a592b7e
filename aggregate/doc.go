// Package aggregate combines salt-sharing signatures on one message under
// one public key into a single ring element, and verifies the result.
//
// An aggregate of k signatures carries s2 = s2_1 + ... + s2_k. Verification
// recomputes s1 = k*c - s2*h in Z[x]/(x^N+1), measures both components with
// centered representatives mod q, and accepts iff the total squared norm is
// strictly below a limit derived from k (by default beta^2 * k^2).
package aggregate
