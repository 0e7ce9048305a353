// Package ring implements arithmetic in Z_q[X]/(X^256 + 1), the polynomial
// ring underlying ML-KEM, together with the samplers and byte codecs that
// move ring elements between seeds, wire encodings and the NTT domain.
package ring

// Poly is a ring element in the coefficient domain: 256 coefficients in
// [0, Q).
type Poly [N]fieldElement

// NTTPoly is a ring element in the NTT domain. The two representations are
// distinct types on purpose: the only way to convert between them is
// through NTT and InvNTT, so mixing domains fails to compile.
type NTTPoly [N]fieldElement

func polyAdd[T ~[N]fieldElement](a, b T) T {
	var c T
	for i := range c {
		c[i] = fieldAdd(a[i], b[i])
	}
	return c
}

func polySub[T ~[N]fieldElement](a, b T) T {
	var c T
	for i := range c {
		c[i] = fieldSub(a[i], b[i])
	}
	return c
}

// Add returns the coefficient-wise sum a + b.
func (a Poly) Add(b Poly) Poly {
	return polyAdd(a, b)
}

// Sub returns the coefficient-wise difference a - b.
func (a Poly) Sub(b Poly) Poly {
	return polySub(a, b)
}

// Add returns the coefficient-wise sum a + b.
func (a NTTPoly) Add(b NTTPoly) NTTPoly {
	return polyAdd(a, b)
}
