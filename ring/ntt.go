package ring

// zeta is the canonical primitive 256th root of unity modulo Q.
const zeta = 17

// nInv is 128^-1 mod Q. The transform is incomplete (seven butterfly
// layers, stopping at degree-one blocks), so inversion must undo a factor
// of 128 rather than 256.
const nInv = 3303

// zetas[k] = zeta^BitRev7(k) mod Q for k = 0..127. The bit-reversed order
// matches the in-place butterfly schedule, so both transforms consume the
// table sequentially.
var zetas = [128]fieldElement{
	1, 1729, 2580, 3289, 2642, 630, 1897, 848,
	1062, 1919, 193, 797, 2786, 3260, 569, 1746,
	296, 2447, 1339, 1476, 3046, 56, 2240, 1333,
	1426, 2094, 535, 2882, 2393, 2879, 1974, 821,
	289, 331, 3253, 1756, 1197, 2304, 2277, 2055,
	650, 1977, 2513, 632, 2865, 33, 1320, 1915,
	2319, 1435, 807, 452, 1438, 2868, 1534, 2402,
	2647, 2617, 1481, 648, 2474, 3110, 1227, 910,
	17, 2761, 583, 2649, 1637, 723, 2288, 1100,
	1409, 2662, 3281, 233, 756, 2156, 3015, 3050,
	1703, 1651, 2789, 1789, 1847, 952, 1461, 2687,
	939, 2308, 2437, 2388, 733, 2337, 268, 641,
	1584, 2298, 2037, 3220, 375, 2549, 2090, 1645,
	1063, 319, 2773, 757, 2099, 561, 2466, 2594,
	2804, 1092, 403, 1026, 1143, 2150, 2775, 886,
	1722, 1212, 1874, 1029, 2110, 2935, 885, 2154,
}

// gammas[i] = zeta^(2*BitRev7(i)+1) mod Q: the constants of the 128
// degree-one quotient blocks X^2 - gamma_i that pointwise multiplication
// works in. Derived from zetas at startup instead of maintaining a second
// hand-written table.
var gammas [128]fieldElement

func init() {
	for i, z := range zetas {
		gammas[i] = fieldMul(fieldMul(z, z), zeta)
	}
}

// NTT maps a ring element into the NTT domain through seven in-place
// Cooley-Tukey butterfly layers.
func (f Poly) NTT() NTTPoly {
	k := 1
	for length := 128; length >= 2; length /= 2 {
		for start := 0; start < N; start += 2 * length {
			z := zetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := fieldMul(z, f[j+length])
				f[j+length] = fieldSub(f[j], t)
				f[j] = fieldAdd(f[j], t)
			}
		}
	}
	return NTTPoly(f)
}

// InvNTT is the exact inverse of NTT: seven Gentleman-Sande layers walking
// the zeta table backwards, then the nInv scaling.
func (f NTTPoly) InvNTT() Poly {
	k := 127
	for length := 2; length <= 128; length *= 2 {
		for start := 0; start < N; start += 2 * length {
			z := zetas[k]
			k--
			for j := start; j < start+length; j++ {
				t := f[j]
				f[j] = fieldAdd(t, f[j+length])
				f[j+length] = fieldMul(z, fieldSub(f[j+length], t))
			}
		}
	}
	for i := range f {
		f[i] = fieldMul(f[i], nInv)
	}
	return Poly(f)
}

// Mul multiplies two NTT-domain elements. In the NTT domain a ring element
// is 128 independent degree-one polynomials, so each block multiplies as
// (a0 + a1 X)(b0 + b1 X) mod (X^2 - gamma_i).
func (a NTTPoly) Mul(b NTTPoly) NTTPoly {
	var c NTTPoly
	for i := 0; i < 128; i++ {
		a0, a1 := a[2*i], a[2*i+1]
		b0, b1 := b[2*i], b[2*i+1]
		c[2*i] = fieldAdd(fieldMul(a0, b0), fieldMul(fieldMul(a1, b1), gammas[i]))
		c[2*i+1] = fieldAdd(fieldMul(a0, b1), fieldMul(a1, b0))
	}
	return c
}
