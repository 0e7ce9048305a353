package ring

import "golang.org/x/crypto/sha3"

// SampleNTT draws a uniform NTT-domain element from an extendable-output
// stream by rejection sampling. Every 3-byte group yields two 12-bit
// candidates; candidates at or above Q are discarded. The number of loop
// iterations depends only on the stream, which is derived from the public
// seed rho.
func SampleNTT(xof sha3.ShakeHash) NTTPoly {
	var a NTTPoly
	var buf [3]byte
	j := 0
	for j < N {
		_, _ = xof.Read(buf[:])
		d1 := fieldElement(buf[0]) | fieldElement(buf[1]&0x0F)<<8
		d2 := fieldElement(buf[1]>>4) | fieldElement(buf[2])<<4
		if d1 < Q {
			a[j] = d1
			j++
		}
		if d2 < Q && j < N {
			a[j] = d2
			j++
		}
	}
	return a
}

// SamplePolyCBD maps 64*eta pseudorandom bytes to a sample from the
// centered binomial distribution: each coefficient is the difference of
// two eta-bit popcounts, lifted into [0, Q). eta is 2 or 3.
func SamplePolyCBD(b []byte, eta int) Poly {
	if eta != 2 && eta != 3 {
		panic("eta must be 2 or 3")
	}
	if len(b) != 64*eta {
		panic("CBD input must be 64*eta bytes")
	}

	var f Poly
	for i := 0; i < N; i++ {
		var x, y fieldElement
		for j := 0; j < eta; j++ {
			x += bit(b, 2*i*eta+j)
			y += bit(b, 2*i*eta+eta+j)
		}
		f[i] = fieldSub(x, y)
	}
	return f
}

// bit extracts bit i of b in little-endian bit order.
func bit(b []byte, i int) fieldElement {
	return fieldElement(b[i/8]>>(i%8)) & 1
}
