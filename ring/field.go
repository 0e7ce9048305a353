package ring

const (
	// N is the number of coefficients in a ring element.
	N = 256
	// Q is the ML-KEM modulus.
	Q = 3329

	// barrettMultiplier = floor(2^barrettShift / Q), used to estimate
	// division by Q for inputs below 2^24.
	barrettMultiplier = 5039
	barrettShift      = 24
)

// fieldElement is an integer modulo Q, kept in [0, Q). All arithmetic on
// field elements is branch-free: reductions use masked conditional
// subtraction and Barrett quotient estimation, never a comparison on the
// operand values.
type fieldElement uint16

// reduceOnce brings x from [0, 2Q) into [0, Q).
func reduceOnce(x fieldElement) fieldElement {
	t := x - Q
	// The subtraction underflowed exactly when x < Q; the sign bit then
	// selects adding Q back.
	t += (t >> 15) * Q
	return t
}

func fieldAdd(a, b fieldElement) fieldElement {
	return reduceOnce(a + b)
}

func fieldSub(a, b fieldElement) fieldElement {
	return reduceOnce(a - b + Q)
}

// barrettReduce reduces any x below 2^24 modulo Q. The estimated quotient
// is off by at most one, which reduceOnce absorbs.
func barrettReduce(x uint32) fieldElement {
	quotient := uint32((uint64(x) * barrettMultiplier) >> barrettShift)
	return reduceOnce(fieldElement(x - quotient*Q))
}

func fieldMul(a, b fieldElement) fieldElement {
	return barrettReduce(uint32(a) * uint32(b))
}

// compress maps x to round(x * 2^d / Q) mod 2^d. Since Q is odd the
// quotient is never exactly halfway, so rounding direction cannot leak.
// The remainder classification is branch-free: one bump past Q/2 and a
// second past Q + Q/2 covers the Barrett estimate being one short.
func compress(x fieldElement, d int) uint16 {
	dividend := uint32(x) << d
	quotient := uint32((uint64(dividend) * barrettMultiplier) >> barrettShift)
	remainder := dividend - quotient*Q
	quotient += (Q/2 - remainder) >> 31 & 1
	quotient += (Q + Q/2 - remainder) >> 31 & 1
	return uint16(quotient) & (1<<d - 1)
}

// decompress maps a d-bit value y to round(y * Q / 2^d), the coarse
// approximation of the field element it came from. Halfway values round
// up: the last bit shifted out decides.
func decompress(y uint16, d int) fieldElement {
	dividend := uint32(y) * Q
	quotient := dividend >> d
	quotient += dividend >> (d - 1) & 1
	return fieldElement(quotient)
}
