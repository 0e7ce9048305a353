package ring

import (
	"fmt"

	mlkem "github.com/BackendStack21/ml-kem-go"
)

// EncodedSize returns the byte length of the d-bit encoding of one ring
// element: 32*d.
func EncodedSize(d int) int {
	return 32 * d
}

// pack appends the little-endian d-bit packing of the 256 coefficients
// to b. 256*d is always a multiple of 8, so the accumulator drains
// completely.
func pack[T ~[N]fieldElement](b []byte, f T, d int) []byte {
	var acc uint32
	accBits := 0
	for _, c := range f {
		acc |= uint32(c) << accBits
		accBits += d
		for accBits >= 8 {
			b = append(b, byte(acc))
			acc >>= 8
			accBits -= 8
		}
	}
	return b
}

// unpack reads 256 little-endian d-bit fields from b, masking each to
// d bits.
func unpack[T ~[N]fieldElement](b []byte, d int) T {
	var f T
	var acc uint32
	accBits := 0
	idx := 0
	mask := uint32(1)<<d - 1
	for i := range f {
		for accBits < d {
			acc |= uint32(b[idx]) << accBits
			idx++
			accBits += 8
		}
		f[i] = fieldElement(acc & mask)
		acc >>= d
		accBits -= d
	}
	return f
}

// Encode appends the canonical 384-byte (12-bit) encoding of f to b.
func (f NTTPoly) Encode(b []byte) []byte {
	return pack(b, f, 12)
}

// DecodeNTT parses the canonical 384-byte encoding of an NTT-domain
// element. Any 12-bit field at or above Q makes the encoding
// non-canonical and yields ErrInvalidEncoding; this is the modulus check
// required when importing keys. The scan accumulates a flag instead of
// branching per coefficient.
func DecodeNTT(b []byte) (NTTPoly, error) {
	if len(b) != EncodedSize(12) {
		return NTTPoly{}, fmt.Errorf("%w: element encoding is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(b), EncodedSize(12))
	}
	f := unpack[NTTPoly](b, 12)
	var invalid uint32
	for _, c := range f {
		invalid |= (Q - 1 - uint32(c)) >> 31
	}
	if invalid != 0 {
		return NTTPoly{}, mlkem.ErrInvalidEncoding
	}
	return f, nil
}

// CompressEncode compresses every coefficient to d bits and appends the
// 32*d-byte packing to b.
func (p Poly) CompressEncode(b []byte, d int) []byte {
	var c Poly
	for i, x := range p {
		c[i] = fieldElement(compress(x, d))
	}
	return pack(b, c, d)
}

// DecodeDecompress parses 32*d bytes of d-bit fields and decompresses
// each back into [0, Q). The input length is an internal contract, not a
// caller-facing validation.
func DecodeDecompress(b []byte, d int) Poly {
	if len(b) != EncodedSize(d) {
		panic("encoding length mismatch")
	}
	f := unpack[Poly](b, d)
	for i, y := range f {
		f[i] = decompress(uint16(y), d)
	}
	return f
}

// PolyFromMessage lifts a 32-byte message into the ring: bit i becomes
// coefficient i, decompressed from one bit to 0 or round(Q/2).
func PolyFromMessage(m []byte) Poly {
	if len(m) != 32 {
		panic("message must be 32 bytes")
	}
	var p Poly
	for i := range p {
		p[i] = decompress(uint16(m[i/8]>>(i%8))&1, 1)
	}
	return p
}

// ToMessage compresses every coefficient to a single bit and packs the
// 256 bits into 32 bytes.
func (p Poly) ToMessage() [32]byte {
	var m [32]byte
	for i, c := range p {
		m[i/8] |= byte(compress(c, 1)) << (i % 8)
	}
	return m
}
