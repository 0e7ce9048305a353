// Package utils provides the hash family and shared helpers for ML-KEM.
// The five symmetric primitives of FIPS 203 section 4.1 are all built on
// SHA-3: H and G are plain hashes, J and PRF are SHAKE256 with truncated
// output, and XOF is a SHAKE128 stream.
package utils

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

var shake256Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake256()
	},
}

// H computes SHA3-256 over the concatenation of the inputs. It hashes key
// encodings and ciphertexts.
func H(inputs ...[]byte) [32]byte {
	h := sha3.New256()
	for _, input := range inputs {
		h.Write(input)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// G computes SHA3-512 over the concatenation of the inputs and returns the
// two 32-byte halves. Key generation splits it into (rho, sigma),
// encapsulation into (K, r).
func G(inputs ...[]byte) (a, b [32]byte) {
	h := sha3.New512()
	for _, input := range inputs {
		h.Write(input)
	}
	sum := h.Sum(nil)
	copy(a[:], sum[:32])
	copy(b[:], sum[32:])
	return a, b
}

// J computes SHAKE256 over the concatenation of the inputs, truncated to
// 32 bytes. It derives the implicit-rejection secret from z and the
// ciphertext.
func J(inputs ...[]byte) [32]byte {
	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	for _, input := range inputs {
		h.Write(input)
	}
	var out [32]byte
	_, _ = h.Read(out[:])
	return out
}

// PRF fills dst with SHAKE256(s || b). Callers size dst as 64*eta bytes to
// feed the centered binomial sampler.
func PRF(dst []byte, s []byte, b byte) {
	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	h.Write(s)
	h.Write([]byte{b})
	_, _ = h.Read(dst)
}

// XOF returns the SHAKE128 stream seeded with rho || j || i that the
// uniform sampler draws matrix entry (i, j) from. The caller owns the
// returned state and reads it to exhaustion of the rejection loop.
func XOF(rho []byte, j, i byte) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{j, i})
	return h
}
