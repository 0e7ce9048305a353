// Package pke implements K-PKE, the CPA-secure public-key encryption
// scheme inside ML-KEM (FIPS 203, section 5). Every operation is a pure
// function of its byte inputs; the kem package relies on that determinism
// when it re-encrypts during implicit rejection.
//
// K-PKE is not a standalone cipher. Its keys and ciphertexts only appear
// wrapped by the kem package, which adds the Fujisaki-Okamoto transform.
package pke

import (
	"fmt"

	mlkem "github.com/BackendStack21/ml-kem-go"
	"github.com/BackendStack21/ml-kem-go/ring"
	"github.com/BackendStack21/ml-kem-go/utils"
)

// EncryptionKeySize returns the byte length of a K-PKE encryption key:
// 384k + 32. It coincides with the KEM public key size.
func EncryptionKeySize(params mlkem.Params) int {
	return 384*params.K + 32
}

// DecryptionKeySize returns the byte length of a K-PKE decryption key:
// 384k.
func DecryptionKeySize(params mlkem.Params) int {
	return 384 * params.K
}

// expandMatrix regenerates the k x k public matrix from rho, row-major.
// Entry (i, j) is sampled from its own XOF stream seeded with the column
// byte before the row byte, so the matrix is never serialized and both
// sides derive it identically.
func expandMatrix(rho []byte, k int) []ring.NTTPoly {
	a := make([]ring.NTTPoly, k*k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			a[i*k+j] = ring.SampleNTT(utils.XOF(rho, byte(j), byte(i)))
		}
	}
	return a
}

// sampleVector draws count CBD polynomials from PRF(seed, nonce),
// advancing the nonce once per polynomial, and returns the next nonce.
func sampleVector(seed []byte, nonce byte, count, eta int) ([]ring.Poly, byte) {
	buf := make([]byte, 64*eta)
	v := make([]ring.Poly, count)
	for i := range v {
		utils.PRF(buf, seed, nonce)
		nonce++
		v[i] = ring.SamplePolyCBD(buf, eta)
	}
	utils.Zeroize(buf)
	return v, nonce
}

// KeyGen derives an encryption/decryption key pair from the 32-byte seed d
// (Algorithm 13). The matrix seed rho is public and rides along in ek;
// everything derived from the second half of G stays secret.
func KeyGen(params mlkem.Params, d []byte) (ek, dk []byte, err error) {
	if len(d) != mlkem.SeedSize {
		return nil, nil, fmt.Errorf("%w: seed is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(d), mlkem.SeedSize)
	}
	k := params.K

	rho, sigma := utils.G(d, []byte{byte(k)})
	a := expandMatrix(rho[:], k)

	s, nonce := sampleVector(sigma[:], 0, k, params.Eta1)
	e, _ := sampleVector(sigma[:], nonce, k, params.Eta1)
	utils.Zeroize(sigma[:])

	sHat := make([]ring.NTTPoly, k)
	for i := range s {
		sHat[i] = s[i].NTT()
	}

	// t = A*s + e, accumulated entirely in the NTT domain.
	ek = make([]byte, 0, EncryptionKeySize(params))
	for i := 0; i < k; i++ {
		t := e[i].NTT()
		for j := 0; j < k; j++ {
			t = t.Add(a[i*k+j].Mul(sHat[j]))
		}
		ek = t.Encode(ek)
	}
	ek = append(ek, rho[:]...)

	dk = make([]byte, 0, DecryptionKeySize(params))
	for i := range sHat {
		dk = sHat[i].Encode(dk)
	}
	return ek, dk, nil
}

// Encrypt encrypts the 32-byte message m under ek with the 32-byte
// randomness r (Algorithm 14).
func Encrypt(params mlkem.Params, ek, m, r []byte) ([]byte, error) {
	k := params.K
	if len(ek) != EncryptionKeySize(params) {
		return nil, fmt.Errorf("%w: encryption key is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(ek), EncryptionKeySize(params))
	}
	if len(m) != mlkem.MessageSize {
		return nil, fmt.Errorf("%w: message is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(m), mlkem.MessageSize)
	}
	if len(r) != mlkem.SeedSize {
		return nil, fmt.Errorf("%w: randomness is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(r), mlkem.SeedSize)
	}

	tHat := make([]ring.NTTPoly, k)
	for i := range tHat {
		var err error
		if tHat[i], err = ring.DecodeNTT(ek[384*i : 384*(i+1)]); err != nil {
			return nil, err
		}
	}
	rho := ek[384*k:]
	a := expandMatrix(rho, k)

	y, nonce := sampleVector(r, 0, k, params.Eta1)
	e1, nonce := sampleVector(r, nonce, k, params.Eta2)
	e2Buf := make([]byte, 64*params.Eta2)
	utils.PRF(e2Buf, r, nonce)
	e2 := ring.SamplePolyCBD(e2Buf, params.Eta2)
	utils.Zeroize(e2Buf)

	yHat := make([]ring.NTTPoly, k)
	for i := range y {
		yHat[i] = y[i].NTT()
	}

	c := make([]byte, 0, params.CiphertextSize())

	// u = InvNTT(A^T * y) + e1, compressed to du bits per coefficient.
	for i := 0; i < k; i++ {
		var acc ring.NTTPoly
		for j := 0; j < k; j++ {
			acc = acc.Add(a[j*k+i].Mul(yHat[j]))
		}
		u := acc.InvNTT().Add(e1[i])
		c = u.CompressEncode(c, params.Du)
	}

	// v = InvNTT(t^T * y) + e2 + Decompress_1(m), compressed to dv bits.
	var acc ring.NTTPoly
	for i := 0; i < k; i++ {
		acc = acc.Add(tHat[i].Mul(yHat[i]))
	}
	v := acc.InvNTT().Add(e2).Add(ring.PolyFromMessage(m))
	c = v.CompressEncode(c, params.Dv)

	return c, nil
}

// Decrypt recovers the 32-byte message from a ciphertext (Algorithm 15).
// Well-sized inputs cannot fail: decrypting under the wrong key yields an
// unrelated message, which the kem package detects by re-encrypting.
func Decrypt(params mlkem.Params, dk, c []byte) ([]byte, error) {
	k := params.K
	if len(dk) != DecryptionKeySize(params) {
		return nil, fmt.Errorf("%w: decryption key is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(dk), DecryptionKeySize(params))
	}
	if len(c) != params.CiphertextSize() {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(c), params.CiphertextSize())
	}

	du, dv := params.Du, params.Dv
	uBytes := ring.EncodedSize(du)

	// w = v' - InvNTT(s^T * NTT(u'))
	var wHat ring.NTTPoly
	for i := 0; i < k; i++ {
		sHat, err := ring.DecodeNTT(dk[384*i : 384*(i+1)])
		if err != nil {
			return nil, err
		}
		u := ring.DecodeDecompress(c[uBytes*i:uBytes*(i+1)], du)
		wHat = wHat.Add(sHat.Mul(u.NTT()))
	}

	v := ring.DecodeDecompress(c[uBytes*k:], dv)
	m := v.Sub(wHat.InvNTT()).ToMessage()
	return m[:], nil
}
