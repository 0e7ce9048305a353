// Package kem implements the ML-KEM key encapsulation mechanism of
// FIPS 203 (Algorithms 16-21) on top of the K-PKE primitive.
//
// The randomized entry points GenerateKeyPair and Encapsulate draw from
// utils.RandReader; their deterministic counterparts take the seeds
// explicitly and exist for reproducible keys and known-answer tests.
// All operations are pure and safe for concurrent use.
package kem

import (
	"fmt"

	mlkem "github.com/BackendStack21/ml-kem-go"
	"github.com/BackendStack21/ml-kem-go/core"
	"github.com/BackendStack21/ml-kem-go/pke"
	"github.com/BackendStack21/ml-kem-go/ring"
	"github.com/BackendStack21/ml-kem-go/utils"
)

// PublicKey is a validated encapsulation key. Instances are immutable and
// safe for concurrent use; obtain one from GenerateKeyPair or
// ParsePublicKey.
type PublicKey struct {
	params mlkem.Params
	ek     []byte   // Encode_12(t) || rho, 384k+32 bytes
	h      [32]byte // H(ek), bound into every derived secret
}

// PrivateKey is a validated decapsulation key. It embeds the K-PKE
// decryption key, the full encapsulation key, H(ek) and the
// implicit-rejection seed z, in that order.
type PrivateKey struct {
	params mlkem.Params
	dk     []byte // 768k+96 bytes
}

// KeyPair holds the two halves produced by key generation.
type KeyPair struct {
	PublicKey  PublicKey
	PrivateKey PrivateKey
}

// EncapsulationResult carries the outputs of an encapsulation: the 32-byte
// shared secret kept by the sender and the ciphertext for the key holder.
type EncapsulationResult struct {
	SharedSecret []byte
	Ciphertext   []byte
}

// Params returns the parameter set the key was generated under.
func (pk *PublicKey) Params() mlkem.Params {
	return pk.params
}

// Bytes returns a copy of the encoded encapsulation key.
func (pk *PublicKey) Bytes() []byte {
	return append([]byte{}, pk.ek...)
}

// Hash returns H(ek), the key hash mixed into every encapsulation.
func (pk *PublicKey) Hash() [32]byte {
	return pk.h
}

// Params returns the parameter set the key was generated under.
func (sk *PrivateKey) Params() mlkem.Params {
	return sk.params
}

// Bytes returns a copy of the encoded decapsulation key.
func (sk *PrivateKey) Bytes() []byte {
	return append([]byte{}, sk.dk...)
}

// PublicKey extracts the encapsulation key embedded in the decapsulation
// key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	k384 := 384 * sk.params.K
	pk := &PublicKey{
		params: sk.params,
		ek:     append([]byte{}, sk.dk[k384:2*k384+32]...),
	}
	copy(pk.h[:], sk.dk[2*k384+32:2*k384+64])
	return pk
}

// GenerateKeyPair generates an ML-KEM key pair for the given security
// level using the package entropy source.
func GenerateKeyPair(level mlkem.SecurityLevel) (*KeyPair, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}

	d, err := utils.SecureRandomBytes(mlkem.SeedSize)
	if err != nil {
		return nil, err
	}
	z, err := utils.SecureRandomBytes(mlkem.SeedSize)
	if err != nil {
		return nil, err
	}

	kp, err := GenerateKeyPairFromSeed(params, d, z)
	utils.Zeroize(d)
	utils.Zeroize(z)
	return kp, err
}

// GenerateKeyPairFromSeed derives a key pair from the 32-byte generation
// seed d and implicit-rejection seed z (Algorithm 16). The same seeds
// always produce the same pair.
func GenerateKeyPairFromSeed(params mlkem.Params, d, z []byte) (*KeyPair, error) {
	if err := core.ValidateParams(params); err != nil {
		return nil, err
	}
	if len(d) != mlkem.SeedSize {
		return nil, fmt.Errorf("%w: seed d is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(d), mlkem.SeedSize)
	}
	if len(z) != mlkem.SeedSize {
		return nil, fmt.Errorf("%w: seed z is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(z), mlkem.SeedSize)
	}

	ekPKE, dkPKE, err := pke.KeyGen(params, d)
	if err != nil {
		return nil, err
	}
	h := utils.H(ekPKE)

	// dk = dk_pke || ek || H(ek) || z
	dk := make([]byte, 0, params.PrivateKeySize())
	dk = append(dk, dkPKE...)
	dk = append(dk, ekPKE...)
	dk = append(dk, h[:]...)
	dk = append(dk, z...)
	utils.Zeroize(dkPKE)

	return &KeyPair{
		PublicKey:  PublicKey{params: params, ek: ekPKE, h: h},
		PrivateKey: PrivateKey{params: params, dk: dk},
	}, nil
}

// Encapsulate generates a fresh shared secret for the holder of pk and the
// ciphertext that transports it.
func Encapsulate(pk *PublicKey) (*EncapsulationResult, error) {
	m, err := utils.SecureRandomBytes(mlkem.MessageSize)
	if err != nil {
		return nil, err
	}
	result, err := EncapsulateDeterministic(pk, m)
	utils.Zeroize(m)
	return result, err
}

// EncapsulateDeterministic encapsulates with caller-supplied randomness m
// (Algorithm 17). The shared secret and ciphertext are a pure function of
// pk and m.
func EncapsulateDeterministic(pk *PublicKey, m []byte) (*EncapsulationResult, error) {
	if len(m) != mlkem.MessageSize {
		return nil, fmt.Errorf("%w: message is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(m), mlkem.MessageSize)
	}

	// (K, r) = G(m || H(ek)); K is the shared secret itself.
	shared, r := utils.G(m, pk.h[:])
	ct, err := pke.Encrypt(pk.params, pk.ek, m, r[:])
	utils.Zeroize(r[:])
	if err != nil {
		return nil, err
	}

	return &EncapsulationResult{
		SharedSecret: shared[:],
		Ciphertext:   ct,
	}, nil
}

// Decapsulate recovers the shared secret from a ciphertext (Algorithm 18).
// A well-formed but mismatched ciphertext does not produce an error: the
// Fujisaki-Okamoto transform substitutes the implicit-rejection secret
// J(z || ct), chosen in constant time.
func Decapsulate(sk *PrivateKey, ct []byte) ([]byte, error) {
	params := sk.params
	if len(ct) != params.CiphertextSize() {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(ct), params.CiphertextSize())
	}

	k384 := 384 * params.K
	dkPKE := sk.dk[:k384]
	ekPKE := sk.dk[k384 : 2*k384+32]
	h := sk.dk[2*k384+32 : 2*k384+64]
	z := sk.dk[2*k384+64:]

	m, err := pke.Decrypt(params, dkPKE, ct)
	if err != nil {
		return nil, err
	}
	kPrime, rPrime := utils.G(m, h)
	kBar := utils.J(z, ct)

	reEnc, err := pke.Encrypt(params, ekPKE, m, rPrime[:])
	utils.Zeroize(m)
	utils.Zeroize(rPrime[:])
	if err != nil {
		return nil, err
	}

	match := utils.ConstantTimeCompare(ct, reEnc)
	return utils.ConstantTimeSelect(match, kPrime[:], kBar[:]), nil
}

// ParsePublicKey validates an encoded encapsulation key and returns an
// immutable copy. Beyond the length check, every 12-bit coefficient must be
// canonical (the FIPS 203 section 7.2 modulus check); otherwise
// ErrInvalidEncoding is reported.
func ParsePublicKey(level mlkem.SecurityLevel, b []byte) (*PublicKey, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	if len(b) != params.PublicKeySize() {
		return nil, fmt.Errorf("%w: public key is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(b), params.PublicKeySize())
	}
	for i := 0; i < params.K; i++ {
		if _, err := ring.DecodeNTT(b[384*i : 384*(i+1)]); err != nil {
			return nil, err
		}
	}

	pk := &PublicKey{
		params: params,
		ek:     append([]byte{}, b...),
		h:      utils.H(b),
	}
	return pk, nil
}

// ParsePrivateKey validates an encoded decapsulation key and returns an
// immutable copy. Every 12-bit block of the secret vector and of the
// embedded encapsulation key must be canonical, and the embedded key hash
// must match its recomputed value (the FIPS 203 section 7.3 hash check).
// A key that parses never fails inside Decapsulate.
func ParsePrivateKey(level mlkem.SecurityLevel, b []byte) (*PrivateKey, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	if len(b) != params.PrivateKeySize() {
		return nil, fmt.Errorf("%w: private key is %d bytes, want %d",
			mlkem.ErrInvalidLength, len(b), params.PrivateKeySize())
	}
	for i := 0; i < 2*params.K; i++ {
		if _, err := ring.DecodeNTT(b[384*i : 384*(i+1)]); err != nil {
			return nil, err
		}
	}
	k384 := 384 * params.K
	h := utils.H(b[k384 : 2*k384+32])
	if !utils.ConstantTimeEqual(h[:], b[2*k384+32:2*k384+64]) {
		return nil, fmt.Errorf("%w: embedded key hash mismatch", mlkem.ErrInvalidEncoding)
	}

	return &PrivateKey{params: params, dk: append([]byte{}, b...)}, nil
}
