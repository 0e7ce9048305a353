package mlkem

import "errors"

// SecurityLevel selects one of the three standardized ML-KEM parameter sets.
type SecurityLevel string

const (
	// MLKEM512 targets NIST security category 1 (comparable to AES-128).
	MLKEM512 SecurityLevel = "ML-KEM-512"
	// MLKEM768 targets NIST security category 3 (comparable to AES-192).
	MLKEM768 SecurityLevel = "ML-KEM-768"
	// MLKEM1024 targets NIST security category 5 (comparable to AES-256).
	MLKEM1024 SecurityLevel = "ML-KEM-1024"
)

// =============================================================================
// Byte Sizes
// =============================================================================

// Sizes shared by every parameter set. All remaining sizes depend on the
// module rank k and are exposed as methods on Params.
const (
	// SeedSize is the length of each key-generation seed (d and z).
	SeedSize = 32
	// MessageSize is the length of the encapsulation randomness m.
	MessageSize = 32
	// SharedSecretSize is the length of the derived shared secret.
	SharedSecretSize = 32
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrInvalidLength reports a byte input whose length does not match the
	// parameter set in use.
	ErrInvalidLength = errors.New("invalid input length")
	// ErrInvalidParameterSet reports a security level outside the three
	// standardized ones, or a Params value with out-of-range constants.
	ErrInvalidParameterSet = errors.New("invalid parameter set")
	// ErrInvalidEncoding reports a key encoding that is not canonical: a
	// 12-bit coefficient field at or above the modulus, or a decapsulation
	// key whose embedded hash does not match its encapsulation key.
	ErrInvalidEncoding = errors.New("invalid polynomial encoding")
)

// =============================================================================
// Parameter Types
// =============================================================================

// Params contains the complete parameter set for a security level
// (FIPS 203, Table 2). The ring constants n = 256 and q = 3329 are shared
// by all sets and live in the ring package.
type Params struct {
	Level SecurityLevel `json:"level"`
	K     int           `json:"k"`    // Module rank: number of ring elements per vector
	Eta1  int           `json:"eta1"` // Centered binomial width for secrets
	Eta2  int           `json:"eta2"` // Centered binomial width for ciphertext noise
	Du    int           `json:"du"`   // Compression bits for the ciphertext vector u
	Dv    int           `json:"dv"`   // Compression bits for the ciphertext element v
}

// PublicKeySize returns the byte length of an encapsulation key: 384k + 32.
func (p Params) PublicKeySize() int {
	return 384*p.K + 32
}

// PrivateKeySize returns the byte length of a decapsulation key: 768k + 96.
func (p Params) PrivateKeySize() int {
	return 768*p.K + 96
}

// CiphertextSize returns the byte length of a ciphertext: 32(du*k + dv).
func (p Params) CiphertextSize() int {
	return 32 * (p.Du*p.K + p.Dv)
}
