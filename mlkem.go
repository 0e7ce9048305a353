// Package mlkem implements the ML-KEM post-quantum key-encapsulation
// mechanism standardized in NIST FIPS 203 (the final form of
// CRYSTALS-Kyber). The module-lattice construction wraps a CPA-secure
// public-key encryption scheme (K-PKE) in the Fujisaki-Okamoto transform
// with implicit rejection, yielding an IND-CCA2 secure KEM at three
// security levels: ML-KEM-512, ML-KEM-768 and ML-KEM-1024.
package mlkem

// Re-export commonly used functions through package-level wrappers.
// Users can also import specific sub-packages directly for more control.

// Version of the ML-KEM Go implementation.
const Version = "1.0.0"

// API summary:
//
// Key Encapsulation (KEM):
//   - kem.GenerateKeyPair(level) - Generate a key pair for the given security level
//   - kem.Encapsulate(pk) - Generate shared secret and ciphertext
//   - kem.Decapsulate(sk, ct) - Recover shared secret from ciphertext
//   - kem.ParsePublicKey(level, b) - Validate and import an encapsulation key
//   - kem.ParsePrivateKey(level, b) - Validate and import a decapsulation key
//
// Parameters:
//   - core.GetParams(level) - Get parameters for security level
//   - MLKEM512 - NIST security category 1
//   - MLKEM768 - NIST security category 3
//   - MLKEM1024 - NIST security category 5
