package utils

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"
)

// katSeed is a fixed 32-byte input with known digests under every member of
// the FIPS 203 hash family.
var katSeed = []byte("qjdhfyritoprlkdjfkrjfbdnzyhdjrtr")

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex in test vector: %v", err)
	}
	return b
}

func TestH(t *testing.T) {
	want := mustHex(t, "af791f788a6048e5f16b9ee9ef12add7a3fcdf2d615f79960c588bdc9824178f")
	got := H(katSeed)
	if !bytes.Equal(got[:], want) {
		t.Errorf("H mismatch:\n got %x\nwant %x", got, want)
	}

	// Concatenation must hash the same as a single joined input.
	joined := H(append(append([]byte{}, katSeed[:16]...), katSeed[16:]...))
	split := H(katSeed[:16], katSeed[16:])
	if joined != split {
		t.Error("H over split inputs differs from H over joined input")
	}
}

func TestG(t *testing.T) {
	wantA := mustHex(t, "132f6750e8aafeee8cff75bafdf1cae43307ac23878d5403990b33664bdec268")
	wantB := mustHex(t, "73fe4185b09c291388961a4420b40a44705538502490b755b27e88d723f85192")

	a, b := G(katSeed)
	if !bytes.Equal(a[:], wantA) {
		t.Errorf("G first half mismatch:\n got %x\nwant %x", a, wantA)
	}
	if !bytes.Equal(b[:], wantB) {
		t.Errorf("G second half mismatch:\n got %x\nwant %x", b, wantB)
	}
}

func TestJ(t *testing.T) {
	want := mustHex(t, "1ffbe9a12ca007f5e869838bd0ba33284554800575b87b1023bbfe41a7332b7a")
	got := J(katSeed)
	if !bytes.Equal(got[:], want) {
		t.Errorf("J mismatch:\n got %x\nwant %x", got, want)
	}

	// The pool must not bleed state between calls.
	again := J(katSeed)
	if got != again {
		t.Error("J not deterministic across pooled invocations")
	}
}

func TestPRF(t *testing.T) {
	want := mustHex(t, "eedb2631fdc3c6748dc567534e90eb016d087e6c088f3de6f815e854e6a78daf"+
		"4181a01d80f26c1f9d2816f95e2427b8e261cc45dc2a98f96a81db2235b0f4d0"+
		"2c4a6b2ad94e3444dc921fc0ed378bca86a9eec7179c45be3f6b9809a4770012"+
		"e7cd143872e45b7bf8f34e6819102d5a55f32a1f9d105a8b3dfe25af75d76f93")

	// eta = 2, nonce byte 'a'
	got := make([]byte, 128)
	PRF(got, katSeed, 'a')
	if !bytes.Equal(got, want) {
		t.Errorf("PRF mismatch:\n got %x\nwant %x", got, want)
	}

	// A 64*3-byte read must extend, not alter, the 64*2-byte stream.
	long := make([]byte, 192)
	PRF(long, katSeed, 'a')
	if !bytes.Equal(long[:128], want) {
		t.Error("PRF output is not a prefix-consistent stream")
	}
}

func TestXOF(t *testing.T) {
	rho := katSeed

	read := func(j, i byte) []byte {
		out := make([]byte, 64)
		if _, err := io.ReadFull(XOF(rho, j, i), out); err != nil {
			t.Fatalf("XOF read failed: %v", err)
		}
		return out
	}

	if !bytes.Equal(read(0, 1), read(0, 1)) {
		t.Error("XOF not deterministic")
	}
	// Swapping the index bytes must change the stream.
	if bytes.Equal(read(0, 1), read(1, 0)) {
		t.Error("XOF does not separate (j, i) from (i, j)")
	}
}

func TestConstantTime(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3}
	c := []byte{1, 2, 4}

	if !ConstantTimeEqual(a, b) {
		t.Error("ConstantTimeEqual failed for equal slices")
	}
	if ConstantTimeEqual(a, c) {
		t.Error("ConstantTimeEqual passed for unequal slices")
	}
	if ConstantTimeEqual(a, a[:2]) {
		t.Error("ConstantTimeEqual passed for different lengths")
	}

	if ConstantTimeCompare(a, b) != 1 {
		t.Error("ConstantTimeCompare(equal) != 1")
	}
	if ConstantTimeCompare(a, c) != 0 {
		t.Error("ConstantTimeCompare(unequal) != 0")
	}

	res := ConstantTimeSelect(1, a, c)
	if !bytes.Equal(res, a) {
		t.Error("ConstantTimeSelect(1) failed")
	}
	res = ConstantTimeSelect(0, a, c)
	if !bytes.Equal(res, c) {
		t.Error("ConstantTimeSelect(0) failed")
	}
}

func TestSecureRandomBytes(t *testing.T) {
	b, err := SecureRandomBytes(32)
	if err != nil {
		t.Fatalf("SecureRandomBytes failed: %v", err)
	}
	if len(b) != 32 {
		t.Errorf("Expected 32 bytes, got %d", len(b))
	}

	b2, _ := SecureRandomBytes(32)
	if bytes.Equal(b, b2) {
		t.Error("SecureRandomBytes returned duplicate values")
	}
}

func TestRandReaderSwap(t *testing.T) {
	orig := RandReader
	defer func() { RandReader = orig }()

	RandReader = bytes.NewReader(bytes.Repeat([]byte{0xAB}, 64))
	b, err := SecureRandomBytes(32)
	if err != nil {
		t.Fatalf("SecureRandomBytes with stub reader failed: %v", err)
	}
	if !bytes.Equal(b, bytes.Repeat([]byte{0xAB}, 32)) {
		t.Error("SecureRandomBytes did not draw from the swapped reader")
	}
}

func TestZeroize(t *testing.T) {
	b := []byte{1, 2, 3}
	Zeroize(b)
	for _, v := range b {
		if v != 0 {
			t.Error("Zeroize failed")
		}
	}
}
