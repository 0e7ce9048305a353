package ring

import "testing"

func TestReduceOnce(t *testing.T) {
	for x := 0; x < 2*Q; x++ {
		got := reduceOnce(fieldElement(x))
		want := fieldElement(x % Q)
		if got != want {
			t.Fatalf("reduceOnce(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestFieldAdd(t *testing.T) {
	for a := 0; a < Q; a++ {
		for b := 0; b < Q; b++ {
			got := fieldAdd(fieldElement(a), fieldElement(b))
			want := fieldElement((a + b) % Q)
			if got != want {
				t.Fatalf("fieldAdd(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestFieldSub(t *testing.T) {
	for a := 0; a < Q; a++ {
		for b := 0; b < Q; b++ {
			got := fieldSub(fieldElement(a), fieldElement(b))
			want := fieldElement((a - b + Q) % Q)
			if got != want {
				t.Fatalf("fieldSub(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestFieldMul(t *testing.T) {
	for a := 0; a < Q; a++ {
		for b := 0; b < Q; b++ {
			got := fieldMul(fieldElement(a), fieldElement(b))
			want := fieldElement(uint32(a) * uint32(b) % Q)
			if got != want {
				t.Fatalf("fieldMul(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestCompress(t *testing.T) {
	for _, d := range []int{1, 4, 5, 10, 11} {
		for x := 0; x < Q; x++ {
			// round(x * 2^d / Q) mod 2^d with exact integer arithmetic.
			// Q is odd so the quotient is never exactly halfway.
			want := uint16((uint64(x)<<(d+1) + Q) / (2 * Q) % (1 << d))
			got := compress(fieldElement(x), d)
			if got != want {
				t.Fatalf("compress(%d, %d) = %d, want %d", x, d, got, want)
			}
		}
	}
}

func TestDecompress(t *testing.T) {
	for _, d := range []int{1, 4, 5, 10, 11} {
		for y := 0; y < 1<<d; y++ {
			// round(y * Q / 2^d), halves rounding up.
			want := fieldElement((uint32(y)*Q + 1<<(d-1)) >> d)
			got := decompress(uint16(y), d)
			if got != want {
				t.Fatalf("decompress(%d, %d) = %d, want %d", y, d, got, want)
			}
			if got >= Q {
				t.Fatalf("decompress(%d, %d) = %d out of range", y, d, got)
			}
		}
	}
}

func TestCompressDecompressBound(t *testing.T) {
	// Decompressing a compressed value must land within round(Q / 2^(d+1))
	// of the original, in centered distance.
	for _, d := range []int{4, 5, 10, 11} {
		bound := (Q + 1<<d) >> (d + 1)
		for x := 0; x < Q; x++ {
			y := decompress(compress(fieldElement(x), d), d)
			diff := int(y) - x
			if diff < 0 {
				diff = -diff
			}
			if diff > Q-diff {
				diff = Q - diff
			}
			if diff > bound {
				t.Fatalf("d=%d: |decompress(compress(%d)) - %d| = %d exceeds bound %d", d, x, x, diff, bound)
			}
		}
	}
}
