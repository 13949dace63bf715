package linkstore

import (
	"math/big"
	"testing"
)

func TestDecodeScalarRoundTrip(t *testing.T) {
	cases := []struct {
		name         string
		littleEndian bool
	}{
		{"little", true},
		{"big", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded := encodeScalar(uint32(0xdeadbeef), c.littleEndian)
			got, err := decodeScalar[uint32](encoded, c.littleEndian)
			if err != nil {
				t.Fatalf("decodeScalar: %v", err)
			}
			if got != 0xdeadbeef {
				t.Fatalf("got %#x, want %#x", got, uint32(0xdeadbeef))
			}
		})
	}
}

func TestDecodeScalarBool(t *testing.T) {
	encoded := encodeScalar(true, true)
	got, err := decodeScalar[bool](encoded, true)
	if err != nil {
		t.Fatalf("decodeScalar: %v", err)
	}
	if !got {
		t.Fatalf("got false, want true")
	}
}

func TestSizeOf(t *testing.T) {
	if sizeOf[uint64]() != 8 {
		t.Fatalf("sizeOf[uint64]() = %d, want 8", sizeOf[uint64]())
	}
	if sizeOf[int8]() != 1 {
		t.Fatalf("sizeOf[int8]() = %d, want 1", sizeOf[int8]())
	}
}

func TestEncodeDecodeArray(t *testing.T) {
	want := []uint16{1, 2, 3, 4}
	encoded := encodeArray(want, true)
	got, err := decodeArray[uint16](encoded, true, len(want))
	if err != nil {
		t.Fatalf("decodeArray: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

// TestUint128RoundTrip exercises base spec scenario S3: embedding
// u128::MAX/2 into a 16-byte slot and reading it back.
func TestUint128RoundTrip(t *testing.T) {
	maxU128 := new(big.Int).Lsh(big.NewInt(1), 128)
	maxU128.Sub(maxU128, big.NewInt(1))
	half := new(big.Int).Rsh(maxU128, 1)

	for _, le := range []bool{true, false} {
		v := Uint128FromBig(half)
		encoded := encodeScalar(v, le)
		if len(encoded) != 16 {
			t.Fatalf("encoded length = %d, want 16", len(encoded))
		}
		got, err := decodeScalar[Uint128](encoded, le)
		if err != nil {
			t.Fatalf("decodeScalar: %v", err)
		}
		if got.Big().Cmp(half) != 0 {
			t.Fatalf("got %s, want %s", got.Big(), half)
		}
	}
}

func TestInt128RoundTripNegative(t *testing.T) {
	want := big.NewInt(-12345678901234)
	for _, le := range []bool{true, false} {
		v := Int128FromBig(want)
		encoded := encodeScalar(v, le)
		got, err := decodeScalar[Int128](encoded, le)
		if err != nil {
			t.Fatalf("decodeScalar: %v", err)
		}
		if got.Big().Cmp(want) != 0 {
			t.Fatalf("got %s, want %s", got.Big(), want)
		}
	}
}

func TestDecodeArrayRejectsMismatchedLength(t *testing.T) {
	encoded := encodeArray([]uint32{1, 2, 3}, true)
	if _, err := decodeArray[uint32](encoded, true, 4); err == nil {
		t.Fatalf("expected error decoding with wrong element count")
	}
}
