package linkstore_test

import (
	"testing"

	"github.com/xyproto/linkstore"
	"github.com/xyproto/linkstore/producer"
)

// TestArrayRoundTrip exercises base spec scenario S2: a [u8;4]-shaped slot,
// embedding a new value and reading it back after Finish().
func TestArrayRoundTrip(t *testing.T) {
	slots := []producer.Slot{
		{Name: "LS_BYTES", Size: 4, Align: 1, InitialValue: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}
	obj, err := producer.BuildObject(producer.ELFLinuxAMD64, slots)
	if err != nil {
		t.Fatalf("BuildObject: %v", err)
	}

	e, err := linkstore.NewMemoryEmbedder(obj)
	if err != nil {
		t.Fatalf("NewMemoryEmbedder: %v", err)
	}
	defer e.Close()

	got, err := linkstore.ReadArray[uint8](e, "LS_BYTES", 4)
	if err != nil {
		t.Fatalf("ReadArray: %v", err)
	}
	want := []uint8{0xDE, 0xAD, 0xBE, 0xEF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %#x, want %#x", i, got[i], want[i])
		}
	}

	if err := linkstore.EmbedArray(e, "LS_BYTES", []uint8{1, 2, 3, 4}); err != nil {
		t.Fatalf("EmbedArray: %v", err)
	}
	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	patched, _ := e.Bytes()
	e2, err := linkstore.NewMemoryEmbedder(patched)
	if err != nil {
		t.Fatalf("NewMemoryEmbedder on patched bytes: %v", err)
	}
	defer e2.Close()
	if got, err = linkstore.ReadArray[uint8](e2, "LS_BYTES", 4); err != nil {
		t.Fatalf("ReadArray after Finish: %v", err)
	}
	for i, w := range []uint8{1, 2, 3, 4} {
		if got[i] != w {
			t.Fatalf("element %d after Finish = %#x, want %#x", i, got[i], w)
		}
	}
}

// TestMemoryEmbedderBytesRoundTrip exercises Bytes(): patch an in-memory
// binary, recover the patched bytes, and re-open them as a fresh Embedder to
// confirm the write actually landed.
func TestMemoryEmbedderBytesRoundTrip(t *testing.T) {
	slots := []producer.Slot{
		{Name: "build_number", Size: 4, Align: 4, InitialValue: []byte{0, 0, 0, 0}},
	}
	obj, err := producer.BuildObject(producer.ELFLinuxAMD64, slots)
	if err != nil {
		t.Fatalf("BuildObject: %v", err)
	}

	e, err := linkstore.NewMemoryEmbedder(obj)
	if err != nil {
		t.Fatalf("NewMemoryEmbedder: %v", err)
	}
	if err := linkstore.Embed(e, "build_number", uint32(7)); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	patched, ok := e.Bytes()
	if !ok {
		t.Fatalf("Bytes() returned ok=false for a memory-backed Embedder")
	}
	if len(patched) != len(obj) {
		t.Fatalf("patched length %d, want %d (slots never grow or shrink the file)", len(patched), len(obj))
	}

	e2, err := linkstore.NewMemoryEmbedder(patched)
	if err != nil {
		t.Fatalf("NewMemoryEmbedder on patched bytes: %v", err)
	}
	defer e2.Close()

	v := linkstore.Read[uint32](e2, "build_number")
	if err := v.Err(); err != nil {
		t.Fatalf("Read build_number: %v", err)
	}
	if got := v.Slice(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("build_number = %v, want [7]", got)
	}
}

// TestTryReadMissingNameReturnsNil exercises base spec scenario S5's TryRead
// counterpart: a name absent from the directory is (nil, nil), not an error.
func TestTryReadMissingNameReturnsNil(t *testing.T) {
	slots := []producer.Slot{
		{Name: "present", Size: 1, Align: 1, InitialValue: []byte{1}},
	}
	obj, err := producer.BuildObject(producer.ELFLinuxAMD64, slots)
	if err != nil {
		t.Fatalf("BuildObject: %v", err)
	}
	e, err := linkstore.NewMemoryEmbedder(obj)
	if err != nil {
		t.Fatalf("NewMemoryEmbedder: %v", err)
	}
	defer e.Close()

	v, err := linkstore.TryRead[uint8](e, "NONEXISTENT")
	if err != nil {
		t.Fatalf("TryRead: %v", err)
	}
	if v != nil {
		t.Fatalf("TryRead on a missing name = %v, want nil", v)
	}
}

// TestUint128EmbedRoundTrip exercises base spec scenario S3 end to end
// through the producer/consumer pair, not just the codec in isolation.
func TestUint128EmbedRoundTrip(t *testing.T) {
	slots := []producer.Slot{
		{Name: "LS_BIG", Size: 16, Align: 16, InitialValue: make([]byte, 16)},
	}
	obj, err := producer.BuildObject(producer.ELFLinuxAMD64, slots)
	if err != nil {
		t.Fatalf("BuildObject: %v", err)
	}

	e, err := linkstore.NewMemoryEmbedder(obj)
	if err != nil {
		t.Fatalf("NewMemoryEmbedder: %v", err)
	}

	want := linkstore.Uint128{Lo: 0xFFFFFFFFFFFFFFFF, Hi: 0x7FFFFFFFFFFFFFFF} // u128::MAX/2
	if err := linkstore.Embed(e, "LS_BIG", want); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if err := e.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	patched, ok := e.Bytes()
	if !ok {
		t.Fatalf("Bytes() returned ok=false")
	}

	e2, err := linkstore.NewMemoryEmbedder(patched)
	if err != nil {
		t.Fatalf("NewMemoryEmbedder on patched bytes: %v", err)
	}
	defer e2.Close()

	v := linkstore.Read[linkstore.Uint128](e2, "LS_BIG")
	if err := v.Err(); err != nil {
		t.Fatalf("Read LS_BIG: %v", err)
	}
	got := v.Slice()
	if len(got) != 1 || got[0] != want {
		t.Fatalf("LS_BIG = %+v, want %+v", got, want)
	}
}
