package linkstore

import (
	"bytes"
	"testing"
)

// buildSection hand-assembles a slot-section byte buffer in the §6 layout,
// independent of the producer package, to exercise decodeSection in
// isolation.
func buildSection(t *testing.T, wordSize int, records ...struct {
	name    string
	payload []byte
	padding int
}) []byte {
	t.Helper()
	var buf bytes.Buffer
	putWord := func(v uint64) {
		b := make([]byte, wordSize)
		for i := 0; i < wordSize; i++ {
			b[i] = byte(v >> (8 * i))
		}
		buf.Write(b)
	}
	for _, r := range records {
		buf.WriteByte(linkstoreMagic)
		buf.WriteString(r.name)
		buf.WriteByte(0)
		putWord(uint64(len(r.payload)))
		putWord(uint64(r.padding))
		buf.Write(make([]byte, r.padding))
		buf.Write(r.payload)
	}
	return buf.Bytes()
}

func TestDecodeSectionSingleRecord(t *testing.T) {
	section := buildSection(t, 8, struct {
		name    string
		payload []byte
		padding int
	}{"build_id", []byte{1, 2, 3, 4}, 0})

	dir := make(directory)
	if err := decodeSection(dir, bytes.NewReader(section), 0, uint64(len(section)), true, true, 0); err != nil {
		t.Fatalf("decodeSection: %v", err)
	}
	group, ok := dir["build_id"]
	if !ok {
		t.Fatalf("slot %q not found", "build_id")
	}
	if got := group.first.currentBytes(); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("payload = %v, want [1 2 3 4]", got)
	}
}

func TestDecodeSectionMultipleRecordsWithPadding(t *testing.T) {
	type rec = struct {
		name    string
		payload []byte
		padding int
	}
	section := buildSection(t, 4,
		rec{"a", []byte{0xaa}, 3},
		rec{"b", []byte{0xbb, 0xbb}, 0},
	)

	dir := make(directory)
	if err := decodeSection(dir, bytes.NewReader(section), 0, uint64(len(section)), false, true, 0); err != nil {
		t.Fatalf("decodeSection: %v", err)
	}
	if len(dir) != 2 {
		t.Fatalf("len(dir) = %d, want 2", len(dir))
	}
	if got := dir["a"].first.currentBytes(); !bytes.Equal(got, []byte{0xaa}) {
		t.Fatalf("slot a payload = %v", got)
	}
	if got := dir["b"].first.currentBytes(); !bytes.Equal(got, []byte{0xbb, 0xbb}) {
		t.Fatalf("slot b payload = %v", got)
	}
}

func TestDecodeSectionRepeatedName(t *testing.T) {
	type rec = struct {
		name    string
		payload []byte
		padding int
	}
	section := buildSection(t, 8,
		rec{"tag", []byte{1}, 0},
		rec{"tag", []byte{2}, 0},
	)

	dir := make(directory)
	if err := decodeSection(dir, bytes.NewReader(section), 0, uint64(len(section)), true, true, 0); err != nil {
		t.Fatalf("decodeSection: %v", err)
	}
	slots := dir["tag"].slots()
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	if slots[0].bytes[0] != 1 || slots[1].bytes[0] != 2 {
		t.Fatalf("unexpected slot order/values: %v, %v", slots[0].bytes, slots[1].bytes)
	}
}

func TestDecodeSectionEmptyNameIsRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(linkstoreMagic)
	buf.WriteByte(0) // empty name, immediately terminated
	buf.Write(make([]byte, 16))

	dir := make(directory)
	err := decodeSection(dir, bytes.NewReader(buf.Bytes()), 0, uint64(buf.Len()), true, true, 0)
	if err != ErrNameDecodingError {
		t.Fatalf("err = %v, want ErrNameDecodingError", err)
	}
}

func TestDecodeSectionOuterOffset(t *testing.T) {
	section := buildSection(t, 8, struct {
		name    string
		payload []byte
		padding int
	}{"x", []byte{0x42}, 0})

	dir := make(directory)
	const outer = uint64(0x1000)
	if err := decodeSection(dir, bytes.NewReader(section), 0, uint64(len(section)), true, true, outer); err != nil {
		t.Fatalf("decodeSection: %v", err)
	}
	want := outer + 1 /*magic*/ + uint64(len("x")) + 1 /*NUL*/ + 16 /*two 8-byte words*/
	if dir["x"].first.absoluteOffset != want {
		t.Fatalf("absoluteOffset = %d, want %d", dir["x"].first.absoluteOffset, want)
	}
}
