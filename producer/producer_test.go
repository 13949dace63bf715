package producer

import (
	"bytes"
	"testing"
)

func TestBuildObjectRejectsSizeMismatch(t *testing.T) {
	slots := []Slot{{Name: "x", Size: 4, Align: 4, InitialValue: []byte{1, 2, 3}}}
	if _, err := BuildObject(ELFLinuxAMD64, slots); err == nil {
		t.Fatalf("expected error for mismatched InitialValue length")
	}
}

func TestBuildObjectRejectsZeroAlign(t *testing.T) {
	slots := []Slot{{Name: "x", Size: 1, Align: 0, InitialValue: []byte{1}}}
	if _, err := BuildObject(ELFLinuxAMD64, slots); err == nil {
		t.Fatalf("expected error for zero align")
	}
}

func TestAllTargetsProduceNonEmptyObjects(t *testing.T) {
	slots := []Slot{{Name: "seed", Size: 4, Align: 4, InitialValue: []byte{9, 9, 9, 9}}}
	for _, target := range []Target{ELFLinuxAMD64, ELFLinuxARM64, COFFWindowsAMD64, MachODarwinAMD64, MachODarwinARM64} {
		obj, err := BuildObject(target, slots)
		if err != nil {
			t.Fatalf("BuildObject(%v): %v", target, err)
		}
		if len(obj) == 0 {
			t.Fatalf("BuildObject(%v) returned empty object", target)
		}
	}
}

func TestEncodeDirectoryContainsMagicAndName(t *testing.T) {
	slots := []Slot{{Name: "hello", Size: 2, Align: 2, InitialValue: []byte{0xAB, 0xCD}}}
	dir := encodeDirectory(slots, 8)
	if dir[0] != linkstoreMagic {
		t.Fatalf("first byte = %#x, want magic %#x", dir[0], byte(linkstoreMagic))
	}
	if !bytes.Contains(dir, []byte("hello\x00")) {
		t.Fatalf("directory does not contain NUL-terminated name %q", "hello")
	}
}
