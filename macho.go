package linkstore

import (
	"debug/macho"
	"encoding/binary"
	"io"
)

// discoverLinkstoresMachO walks a (non-fat) Mach-O file's sections looking
// for the reserved slot section, grounded on the load-command walking style
// of the teacher's own Mach-O writer (macho.go) read in reverse.
func discoverLinkstoresMachO(dir directory, src io.ReaderAt, f *macho.File, outerOffset uint64) error {
	is64 := f.Magic == macho.Magic64 || f.Magic == machoCigam64
	littleEndian := f.ByteOrder == binary.LittleEndian

	found := false
	for _, sec := range f.Sections {
		if !isSlotSectionName(sec.Name) {
			continue
		}
		found = true
		if err := decodeSection(dir, src, uint64(sec.Offset), sec.Size, is64, littleEndian, outerOffset); err != nil {
			return err
		}
	}
	if !found {
		return ErrNoLinkstore
	}
	return nil
}

// fatHeaderSize is the fat_header (magic, nfat_arch) and fatArchEntrySize
// describes the 32-bit fat_arch layout
// (cputype, cpusubtype, offset, size, align; all big-endian uint32), the
// only form debug/macho itself understands and the only one this package
// supports.
const (
	fatHeaderSize    = 8
	fatArchEntrySize = 20
)

// discoverLinkstoresFatMachO manually parses a universal ("fat") Mach-O
// envelope so that an arch slice can recurse into either a plain Mach-O or,
// per §4.3, an archive — something debug/macho.NewFatFile alone can't do,
// since it insists every arch parse as Mach-O.
func discoverLinkstoresFatMachO(dir directory, src io.ReaderAt, outerOffset uint64) error {
	var hdr [fatHeaderSize]byte
	if _, err := io.ReadFull(io.NewSectionReader(src, 0, fatHeaderSize), hdr[:]); err != nil {
		return ErrUnexpectedEOF
	}
	nArch := binary.BigEndian.Uint32(hdr[4:8])

	any := false
	for i := uint32(0); i < nArch; i++ {
		entryOff := int64(fatHeaderSize) + int64(i)*fatArchEntrySize
		var entry [fatArchEntrySize]byte
		if _, err := io.ReadFull(io.NewSectionReader(src, entryOff, fatArchEntrySize), entry[:]); err != nil {
			return ErrUnexpectedEOF
		}
		archOffset := int64(binary.BigEndian.Uint32(entry[8:12]))
		archSize := int64(binary.BigEndian.Uint32(entry[12:16]))

		err := discoverLinkstores(dir, src, archOffset, archSize, outerOffset+uint64(archOffset))
		switch err {
		case nil:
			any = true
		case ErrNoLinkstore:
			// This arch is a recognised format but carries no slot section;
			// keep checking the remaining arches.
		default:
			return err
		}
	}
	if !any {
		return ErrNoLinkstore
	}
	return nil
}
