package linkstore

import (
	"debug/pe"
	"io"
)

// discoverLinkstoresCOFF handles a bare COFF object file (no MZ/PE wrapper),
// the form object files take inside a Windows static-library archive member.
// debug/pe.NewFile already accepts these directly; bitness here cannot be
// read off an optional header since bare objects don't have one, so it comes
// from the IMAGE_FILE_32BIT_MACHINE bit in the COFF file header instead, per
// §4.3's locator table.
func discoverLinkstoresCOFF(dir directory, src io.ReaderAt, f *pe.File, outerOffset uint64) error {
	const imageFile32BitMachine = 0x0100
	is64 := f.FileHeader.Characteristics&imageFile32BitMachine == 0

	found := false
	for _, sec := range f.Sections {
		if !isSlotSectionName(sec.Name) {
			continue
		}
		found = true
		offset := uint64(sec.Offset)
		size := uint64(sec.VirtualSize)
		if err := decodeSection(dir, src, offset, size, is64, true, outerOffset); err != nil {
			return err
		}
	}
	if !found {
		return ErrNoLinkstore
	}
	return nil
}
