package linkstore

import (
	"debug/pe"
	"io"
)

// discoverLinkstoresPE walks a PE image's sections looking for the reserved
// slot section. PE/COFF section headers are fixed-width (40 bytes, 8-byte
// NUL-padded names), matching the teacher's own PE writer (pe.go) in
// reverse: where it builds IMAGE_SECTION_HEADER entries, this reads them.
//
// Per §6 the slot section's declared size is read from virtual_size rather
// than size_of_raw_data: the producer pads the section's raw data to a file
// alignment boundary, so virtual_size is the only field that names the
// directory's true extent.
func discoverLinkstoresPE(dir directory, src io.ReaderAt, f *pe.File, outerOffset uint64) error {
	is64 := false
	if _, ok := f.OptionalHeader.(*pe.OptionalHeader64); ok {
		is64 = true
	}

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
