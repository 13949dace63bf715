package linkstore

import (
	"debug/elf"
	"io"
)

// elfNewFile is a thin wrapper over debug/elf.NewFile kept in its own
// function so object.go's dispatch reads uniformly with the other formats.
func elfNewFile(r io.ReaderAt) (*elf.File, error) {
	return elf.NewFile(r)
}

// discoverLinkstoresELF walks an ELF file's sections looking for the
// reserved slot section, grounded on the section-walking style of the
// teacher's own ELF writer (elf.go / elf_complete.go), read in reverse: where
// the teacher emits section headers, this reads them back.
func discoverLinkstoresELF(dir directory, src io.ReaderAt, f *elf.File, outerOffset uint64) error {
	is64 := f.Class == elf.ELFCLASS64
	littleEndian := f.Data == elf.ELFDATA2LSB

	found := false
	for _, sec := range f.Sections {
		if !isSlotSectionName(sec.Name) {
			continue
		}
		found = true
		if err := decodeSection(dir, src, sec.Offset, sec.Size, is64, littleEndian, outerOffset); err != nil {
			return err
		}
	}
	if !found {
		return ErrNoLinkstore
	}
	return nil
}
