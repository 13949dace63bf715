package linkstore

import (
	"io"
	"strconv"
	"strings"
)

const (
	arGlobalHeaderSize = 8
	arMemberHeaderSize = 60
)

// discoverLinkstoresArchive hand-parses a Unix ar archive (the format used
// for .a static libraries on ELF and Mach-O platforms, and for Windows
// import/static libraries too) and recurses into every member. There is no
// ar package in the standard library and none among this pack's
// dependencies, so this reader is hand-rolled directly off the format's
// fixed-width header layout.
func discoverLinkstoresArchive(dir directory, src io.ReaderAt, outerOffset uint64) error {
	total, err := sectionReaderLen(src)
	if err != nil {
		return err
	}

	pos := int64(arGlobalHeaderSize)
	any := false

	for pos+arMemberHeaderSize <= total {
		var hdr [arMemberHeaderSize]byte
		if _, err := io.ReadFull(io.NewSectionReader(src, pos, arMemberHeaderSize), hdr[:]); err != nil {
			return ErrUnexpectedEOF
		}

		sizeField := strings.TrimSpace(string(hdr[48:58]))
		size, convErr := strconv.ParseInt(sizeField, 10, 64)
		if convErr != nil {
			return ErrDecodingError
		}

		memberOffset := pos + arMemberHeaderSize
		name := strings.TrimRight(string(hdr[0:16]), " ")

		// "/" and "//" are the symbol table and extended-name table
		// respectively, not object files; everything else is a member worth
		// trying to recurse into.
		if name != "/" && name != "//" {
			err := discoverLinkstores(dir, src, memberOffset, size, outerOffset+uint64(memberOffset))
			switch err {
			case nil:
				any = true
			case ErrNoLinkstore, ErrUnrecognised:
				// Not every member carries a slot section, and the symbol
				// table members aren't object files at all; skip and keep
				// scanning the rest of the archive.
			default:
				return err
			}
		}

		pos = memberOffset + size
		if size%2 != 0 {
			pos++ // members are padded to an even boundary
		}
	}

	if !any {
		return ErrNoLinkstore
	}
	return nil
}

// sectionReaderLen recovers the total length of src when src is (as it
// always is in this package's call graph) an *io.SectionReader.
func sectionReaderLen(src io.ReaderAt) (int64, error) {
	if sr, ok := src.(*io.SectionReader); ok {
		return sr.Size(), nil
	}
	// Fall back to probing: binary-search-free linear fallback is
	// unnecessary here since every caller in this package passes a
	// SectionReader, but guard against misuse rather than panic.
	return 0, ErrObjectParse
}
