package linkstore

import "strings"

// lossyUTF8 decodes b as UTF-8, substituting the Unicode replacement
// character for any invalid byte sequences, matching the original Rust
// implementation's String::from_utf8_lossy.
func lossyUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// slotSectionName is the reserved section name the producer emits and every
// format adapter searches for.
const slotSectionName = ".lnkstre"

// isSlotSectionName reports whether name identifies the reserved slot
// section. PE and COFF section-name fields are fixed-width and NUL-padded;
// ELF and Mach-O names are ordinary NUL-terminated strings that may in
// principle carry a longer name than the 8-byte field PE uses. The rule is
// uniformly "prefix match after right-trimming NULs" (§6), which subsumes
// PE/COFF's exact-match case with no behavioral change for a producer that
// only ever emits the name exactly.
func isSlotSectionName(name string) bool {
	name = strings.TrimRight(name, "\x00")
	return strings.HasPrefix(name, slotSectionName)
}
