package producer

import (
	"bytes"
	"encoding/binary"
)

const (
	imageFileMachineAMD64       = 0x8664
	imageScnCntInitializedData  = 0x00000040
	imageScnMemRead             = 0x40000000
	coffFileHeaderSize          = 20
	coffSectionHeaderSize       = 40
)

// buildCOFFObject emits a minimal bare COFF object file (no MZ/PE wrapper),
// the form a Windows linker expects for a standalone .obj: a file header, one
// section header, then the section's raw data. The section name ".lnkstre"
// is exactly 8 bytes, so it fits the fixed-width name field without needing
// the long-name string table.
func buildCOFFObject(directory []byte) ([]byte, error) {
	dataOff := uint32(coffFileHeaderSize + coffSectionHeaderSize)

	buf := new(bytes.Buffer)

	binary.Write(buf, binary.LittleEndian, uint16(imageFileMachineAMD64))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // NumberOfSections
	binary.Write(buf, binary.LittleEndian, uint32(0)) // TimeDateStamp
	binary.Write(buf, binary.LittleEndian, uint32(0)) // PointerToSymbolTable
	binary.Write(buf, binary.LittleEndian, uint32(0)) // NumberOfSymbols
	binary.Write(buf, binary.LittleEndian, uint16(0)) // SizeOfOptionalHeader
	binary.Write(buf, binary.LittleEndian, uint16(0)) // Characteristics

	var name [8]byte
	copy(name[:], ".lnkstre")
	buf.Write(name[:])
	binary.Write(buf, binary.LittleEndian, uint32(len(directory))) // VirtualSize
	binary.Write(buf, binary.LittleEndian, uint32(0))              // VirtualAddress
	binary.Write(buf, binary.LittleEndian, uint32(len(directory))) // SizeOfRawData
	binary.Write(buf, binary.LittleEndian, dataOff)                // PointerToRawData
	binary.Write(buf, binary.LittleEndian, uint32(0))              // PointerToRelocations
	binary.Write(buf, binary.LittleEndian, uint32(0))              // PointerToLinenumbers
	binary.Write(buf, binary.LittleEndian, uint16(0))              // NumberOfRelocations
	binary.Write(buf, binary.LittleEndian, uint16(0))              // NumberOfLinenumbers
	binary.Write(buf, binary.LittleEndian, uint32(imageScnCntInitializedData|imageScnMemRead))

	buf.Write(directory)

	return buf.Bytes(), nil
}
