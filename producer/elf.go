package producer

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// buildELFObject emits a minimal ET_REL ELF64 object with exactly one
// PROGBITS section named .lnkstre holding directory. Laid out in the
// teacher's own writing order (elf.go/elf_complete.go): identification,
// header, section data, section name string table, section header table.
func buildELFObject(target Target, directory []byte) ([]byte, error) {
	machine := elf.EM_X86_64
	if target == ELFLinuxARM64 {
		machine = elf.EM_AARCH64
	}

	const ehdrSize = 64
	const shdrSize = 64

	shstrtab := []byte("\x00.lnkstre\x00.shstrtab\x00")
	lnkstreNameOff := uint32(1)
	shstrtabNameOff := uint32(1 + len(".lnkstre") + 1)

	dataOff := uint64(ehdrSize)
	shstrtabOff := dataOff + uint64(len(directory))
	shoff := shstrtabOff + uint64(len(shstrtab))
	// 8-byte align the section header table.
	if pad := shoff % 8; pad != 0 {
		shoff += 8 - pad
	}

	buf := new(bytes.Buffer)

	ident := [16]byte{0x7f, 'E', 'L', 'F', byte(elf.ELFCLASS64), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT)}
	buf.Write(ident[:])
	binary.Write(buf, binary.LittleEndian, uint16(elf.ET_REL))
	binary.Write(buf, binary.LittleEndian, uint16(machine))
	binary.Write(buf, binary.LittleEndian, uint32(elf.EV_CURRENT))
	binary.Write(buf, binary.LittleEndian, uint64(0)) // e_entry
	binary.Write(buf, binary.LittleEndian, uint64(0)) // e_phoff
	binary.Write(buf, binary.LittleEndian, shoff)     // e_shoff
	binary.Write(buf, binary.LittleEndian, uint32(0))
	binary.Write(buf, binary.LittleEndian, uint16(ehdrSize))
	binary.Write(buf, binary.LittleEndian, uint16(0)) // e_phentsize
	binary.Write(buf, binary.LittleEndian, uint16(0)) // e_phnum
	binary.Write(buf, binary.LittleEndian, uint16(shdrSize))
	binary.Write(buf, binary.LittleEndian, uint16(3)) // e_shnum: NULL, .lnkstre, .shstrtab
	binary.Write(buf, binary.LittleEndian, uint16(2)) // e_shstrndx

	buf.Write(directory)
	buf.Write(shstrtab)
	for int64(buf.Len()) < int64(shoff) {
		buf.WriteByte(0)
	}

	writeShdr := func(name uint32, typ elf.SectionType, offset, size uint64) {
		binary.Write(buf, binary.LittleEndian, name)
		binary.Write(buf, binary.LittleEndian, uint32(typ))
		binary.Write(buf, binary.LittleEndian, uint64(0)) // flags
		binary.Write(buf, binary.LittleEndian, uint64(0)) // addr
		binary.Write(buf, binary.LittleEndian, offset)
		binary.Write(buf, binary.LittleEndian, size)
		binary.Write(buf, binary.LittleEndian, uint32(0)) // link
		binary.Write(buf, binary.LittleEndian, uint32(0)) // info
		binary.Write(buf, binary.LittleEndian, uint64(1)) // addralign
		binary.Write(buf, binary.LittleEndian, uint64(0)) // entsize
	}

	writeShdr(0, elf.SHT_NULL, 0, 0)
	writeShdr(lnkstreNameOff, elf.SHT_PROGBITS, dataOff, uint64(len(directory)))
	writeShdr(shstrtabNameOff, elf.SHT_STRTAB, shstrtabOff, uint64(len(shstrtab)))

	return buf.Bytes(), nil
}
