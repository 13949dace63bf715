package producer

import (
	"bytes"
	"encoding/binary"
)

const (
	machoMagic64     = 0xfeedfacf
	cpuTypeX8664     = 0x01000007
	cpuTypeARM64     = 0x0100000c
	cpuSubtypeAll    = 0
	machHObject      = 1 // MH_OBJECT
	lcSegment64      = 0x19
	segmentCmdSize   = 72
	sectionCmdSize   = 80
	machHeader64Size = 32
)

// buildMachOObject emits a minimal MH_OBJECT Mach-O with one unnamed
// LC_SEGMENT_64 load command containing one section named .lnkstre, grounded
// on the header/load-command layout the teacher's own macho.go writes
// (mach_header_64, segment_command_64, section_64), adapted from a full
// executable writer down to the single-section object case.
func buildMachOObject(target Target, directory []byte) ([]byte, error) {
	cpuType := uint32(cpuTypeX8664)
	if target == MachODarwinARM64 {
		cpuType = cpuTypeARM64
	}

	dataOff := uint32(machHeader64Size + segmentCmdSize + sectionCmdSize)
	sizeOfCmds := uint32(segmentCmdSize + sectionCmdSize)

	buf := new(bytes.Buffer)

	binary.Write(buf, binary.LittleEndian, uint32(machoMagic64))
	binary.Write(buf, binary.LittleEndian, cpuType)
	binary.Write(buf, binary.LittleEndian, uint32(cpuSubtypeAll))
	binary.Write(buf, binary.LittleEndian, uint32(machHObject))
	binary.Write(buf, binary.LittleEndian, uint32(1)) // ncmds
	binary.Write(buf, binary.LittleEndian, sizeOfCmds)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // flags
	binary.Write(buf, binary.LittleEndian, uint32(0)) // reserved

	var segname, sectname [16]byte
	copy(sectname[:], ".lnkstre")

	binary.Write(buf, binary.LittleEndian, uint32(lcSegment64))
	binary.Write(buf, binary.LittleEndian, uint32(segmentCmdSize+sectionCmdSize))
	buf.Write(segname[:])
	binary.Write(buf, binary.LittleEndian, uint64(0))               // vmaddr
	binary.Write(buf, binary.LittleEndian, uint64(len(directory)))  // vmsize
	binary.Write(buf, binary.LittleEndian, uint64(dataOff))         // fileoff
	binary.Write(buf, binary.LittleEndian, uint64(len(directory)))  // filesize
	binary.Write(buf, binary.LittleEndian, int32(7))                // maxprot
	binary.Write(buf, binary.LittleEndian, int32(7))                // initprot
	binary.Write(buf, binary.LittleEndian, uint32(1))               // nsects
	binary.Write(buf, binary.LittleEndian, uint32(0))               // flags

	buf.Write(sectname[:])
	buf.Write(segname[:])
	binary.Write(buf, binary.LittleEndian, uint64(0))              // addr
	binary.Write(buf, binary.LittleEndian, uint64(len(directory))) // size
	binary.Write(buf, binary.LittleEndian, dataOff)                // offset
	binary.Write(buf, binary.LittleEndian, uint32(0))              // align
	binary.Write(buf, binary.LittleEndian, uint32(0))              // reloff
	binary.Write(buf, binary.LittleEndian, uint32(0))              // nreloc
	binary.Write(buf, binary.LittleEndian, uint32(0))              // flags
	binary.Write(buf, binary.LittleEndian, uint32(0))              // reserved1
	binary.Write(buf, binary.LittleEndian, uint32(0))              // reserved2
	binary.Write(buf, binary.LittleEndian, uint32(0))              // reserved3

	buf.Write(directory)

	return buf.Bytes(), nil
}
