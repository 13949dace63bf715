package linkstore

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// linkstoreMagic marks the beginning of a directory entry inside a slot
// section, used to resynchronise the decoder if any padding separates
// entries.
const linkstoreMagic = 0xEA

// decodeSection parses the directory inside one located slot section and
// inserts every entry it finds into dir. headerSize bounds how many bytes of
// the section remain to be consumed; outerOffset is added to every payload
// offset captured so that archive members and fat Mach-O slices end up with
// offsets absolute to the outermost file.
//
// This is the single call every format adapter funnels into (§4.3 of the
// design): the adapter's only job is finding sections named .lnkstre and
// handing their (offset, size, bitness, endianness) to this function.
func decodeSection(dir directory, src io.ReaderAt, sectionOffset, headerSize uint64, is64, littleEndian bool, outerOffset uint64) error {
	r := bufio.NewReaderSize(io.NewSectionReader(src, int64(sectionOffset), int64(headerSize)), 256)

	wordSize := uint64(4)
	if is64 {
		wordSize = 8
	}
	// 1 magic byte + 1 name-terminator minimum + 2 words
	minimumRecordSize := 1 + 1 + 2*wordSize

	remaining := headerSize
	consumed := uint64(0) // bytes read from r so far, tracked for offset math

	readWord := func() (uint64, error) {
		buf := make([]byte, wordSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, err
		}
		consumed += wordSize
		if is64 {
			return binary.LittleEndian.Uint64(buf), nil
		}
		return uint64(binary.LittleEndian.Uint32(buf)), nil
	}

	moveCursor := func(amount uint64) error {
		if amount > remaining {
			return ErrUnexpectedEOF
		}
		remaining -= amount
		return nil
	}

	for remaining >= minimumRecordSize {
		// Step 1: locate next record by scanning for the magic byte,
		// tolerating trailing zero padding after the last real record.
		n, err := scanForMagic(r)
		remaining -= min64(uint64(n), remaining)
		consumed += uint64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("linkstore: %w", err)
		}
		if remaining < minimumRecordSize-1 { // the magic byte is already consumed
			break
		}

		// Step 2: read the NUL-terminated name.
		name, nameBytes, err := readCString(r)
		if err != nil {
			if err == io.EOF {
				return ErrUnexpectedEOF
			}
			return fmt.Errorf("linkstore: %w", err)
		}
		if err := moveCursor(uint64(nameBytes)); err != nil {
			return err
		}
		consumed += uint64(nameBytes)
		if name == "" {
			return ErrNameDecodingError
		}

		// Step 3: payload size, host-section little-endian regardless of
		// the payload's own declared endianness.
		size, err := readWord()
		if err != nil {
			return ErrUnexpectedEOF
		}
		if err := moveCursor(wordSize); err != nil {
			return err
		}

		// Step 4: padding before the payload, same width/order.
		padding, err := readWord()
		if err != nil {
			return ErrUnexpectedEOF
		}
		if err := moveCursor(wordSize); err != nil {
			return err
		}

		if err := moveCursor(padding); err != nil {
			return err
		}
		if err := moveCursor(size); err != nil {
			return err
		}

		// Step 5: skip the padding bytes.
		if _, err := io.CopyN(io.Discard, r, int64(padding)); err != nil {
			return ErrUnexpectedEOF
		}
		consumed += padding

		// Step 6: capture the payload.
		payloadOffset := sectionOffset + consumed + outerOffset
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return ErrUnexpectedEOF
		}
		consumed += size

		// Step 8: insert into the directory.
		dir.insert(name, slot{
			absoluteOffset: payloadOffset,
			size:           size,
			littleEndian:   littleEndian,
			state:          stateUnchanged,
			bytes:          payload,
		})
	}

	return nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// scanForMagic consumes bytes from r up to and including the next magic
// byte, returning how many bytes were consumed. Reaching EOF with no magic
// byte found is reported as io.EOF, which the caller treats as "no further
// records" rather than an error.
func scanForMagic(r *bufio.Reader) (int, error) {
	n := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			return n, io.EOF
		}
		n++
		if b == linkstoreMagic {
			return n, nil
		}
	}
}

// readCString reads bytes up to and including the next NUL terminator,
// returning the string with the terminator stripped (lossy-UTF-8 decoded,
// mirroring the original implementation's String::from_utf8_lossy) and the
// total number of bytes consumed including the terminator.
func readCString(r *bufio.Reader) (string, int, error) {
	raw, err := r.ReadBytes(0x00)
	if err != nil {
		return "", len(raw), io.EOF
	}
	// Strip the terminator; invalid UTF-8 sequences are replaced rather than
	// rejected, matching the Rust implementation's lossy decode.
	return lossyUTF8(raw[:len(raw)-1]), len(raw), nil
}
