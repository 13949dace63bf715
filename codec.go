package linkstore

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Scalar lists every type this package can read and write as a slot value on
// its own: the fixed-width integers (including the 16-byte width via Uint128
// /Int128, since Go has no native 128-bit integer), IEEE floats, and bool
// that the original format supports natively. Grounded on the teacher's own
// use of encoding/binary (elf_complete.go, macho.go, emit.go) for exactly
// this kind of fixed-width wire encoding.
type Scalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~bool | ~float32 | ~float64 | Uint128 | Int128
}

func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// decodeScalar decodes b, interpreted with the given byte order, into a
// value of type T. b must be exactly binary.Size(T) bytes; a longer or
// shorter slice is a caller bug, not a data error, since slot sizes are
// validated against sizeOf[T]() before this is ever called.
//
// Uint128/Int128 can't go through binary.Read directly: reading a two-field
// struct reads each field independently in the given byte order, which gets
// the Lo/Hi word ordering backwards for a big-endian 128-bit value. They're
// special-cased through their own word-aware codecs instead.
func decodeScalar[T Scalar](b []byte, littleEndian bool) (T, error) {
	var v T
	switch any(v).(type) {
	case Uint128:
		u, err := decodeUint128(b, littleEndian)
		if err != nil {
			return v, err
		}
		return any(u).(T), nil
	case Int128:
		i, err := decodeInt128(b, littleEndian)
		if err != nil {
			return v, err
		}
		return any(i).(T), nil
	}
	if err := binary.Read(bytes.NewReader(b), byteOrder(littleEndian), &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrDecodingError, err)
	}
	return v, nil
}

// encodeScalar is decodeScalar's inverse, used by Embed to turn a new value
// into the bytes staged for Finish().
func encodeScalar[T Scalar](v T, littleEndian bool) []byte {
	switch x := any(v).(type) {
	case Uint128:
		return encodeUint128(x, littleEndian)
	case Int128:
		return encodeInt128(x, littleEndian)
	}
	buf := new(bytes.Buffer)
	// binary.Write on a fixed-width scalar never fails.
	_ = binary.Write(buf, byteOrder(littleEndian), v)
	return buf.Bytes()
}

func sizeOf[T Scalar]() uint64 {
	var v T
	return uint64(binary.Size(v))
}

// decodeArray decodes b into n Scalar elements. It returns ErrDecodingError
// when len(b) is not a whole number of elements or does not hold exactly n
// of them.
func decodeArray[T Scalar](b []byte, littleEndian bool, n int) ([]T, error) {
	elemSize := int(sizeOf[T]())
	if elemSize == 0 || len(b)%elemSize != 0 || len(b)/elemSize != n {
		return nil, ErrDecodingError
	}
	out := make([]T, n)
	for i := range out {
		v, err := decodeScalar[T](b[i*elemSize:(i+1)*elemSize], littleEndian)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func encodeArray[T Scalar](vs []T, littleEndian bool) []byte {
	buf := make([]byte, 0, len(vs)*int(sizeOf[T]()))
	for _, v := range vs {
		buf = append(buf, encodeScalar(v, littleEndian)...)
	}
	return buf
}
