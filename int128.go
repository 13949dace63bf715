package linkstore

import (
	"encoding/binary"
	"math/big"
)

// Uint128 and Int128 fill out base spec §4.6's mandatory 16-byte integer
// width: Go has no native 128-bit integer, so the value is carried as two
// 64-bit words. Field order is Lo-then-Hi regardless of target endianness;
// only encodeUint128/decodeUint128 below care which word is more
// significant when laying out the 16 on-disk bytes.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Int128 is Uint128's signed counterpart; Hi carries the sign bit.
type Int128 struct {
	Lo uint64
	Hi int64
}

// uint128Mod is 2^128, used to truncate an oversized big.Int down to the low
// 128 bits before FillBytes (which panics rather than truncates if the value
// doesn't fit in the given buffer).
var uint128Mod = new(big.Int).Lsh(big.NewInt(1), 128)

// Uint128FromBig truncates b to its low 128 bits.
func Uint128FromBig(b *big.Int) Uint128 {
	b = new(big.Int).Mod(b, uint128Mod)
	var buf [16]byte
	b.FillBytes(buf[:])
	return Uint128{
		Hi: binary.BigEndian.Uint64(buf[0:8]),
		Lo: binary.BigEndian.Uint64(buf[8:16]),
	}
}

// Big returns v as an arbitrary-precision unsigned integer.
func (v Uint128) Big() *big.Int {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], v.Hi)
	binary.BigEndian.PutUint64(buf[8:16], v.Lo)
	return new(big.Int).SetBytes(buf[:])
}

// Int128FromBig truncates b to its low 128 bits, preserving two's-complement
// sign. big.Int's Mod is Euclidean (always returns a value in [0, 2^128)),
// which is exactly a negative number's two's-complement bit pattern when the
// modulus is a power of two, so this reuses Uint128FromBig directly rather
// than hand-rolling a negate-and-carry step.
func Int128FromBig(b *big.Int) Int128 {
	u := Uint128FromBig(b)
	return Int128{Lo: u.Lo, Hi: int64(u.Hi)}
}

// Big returns v as an arbitrary-precision signed integer, interpreting the
// 128-bit pattern as two's complement.
func (v Int128) Big() *big.Int {
	u := Uint128{Lo: v.Lo, Hi: uint64(v.Hi)}.Big()
	if int64(v.Hi) < 0 {
		u.Sub(u, uint128Mod)
	}
	return u
}

func encodeUint128(v Uint128, littleEndian bool) []byte {
	buf := make([]byte, 16)
	if littleEndian {
		binary.LittleEndian.PutUint64(buf[0:8], v.Lo)
		binary.LittleEndian.PutUint64(buf[8:16], v.Hi)
	} else {
		binary.BigEndian.PutUint64(buf[0:8], v.Hi)
		binary.BigEndian.PutUint64(buf[8:16], v.Lo)
	}
	return buf
}

func decodeUint128(b []byte, littleEndian bool) (Uint128, error) {
	if len(b) != 16 {
		return Uint128{}, ErrDecodingError
	}
	var v Uint128
	if littleEndian {
		v.Lo = binary.LittleEndian.Uint64(b[0:8])
		v.Hi = binary.LittleEndian.Uint64(b[8:16])
	} else {
		v.Hi = binary.BigEndian.Uint64(b[0:8])
		v.Lo = binary.BigEndian.Uint64(b[8:16])
	}
	return v, nil
}

func encodeInt128(v Int128, littleEndian bool) []byte {
	return encodeUint128(Uint128{Lo: v.Lo, Hi: uint64(v.Hi)}, littleEndian)
}

func decodeInt128(b []byte, littleEndian bool) (Int128, error) {
	u, err := decodeUint128(b, littleEndian)
	if err != nil {
		return Int128{}, err
	}
	return Int128{Lo: u.Lo, Hi: int64(u.Hi)}, nil
}
