package kbin

// This file holds the Append* builders, the encode half of kbin. They all
// follow the same shape as franz-go's kbin.Append* family: take a dst
// slice, append to it, and return the grown slice.

// AppendBool appends a one-byte boolean (0x01 true, 0x00 false).
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// AppendInt8 appends a signed one-byte integer.
func AppendInt8(dst []byte, v int8) []byte {
	return append(dst, byte(v))
}

// AppendInt16 appends a signed big-endian two-byte integer.
func AppendInt16(dst []byte, v int16) []byte {
	u := uint16(v)
	return append(dst, byte(u>>8), byte(u))
}

// AppendInt32 appends a signed big-endian four-byte integer.
func AppendInt32(dst []byte, v int32) []byte {
	u := uint32(v)
	return append(dst, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

// AppendInt64 appends a signed big-endian eight-byte integer.
func AppendInt64(dst []byte, v int64) []byte {
	u := uint64(v)
	return append(dst,
		byte(u>>56), byte(u>>48), byte(u>>40), byte(u>>32),
		byte(u>>24), byte(u>>16), byte(u>>8), byte(u),
	)
}

// AppendUuid appends a raw 16-byte UUID.
func AppendUuid(dst []byte, v [16]byte) []byte {
	return append(dst, v[:]...)
}

// AppendUnsignedVarint appends a Kafka unsigned varint.
func AppendUnsignedVarint(dst []byte, v uint32) []byte {
	return appendVarintBits(dst, uint64(v))
}

// AppendUnsignedVarlong appends a Kafka unsigned varlong.
func AppendUnsignedVarlong(dst []byte, v uint64) []byte {
	return appendVarintBits(dst, v)
}

func appendVarintBits(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendCompactString appends a compact string: UNSIGNED_VARINT len(s)+1,
// then the bytes of s.
func AppendCompactString(dst []byte, s string) []byte {
	dst = AppendUnsignedVarint(dst, uint32(len(s))+1)
	return append(dst, s...)
}

// AppendCompactNullableString appends a compact nullable string: nil
// encodes as a single zero byte, otherwise UNSIGNED_VARINT len(s)+1 then
// the bytes of s.
func AppendCompactNullableString(dst []byte, s *string) []byte {
	if s == nil {
		return AppendUnsignedVarint(dst, 0)
	}
	return AppendCompactString(dst, *s)
}

// AppendNullableString appends a non-flexible nullable string: INT16
// length (-1 for nil) then the bytes.
func AppendNullableString(dst []byte, s *string) []byte {
	if s == nil {
		return AppendInt16(dst, -1)
	}
	dst = AppendInt16(dst, int16(len(*s)))
	return append(dst, *s...)
}

// AppendCompactBytes appends a compact byte slice: UNSIGNED_VARINT
// len(b)+1, then the bytes of b verbatim. Used for Fetch's raw records
// field, which is never nullable in this broker (a topic with no log data
// still reports a present, zero-length records buffer).
func AppendCompactBytes(dst []byte, b []byte) []byte {
	dst = AppendUnsignedVarint(dst, uint32(len(b))+1)
	return append(dst, b...)
}

// AppendCompactArrayLen appends a compact array's length prefix for n
// elements: varint 0 when empty, otherwise varint n+1. Callers append the
// n encoded elements themselves.
func AppendCompactArrayLen(dst []byte, n int) []byte {
	if n == 0 {
		return AppendUnsignedVarint(dst, 0)
	}
	return AppendUnsignedVarint(dst, uint32(n)+1)
}

// AppendTagBuffer appends an empty tag buffer: this codec never emits
// tagged fields, so it is always a single zero byte.
func AppendTagBuffer(dst []byte) []byte {
	return append(dst, 0)
}
