// Package kbin implements the scalar and composite wire types used by
// Kafka's flexible-version protocol: fixed-width big-endian integers,
// unsigned varints, compact strings/arrays, nullable fields, UUIDs, and
// tag buffers.
//
// Reading is done through a Reader, a cursor over a byte slice that
// accumulates the first error it hits rather than returning one from every
// method; callers check Err (or call Complete) once at the end of a
// struct's fields, the same shape franz-go's kbin.Reader uses.
package kbin

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrNotEnoughData is returned (wrapped) when a Reader runs out of bytes
// mid-field.
var ErrNotEnoughData = errors.New("response did not contain enough data to parse")

// ErrInvalidVarint is returned when a varint's continuation sequence runs
// past the maximum allowed length.
var ErrInvalidVarint = errors.New("invalid varint: continuation bit set on the final allowed byte")

// ErrBadUTF8 is returned when a string field is not valid UTF-8.
var ErrBadUTF8 = errors.New("string field is not valid utf-8")

// Reader is a cursor over an in-memory request or record buffer.
type Reader struct {
	Src []byte
	err error
}

// NewReader wraps src in a Reader.
func NewReader(src []byte) *Reader {
	return &Reader{Src: src}
}

// Err returns the first error this Reader encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Complete returns the Reader's sticky error, or an error if unconsumed
// bytes remain after a struct finished reading its known fields.
func (r *Reader) Complete() error {
	if r.err != nil {
		return r.err
	}
	if len(r.Src) > 0 {
		return errors.Errorf("%d unconsumed bytes remain", len(r.Src))
	}
	return nil
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.Src) < n {
		r.fail(errors.WithStack(ErrNotEnoughData))
		return nil
	}
	out := r.Src[:n]
	r.Src = r.Src[n:]
	return out
}

// Bool reads a one-byte boolean: 0x01 is true, anything else is false.
func (r *Reader) Bool() bool {
	b := r.take(1)
	if r.err != nil {
		return false
	}
	return b[0] == 1
}

// Int8 reads a signed one-byte integer.
func (r *Reader) Int8() int8 {
	b := r.take(1)
	if r.err != nil {
		return 0
	}
	return int8(b[0])
}

// Int16 reads a signed big-endian two-byte integer.
func (r *Reader) Int16() int16 {
	b := r.take(2)
	if r.err != nil {
		return 0
	}
	return int16(uint16(b[0])<<8 | uint16(b[1]))
}

// Int32 reads a signed big-endian four-byte integer.
func (r *Reader) Int32() int32 {
	b := r.take(4)
	if r.err != nil {
		return 0
	}
	return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// Int64 reads a signed big-endian eight-byte integer.
func (r *Reader) Int64() int64 {
	b := r.take(8)
	if r.err != nil {
		return 0
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return int64(v)
}

// Uuid reads a 16-byte raw UUID.
func (r *Reader) Uuid() [16]byte {
	var out [16]byte
	b := r.take(16)
	if r.err != nil {
		return out
	}
	copy(out[:], b)
	return out
}

// maxVarintBytes bounds a varint/varlong continuation sequence at 10 groups
// of 7 bits (70 bits), enough for the 64-bit varlong case; an 11th byte
// still carrying a continuation bit is a decode error. Both UNSIGNED_VARINT
// and UNSIGNED_VARLONG share this limit, matching the single
// parse_unsigned_varlong this codec's behavior is grounded on.
const maxVarintBytes = 10

// UnsignedVarint reads a Kafka unsigned varint: 7-bit groups, low-to-high,
// high bit of each byte signaling continuation.
func (r *Reader) UnsignedVarint() uint32 {
	v, err := r.varintBits()
	if err != nil {
		r.fail(err)
		return 0
	}
	return uint32(v)
}

// UnsignedVarlong reads a Kafka unsigned varlong.
func (r *Reader) UnsignedVarlong() uint64 {
	v, err := r.varintBits()
	if err != nil {
		r.fail(err)
		return 0
	}
	return v
}

// Varint reads the same bit pattern as UnsignedVarint, truncated to 32 bits.
// It does not ZigZag-decode, matching the upstream behavior this
// implementation is grounded on: for a ZigZag-encoded field the result is
// the encoded value (2N for a positive N), which equals the real value only
// for zero. The signed varint fields this codec reads (record length,
// offset delta, value length) are stored but never used to bound a read,
// so the difference does not affect parsing (see DESIGN.md).
func (r *Reader) Varint() int32 {
	v, err := r.varintBits()
	if err != nil {
		r.fail(err)
		return 0
	}
	return int32(v)
}

// varintBits decodes a continuation sequence of 7-bit groups, accumulated
// low-to-high, rejecting an 11th byte that still carries a continuation
// bit.
func (r *Reader) varintBits() (uint64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var value uint64
	for i := 0; i <= maxVarintBytes; i++ {
		b := r.take(1)
		if r.err != nil {
			return 0, r.err
		}
		if i == maxVarintBytes && b[0]&0x80 != 0 {
			return 0, errors.WithStack(ErrInvalidVarint)
		}
		value |= uint64(b[0]&0x7f) << (7 * uint(i))
		if b[0]&0x80 == 0 {
			return value, nil
		}
	}
	return value, nil
}

// CompactString reads a compact string: UNSIGNED_VARINT N+1, then N bytes.
// A length of 0 is a decode error here (use CompactNullableString for the
// nullable form).
func (r *Reader) CompactString() string {
	n := r.UnsignedVarint()
	if r.err != nil {
		return ""
	}
	if n == 0 {
		r.fail(errors.New("compact string length is zero; field is not nullable"))
		return ""
	}
	b := r.take(int(n - 1))
	if r.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.fail(errors.WithStack(ErrBadUTF8))
		return ""
	}
	return string(b)
}

// CompactNullableString reads a compact nullable string: UNSIGNED_VARINT N;
// N==0 means null.
func (r *Reader) CompactNullableString() *string {
	n := r.UnsignedVarint()
	if r.err != nil {
		return nil
	}
	if n == 0 {
		return nil
	}
	b := r.take(int(n - 1))
	if r.err != nil {
		return nil
	}
	if !utf8.Valid(b) {
		r.fail(errors.WithStack(ErrBadUTF8))
		return nil
	}
	s := string(b)
	return &s
}

// NullableString reads a non-flexible nullable string: INT16 length, -1 is
// null.
func (r *Reader) NullableString() *string {
	n := r.Int16()
	if r.err != nil {
		return nil
	}
	if n == -1 {
		return nil
	}
	b := r.take(int(n))
	if r.err != nil {
		return nil
	}
	if !utf8.Valid(b) {
		r.fail(errors.WithStack(ErrBadUTF8))
		return nil
	}
	s := string(b)
	return &s
}

// CompactArrayLen reads a compact array's length prefix and returns the
// element count: UNSIGNED_VARINT N+1, where N==0 means empty. Most callers
// should use a typed helper (see array.go) instead of this directly.
func (r *Reader) CompactArrayLen() int {
	n := r.UnsignedVarint()
	if r.err != nil {
		return 0
	}
	if n == 0 {
		return 0
	}
	return int(n - 1)
}

// CompactBytes reads a compact byte slice: UNSIGNED_VARINT N+1, then N raw
// bytes. Mirrors AppendCompactBytes; unused by this broker's request
// decoders today but kept alongside it for symmetry.
func (r *Reader) CompactBytes() []byte {
	n := r.UnsignedVarint()
	if r.err != nil {
		return nil
	}
	if n == 0 {
		return nil
	}
	return r.take(int(n - 1))
}

// TagBuffer consumes a tag section. This implementation only ever produces
// and expects empty tag buffers, so it reads the tag count and, if
// nonzero, skips each tag's id/length/payload without interpreting it.
func (r *Reader) TagBuffer() {
	n := r.UnsignedVarint()
	if r.err != nil {
		return
	}
	for i := uint32(0); i < n; i++ {
		r.UnsignedVarint() // tag id
		size := r.UnsignedVarint()
		r.take(int(size))
		if r.err != nil {
			return
		}
	}
}

// Span returns the next n raw bytes without interpreting them.
func (r *Reader) Span(n int) []byte {
	return r.take(n)
}

// Remaining returns every byte not yet consumed.
func (r *Reader) Remaining() []byte {
	return r.Src
}

// Len reports how many bytes remain unconsumed.
func (r *Reader) Len() int {
	return len(r.Src)
}
