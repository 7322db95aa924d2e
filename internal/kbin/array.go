package kbin

// Decodable is implemented by *T for any compound wire type that can parse
// itself from a Reader, the capability compact-array and nullable-field
// parsing is generic over (see DESIGN.md, "Generic array/nullable-field
// helpers").
type Decodable[T any] interface {
	*T
	DecodeFrom(r *Reader)
}

// Encodable is implemented by any compound wire type that can append its
// own encoding to a growing buffer.
type Encodable interface {
	AppendTo(dst []byte) []byte
}

// ReadCompactArray reads a COMPACT_ARRAY<T> with no tag buffer between
// elements.
func ReadCompactArray[T any, PT Decodable[T]](r *Reader) []T {
	n := r.CompactArrayLen()
	if r.err != nil || n == 0 {
		return nil
	}
	out := make([]T, n)
	for i := range out {
		PT(&out[i]).DecodeFrom(r)
		if r.err != nil {
			return nil
		}
	}
	return out
}

// ReadCompactArrayWithTagBuffer reads a COMPACT_ARRAY<T> that additionally
// consumes a tag buffer after each element. DescribeTopicPartitions' topic
// list has this layout but, being an array of bare strings, is read
// directly by its own ReadFrom rather than through this helper.
func ReadCompactArrayWithTagBuffer[T any, PT Decodable[T]](r *Reader) []T {
	n := r.CompactArrayLen()
	if r.err != nil || n == 0 {
		return nil
	}
	out := make([]T, n)
	for i := range out {
		PT(&out[i]).DecodeFrom(r)
		r.TagBuffer()
		if r.err != nil {
			return nil
		}
	}
	return out
}

// AppendCompactArray appends a COMPACT_ARRAY<T>: varint 0 when arr is
// empty, otherwise varint len(arr)+1 followed by each element's own
// encoding.
func AppendCompactArray[T Encodable](dst []byte, arr []T) []byte {
	dst = AppendCompactArrayLen(dst, len(arr))
	for _, item := range arr {
		dst = item.AppendTo(dst)
	}
	return dst
}

// ReadCompactInt32Array reads a COMPACT_ARRAY<INT32>, used for the replica
// and ISR style fields on PartitionRecord and for ForgottenTopicsData's
// partition list.
func ReadCompactInt32Array(r *Reader) []int32 {
	n := r.CompactArrayLen()
	if r.err != nil || n == 0 {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = r.Int32()
		if r.err != nil {
			return nil
		}
	}
	return out
}

// AppendCompactInt32Array appends a COMPACT_ARRAY<INT32>.
func AppendCompactInt32Array(dst []byte, arr []int32) []byte {
	dst = AppendCompactArrayLen(dst, len(arr))
	for _, v := range arr {
		dst = AppendInt32(dst, v)
	}
	return dst
}

// ReadCompactUuidArray reads a COMPACT_ARRAY<UUID>, used for
// PartitionRecord's directories field.
func ReadCompactUuidArray(r *Reader) [][16]byte {
	n := r.CompactArrayLen()
	if r.err != nil || n == 0 {
		return nil
	}
	out := make([][16]byte, n)
	for i := range out {
		out[i] = r.Uuid()
		if r.err != nil {
			return nil
		}
	}
	return out
}

// AppendCompactUuidArray appends a COMPACT_ARRAY<UUID>.
func AppendCompactUuidArray(dst []byte, arr [][16]byte) []byte {
	dst = AppendCompactArrayLen(dst, len(arr))
	for _, v := range arr {
		dst = AppendUuid(dst, v)
	}
	return dst
}

// ReadNullableField reads NULLABLE_FIELD<T>: INT8 -1 means none, 0 means
// Some followed by T's encoding.
func ReadNullableField[T any, PT Decodable[T]](r *Reader) *T {
	marker := r.Int8()
	if r.err != nil {
		return nil
	}
	if marker == -1 {
		return nil
	}
	var v T
	PT(&v).DecodeFrom(r)
	if r.err != nil {
		return nil
	}
	return &v
}

// AppendNullableField appends NULLABLE_FIELD<T>: nil encodes as a single
// INT8 -1, otherwise INT8 0 followed by the value's own encoding.
func AppendNullableField[T Encodable](dst []byte, v *T) []byte {
	if v == nil {
		return AppendInt8(dst, -1)
	}
	dst = AppendInt8(dst, 0)
	return (*v).AppendTo(dst)
}
