package kbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair is a small struct used only to exercise the generic compact-array
// and nullable-field helpers against a compound element type.
type pair struct {
	A int32
	B int32
}

func (p *pair) DecodeFrom(r *Reader) {
	p.A = r.Int32()
	p.B = r.Int32()
}

func (p pair) AppendTo(dst []byte) []byte {
	dst = AppendInt32(dst, p.A)
	return AppendInt32(dst, p.B)
}

func TestCompactArrayOfStructsRoundTrip(t *testing.T) {
	pairs := []pair{{1, 2}, {3, 4}}
	buf := AppendCompactArray(nil, pairs)
	r := NewReader(buf)
	got := ReadCompactArray[pair](r)
	require.NoError(t, r.Err())
	assert.Equal(t, pairs, got)
}

func TestCompactArrayOfStructsEmpty(t *testing.T) {
	buf := AppendCompactArray[pair](nil, nil)
	assert.Equal(t, []byte{0}, buf)
	r := NewReader(buf)
	got := ReadCompactArray[pair](r)
	require.NoError(t, r.Err())
	assert.Nil(t, got)
}

func TestCompactArrayWithTagBufferPerElement(t *testing.T) {
	buf := AppendCompactArrayLen(nil, 2)
	buf = pair{1, 2}.AppendTo(buf)
	buf = AppendTagBuffer(buf)
	buf = pair{3, 4}.AppendTo(buf)
	buf = AppendTagBuffer(buf)

	r := NewReader(buf)
	got := ReadCompactArrayWithTagBuffer[pair](r)
	require.NoError(t, r.Err())
	assert.Equal(t, []pair{{1, 2}, {3, 4}}, got)
}

func TestNullableFieldRoundTrip(t *testing.T) {
	v := pair{5, 6}
	buf := AppendNullableField(nil, &v)
	r := NewReader(buf)
	got := ReadNullableField[pair](r)
	require.NoError(t, r.Err())
	require.NotNil(t, got)
	assert.Equal(t, v, *got)

	buf = AppendNullableField[pair](nil, nil)
	r = NewReader(buf)
	assert.Nil(t, ReadNullableField[pair](r))
	require.NoError(t, r.Err())
}
