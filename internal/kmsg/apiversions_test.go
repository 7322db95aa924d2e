package kmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moband/kaf-broker/internal/kbin"
)

func TestApiVersionsRequestReadFrom(t *testing.T) {
	buf := kbin.AppendCompactString(nil, "kcat")
	buf = kbin.AppendCompactString(buf, "1.7.0")
	buf = kbin.AppendTagBuffer(buf)

	var req ApiVersionsRequest
	require.NoError(t, req.ReadFrom(kbin.NewReader(buf)))
	assert.Equal(t, "kcat", req.ClientSoftwareName)
	assert.Equal(t, "1.7.0", req.ClientSoftwareVersion)
}

func TestApiVersionsResponseAppendTo(t *testing.T) {
	resp := ApiVersionsResponse{
		ErrorCode: 0,
		ApiKeys: []ApiKeyEntry{
			{ApiKey: 1, MinVersion: 0, MaxVersion: 16},
		},
		ThrottleTimeMs: 0,
	}
	buf := resp.AppendTo(nil)

	r := kbin.NewReader(buf)
	assert.Equal(t, int16(0), r.Int16())
	n := r.CompactArrayLen()
	require.Equal(t, 1, n)
	assert.Equal(t, int16(1), r.Int16())
	assert.Equal(t, int16(0), r.Int16())
	assert.Equal(t, int16(16), r.Int16())
	r.TagBuffer() // ApiKeyEntry's own tag buffer
	assert.Equal(t, int32(0), r.Int32())
	r.TagBuffer() // response body's tag buffer
	require.NoError(t, r.Err())
	assert.Equal(t, 0, r.Len())
}
