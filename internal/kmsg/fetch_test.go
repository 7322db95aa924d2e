package kmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kerr"
)

func TestFetchRequestReadFrom(t *testing.T) {
	var topicID [16]byte
	topicID[0] = 0xAB

	buf := kbin.AppendInt32(nil, 500) // max_wait_ms
	buf = kbin.AppendInt32(buf, 1)    // min_bytes
	buf = kbin.AppendInt32(buf, 1<<20)
	buf = kbin.AppendInt8(buf, 0) // isolation_level
	buf = kbin.AppendInt32(buf, 0)
	buf = kbin.AppendInt32(buf, 0)

	buf = kbin.AppendCompactArrayLen(buf, 1)
	buf = kbin.AppendUuid(buf, topicID)
	buf = kbin.AppendCompactArrayLen(buf, 1)
	buf = kbin.AppendInt32(buf, 0)   // partition
	buf = kbin.AppendInt32(buf, -1)  // current_leader_epoch
	buf = kbin.AppendInt64(buf, 0)   // fetch_offset
	buf = kbin.AppendInt32(buf, -1)  // last_fetched_epoch
	buf = kbin.AppendInt64(buf, 0)   // log_start_offset
	buf = kbin.AppendInt32(buf, 1<<20)
	buf = kbin.AppendTagBuffer(buf) // partition tag buffer
	buf = kbin.AppendTagBuffer(buf) // topic tag buffer

	buf = kbin.AppendCompactArrayLen(buf, 0) // forgotten_topics_data
	buf = kbin.AppendCompactNullableString(buf, nil)
	buf = kbin.AppendTagBuffer(buf)

	var req FetchRequest
	require.NoError(t, req.ReadFrom(kbin.NewReader(buf)))
	require.Len(t, req.Topics, 1)
	assert.Equal(t, topicID, req.Topics[0].TopicID)
	require.Len(t, req.Topics[0].Partitions, 1)
	assert.Equal(t, int32(0), req.Topics[0].Partitions[0].Partition)
	assert.Nil(t, req.ForgottenTopicsData)
	assert.Nil(t, req.RackID)
}

func TestFetchResponseUnknownTopicAppendTo(t *testing.T) {
	var topicID [16]byte
	resp := FetchResponse{
		ErrorCode: kerr.NoError,
		Responses: []FetchResponseTopic{{
			TopicID: topicID,
			Partitions: []FetchResponsePartition{{
				PartitionIndex: 0,
				ErrorCode:      kerr.UnknownTopic,
				Records:        nil,
			}},
		}},
	}
	buf := resp.AppendTo(nil)

	r := kbin.NewReader(buf)
	assert.Equal(t, int32(0), r.Int32()) // throttle_time_ms
	assert.Equal(t, int16(0), r.Int16()) // top-level error_code stays NO_ERROR
	assert.Equal(t, int32(0), r.Int32()) // session_id
	n := r.CompactArrayLen()
	require.Equal(t, 1, n)
	assert.Equal(t, topicID, r.Uuid())
	pn := r.CompactArrayLen()
	require.Equal(t, 1, pn)
	assert.Equal(t, int32(0), r.Int32())
	assert.Equal(t, int16(100), r.Int16()) // UNKNOWN_TOPIC
	require.NoError(t, r.Err())
}
