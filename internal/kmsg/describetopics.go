package kmsg

import (
	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kerr"
)

// KCursor is the pagination cursor carried by DescribeTopicPartitions. This
// broker never produces a non-nil next_cursor (the query algorithm always
// answers in a single pass), but the type still round-trips through
// DecodeFrom/AppendTo since it appears on both the request and response side.
type KCursor struct {
	TopicName      string
	PartitionIndex int32
}

// DecodeFrom decodes a KCursor from r.
func (c *KCursor) DecodeFrom(r *kbin.Reader) {
	c.TopicName = r.CompactString()
	c.PartitionIndex = r.Int32()
	r.TagBuffer()
}

// AppendTo appends this KCursor's encoding, including its trailing tag
// buffer.
func (c KCursor) AppendTo(dst []byte) []byte {
	dst = kbin.AppendCompactString(dst, c.TopicName)
	dst = kbin.AppendInt32(dst, c.PartitionIndex)
	return kbin.AppendTagBuffer(dst)
}

// DescribeTopicPartitionsRequest is the DescribeTopicPartitions v0 request
// body.
type DescribeTopicPartitionsRequest struct {
	Topics                 []string
	ResponsePartitionLimit int32
	Cursor                 *KCursor
}

// ReadFrom decodes a DescribeTopicPartitionsRequest from r. The topics
// array is COMPACT_ARRAY<COMPACT_STRING+tag_buffer>: each element is a bare
// compact string followed by its own tag buffer, not a nested struct, so it
// is read directly rather than through the generic array helpers.
func (req *DescribeTopicPartitionsRequest) ReadFrom(r *kbin.Reader) error {
	n := r.CompactArrayLen()
	if n > 0 {
		req.Topics = make([]string, n)
		for i := range req.Topics {
			req.Topics[i] = r.CompactString()
			r.TagBuffer()
		}
	}
	req.ResponsePartitionLimit = r.Int32()
	req.Cursor = kbin.ReadNullableField[KCursor](r)
	r.TagBuffer()
	return r.Err()
}

// Partition is one partition entry within a DescribeTopicPartitions
// response Topic.
type Partition struct {
	ErrorCode              *kerr.Error
	PartitionIndex         int32
	LeaderID               int32
	LeaderEpoch            int32
	ReplicaNodes           []int32
	IsrNodes               []int32
	EligibleLeaderReplicas []int32
	LastKnownElr           []int32
	OfflineReplicas        []int32
}

// AppendTo appends this Partition's encoding, including its trailing tag
// buffer.
func (p Partition) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt16(dst, p.ErrorCode.Code)
	dst = kbin.AppendInt32(dst, p.PartitionIndex)
	dst = kbin.AppendInt32(dst, p.LeaderID)
	dst = kbin.AppendInt32(dst, p.LeaderEpoch)
	dst = kbin.AppendCompactInt32Array(dst, p.ReplicaNodes)
	dst = kbin.AppendCompactInt32Array(dst, p.IsrNodes)
	dst = kbin.AppendCompactInt32Array(dst, p.EligibleLeaderReplicas)
	dst = kbin.AppendCompactInt32Array(dst, p.LastKnownElr)
	dst = kbin.AppendCompactInt32Array(dst, p.OfflineReplicas)
	return kbin.AppendTagBuffer(dst)
}

// Topic is one topic entry within a DescribeTopicPartitions response.
type Topic struct {
	ErrorCode                 *kerr.Error
	Name                      *string
	TopicID                   [16]byte
	IsInternal                bool
	Partitions                []Partition
	TopicAuthorizedOperations int32
}

// AppendTo appends this Topic's encoding, including its trailing tag
// buffer.
func (t Topic) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt16(dst, t.ErrorCode.Code)
	dst = kbin.AppendCompactNullableString(dst, t.Name)
	dst = kbin.AppendUuid(dst, t.TopicID)
	dst = kbin.AppendBool(dst, t.IsInternal)
	dst = kbin.AppendCompactArray(dst, t.Partitions)
	dst = kbin.AppendInt32(dst, t.TopicAuthorizedOperations)
	return kbin.AppendTagBuffer(dst)
}

// DescribeTopicPartitionsResponse is the DescribeTopicPartitions v0
// response body.
type DescribeTopicPartitionsResponse struct {
	ThrottleTimeMs int32
	Topics         []Topic
	NextCursor     *KCursor
}

// AppendTo appends this DescribeTopicPartitionsResponse's body encoding,
// including its trailing tag buffer.
func (resp DescribeTopicPartitionsResponse) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt32(dst, resp.ThrottleTimeMs)
	dst = kbin.AppendCompactArray(dst, resp.Topics)
	dst = kbin.AppendNullableField(dst, resp.NextCursor)
	return kbin.AppendTagBuffer(dst)
}
