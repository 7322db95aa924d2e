package kmsg

import (
	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kerr"
)

// FetchRequestPartition is one partition entry within a FetchRequestTopic.
type FetchRequestPartition struct {
	Partition          int32
	CurrentLeaderEpoch int32
	FetchOffset        int64
	LastFetchedEpoch   int32
	LogStartOffset     int64
	PartitionMaxBytes  int32
}

// DecodeFrom decodes a FetchRequestPartition from r, including its own
// trailing tag buffer.
func (p *FetchRequestPartition) DecodeFrom(r *kbin.Reader) {
	p.Partition = r.Int32()
	p.CurrentLeaderEpoch = r.Int32()
	p.FetchOffset = r.Int64()
	p.LastFetchedEpoch = r.Int32()
	p.LogStartOffset = r.Int64()
	p.PartitionMaxBytes = r.Int32()
	r.TagBuffer()
}

// FetchRequestTopic is one topic entry within a FetchRequest.
type FetchRequestTopic struct {
	TopicID    [16]byte
	Partitions []FetchRequestPartition
}

// DecodeFrom decodes a FetchRequestTopic from r, including its own trailing
// tag buffer.
func (t *FetchRequestTopic) DecodeFrom(r *kbin.Reader) {
	t.TopicID = r.Uuid()
	t.Partitions = kbin.ReadCompactArray[FetchRequestPartition](r)
	r.TagBuffer()
}

// ForgottenTopicsData lists partitions a consumer is no longer fetching,
// carried for protocol compatibility; this broker never acts on it.
type ForgottenTopicsData struct {
	TopicID    [16]byte
	Partitions []int32
}

// DecodeFrom decodes a ForgottenTopicsData entry from r, including its own
// trailing tag buffer.
func (f *ForgottenTopicsData) DecodeFrom(r *kbin.Reader) {
	f.TopicID = r.Uuid()
	f.Partitions = kbin.ReadCompactInt32Array(r)
	r.TagBuffer()
}

// FetchRequest is the Fetch v16 request body.
type FetchRequest struct {
	MaxWaitMs           int32
	MinBytes            int32
	MaxBytes            int32
	IsolationLevel      int8
	SessionID           int32
	SessionEpoch        int32
	Topics              []FetchRequestTopic
	ForgottenTopicsData []ForgottenTopicsData
	RackID              *string
}

// ReadFrom decodes a FetchRequest from r.
func (req *FetchRequest) ReadFrom(r *kbin.Reader) error {
	req.MaxWaitMs = r.Int32()
	req.MinBytes = r.Int32()
	req.MaxBytes = r.Int32()
	req.IsolationLevel = r.Int8()
	req.SessionID = r.Int32()
	req.SessionEpoch = r.Int32()
	req.Topics = kbin.ReadCompactArray[FetchRequestTopic](r)
	req.ForgottenTopicsData = kbin.ReadCompactArray[ForgottenTopicsData](r)
	req.RackID = r.CompactNullableString()
	r.TagBuffer()
	return r.Err()
}

// AbortedTransaction is always emitted empty by this broker: transaction
// support is out of scope.
type AbortedTransaction struct {
	ProducerID int64
	FirstOffset int64
}

// AppendTo appends this AbortedTransaction's encoding, including its
// trailing tag buffer.
func (a AbortedTransaction) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt64(dst, a.ProducerID)
	dst = kbin.AppendInt64(dst, a.FirstOffset)
	return kbin.AppendTagBuffer(dst)
}

// FetchResponsePartition is one partition entry within a
// FetchResponseTopic. Records is the raw, verbatim partition log payload
// lifted from disk; this broker never re-parses it once read.
type FetchResponsePartition struct {
	PartitionIndex       int32
	ErrorCode            *kerr.Error
	HighWatermark        int64
	LastStableOffset     int64
	LogStartOffset       int64
	AbortedTransactions  []AbortedTransaction
	PreferredReadReplica int32
	Records              []byte
}

// AppendTo appends this FetchResponsePartition's encoding, including its
// trailing tag buffer.
func (p FetchResponsePartition) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt32(dst, p.PartitionIndex)
	dst = kbin.AppendInt16(dst, p.ErrorCode.Code)
	dst = kbin.AppendInt64(dst, p.HighWatermark)
	dst = kbin.AppendInt64(dst, p.LastStableOffset)
	dst = kbin.AppendInt64(dst, p.LogStartOffset)
	dst = kbin.AppendCompactArray(dst, p.AbortedTransactions)
	dst = kbin.AppendInt32(dst, p.PreferredReadReplica)
	dst = kbin.AppendCompactBytes(dst, p.Records)
	return kbin.AppendTagBuffer(dst)
}

// FetchResponseTopic is one topic entry within a FetchResponse.
type FetchResponseTopic struct {
	TopicID    [16]byte
	Partitions []FetchResponsePartition
}

// AppendTo appends this FetchResponseTopic's encoding, including its
// trailing tag buffer.
func (t FetchResponseTopic) AppendTo(dst []byte) []byte {
	dst = kbin.AppendUuid(dst, t.TopicID)
	dst = kbin.AppendCompactArray(dst, t.Partitions)
	return kbin.AppendTagBuffer(dst)
}

// FetchResponse is the Fetch v16 response body.
type FetchResponse struct {
	ThrottleTimeMs int32
	ErrorCode      *kerr.Error
	SessionID      int32
	Responses      []FetchResponseTopic
}

// AppendTo appends this FetchResponse's body encoding, including its
// trailing tag buffer. ErrorCode stays NO_ERROR at this level even when a
// partition below reports UNKNOWN_TOPIC.
func (resp FetchResponse) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt32(dst, resp.ThrottleTimeMs)
	dst = kbin.AppendInt16(dst, resp.ErrorCode.Code)
	dst = kbin.AppendInt32(dst, resp.SessionID)
	dst = kbin.AppendCompactArray(dst, resp.Responses)
	return kbin.AppendTagBuffer(dst)
}
