package metadatalog

import (
	"github.com/pkg/errors"

	"github.com/moband/kaf-broker/internal/kbin"
)

// RecordBody is the closed set of record payloads this broker's metadata
// log can contain. It is a tagged variant keyed by the wire record_type
// byte, not an inheritance hierarchy: forbid unknown discriminants at
// parse time rather than modeling them away.
type RecordBody interface {
	recordBody()
}

const (
	recordTypeTopic        = 2
	recordTypePartition    = 3
	recordTypeFeatureLevel = 12
)

// TopicRecord names a topic and assigns it a UUID.
type TopicRecord struct {
	TopicName string
	TopicUUID [16]byte
}

func (*TopicRecord) recordBody() {}

// PartitionRecord assigns a partition of a topic to a set of replicas.
type PartitionRecord struct {
	PartitionID      int32
	TopicID          [16]byte
	Replicas         []int32
	Isr              []int32
	RemovingReplicas []int32
	AddingReplicas   []int32
	Leader           int32
	LeaderEpoch      int32
	PartitionEpoch   int32
	Directories      [][16]byte
}

func (*PartitionRecord) recordBody() {}

// FeatureLevelRecord records the cluster's negotiated level for a named
// feature.
type FeatureLevelRecord struct {
	Name         string
	FeatureLevel int16
}

func (*FeatureLevelRecord) recordBody() {}

// recordValueHeader precedes every RecordBody: a frame version, the
// discriminant byte, and the body's own schema version.
type recordValueHeader struct {
	FrameVersion int8
	RecordType   int8
	Version      int8
}

func parseRecordValueHeader(r *kbin.Reader) recordValueHeader {
	return recordValueHeader{
		FrameVersion: r.Int8(),
		RecordType:   r.Int8(),
		Version:      r.Int8(),
	}
}

// parseRecordValue reads a record header followed by its discriminated
// body, then the trailing tag-field count.
func parseRecordValue(r *kbin.Reader) (RecordBody, error) {
	hdr := parseRecordValueHeader(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	var body RecordBody
	switch hdr.RecordType {
	case recordTypeTopic:
		body = &TopicRecord{
			TopicName: r.CompactString(),
			TopicUUID: r.Uuid(),
		}
	case recordTypePartition:
		body = &PartitionRecord{
			PartitionID:      r.Int32(),
			TopicID:          r.Uuid(),
			Replicas:         kbin.ReadCompactInt32Array(r),
			Isr:              kbin.ReadCompactInt32Array(r),
			RemovingReplicas: kbin.ReadCompactInt32Array(r),
			AddingReplicas:   kbin.ReadCompactInt32Array(r),
			Leader:           r.Int32(),
			LeaderEpoch:      r.Int32(),
			PartitionEpoch:   r.Int32(),
			Directories:      kbin.ReadCompactUuidArray(r),
		}
	case recordTypeFeatureLevel:
		body = &FeatureLevelRecord{
			Name:         r.CompactString(),
			FeatureLevel: r.Int16(),
		}
	default:
		return nil, errors.Errorf("unknown metadata record type %d", hdr.RecordType)
	}
	r.TagBuffer()
	if err := r.Err(); err != nil {
		return nil, err
	}
	return body, nil
}

// record is one entry within a Batch's records section.
type record struct {
	Length         int32
	Attributes     int8
	TimestampDelta int64
	OffsetDelta    int32
	ValueLength    int32
	Value          RecordBody
}

// parseRecord reads one record. length and value_length are advisory byte
// counts in the source this is grounded on; this parser reads fields
// sequentially rather than bounding the read to them. The record's key is
// always present as a compact string and is discarded: this broker has no
// use for it.
func parseRecord(r *kbin.Reader) (*record, error) {
	rec := &record{
		Length:         r.Varint(),
		Attributes:     r.Int8(),
		TimestampDelta: int64(r.UnsignedVarlong()),
		OffsetDelta:    r.Varint(),
	}
	r.CompactString() // key, discarded
	rec.ValueLength = r.Varint()
	value, err := parseRecordValue(r)
	if err != nil {
		return nil, err
	}
	rec.Value = value
	r.UnsignedVarint() // headers count; this broker never emits or expects headers
	if err := r.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}
