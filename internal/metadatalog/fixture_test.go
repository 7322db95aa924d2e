package metadatalog

import (
	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kmsg"
)

// requestTopics builds a single-topic Fetch request topics list naming
// topicID, the shape FetchTopics expects as input.
func requestTopics(topicID [16]byte) []kmsg.FetchRequestTopic {
	return []kmsg.FetchRequestTopic{{
		TopicID:    topicID,
		Partitions: []kmsg.FetchRequestPartition{{Partition: 0}},
	}}
}

// The helpers in this file hand-build metadata log bytes for tests. length
// and value_length fields are written as placeholder zeros: this package's
// parser treats them as advisory and never uses them to bound a read, per
// the format this is grounded on.

func appendTopicRecordBody(dst []byte, name string, uuid [16]byte) []byte {
	dst = kbin.AppendCompactString(dst, name)
	return kbin.AppendUuid(dst, uuid)
}

func appendPartitionRecordBody(dst []byte, partitionID int32, topicID [16]byte, replicas, isr []int32, leader, leaderEpoch int32) []byte {
	dst = kbin.AppendInt32(dst, partitionID)
	dst = kbin.AppendUuid(dst, topicID)
	dst = kbin.AppendCompactInt32Array(dst, replicas)
	dst = kbin.AppendCompactInt32Array(dst, isr)
	dst = kbin.AppendCompactInt32Array(dst, nil)
	dst = kbin.AppendCompactInt32Array(dst, nil)
	dst = kbin.AppendInt32(dst, leader)
	dst = kbin.AppendInt32(dst, leaderEpoch)
	dst = kbin.AppendInt32(dst, 0)
	return kbin.AppendCompactUuidArray(dst, nil)
}

func buildRecord(recordType int8, body []byte) []byte {
	rec := kbin.AppendUnsignedVarint(nil, 0) // length, advisory
	rec = kbin.AppendInt8(rec, 0)            // attributes
	rec = kbin.AppendUnsignedVarlong(rec, 0) // timestamp_delta
	rec = kbin.AppendUnsignedVarint(rec, 0)  // offset_delta
	rec = kbin.AppendCompactString(rec, "k") // key, discarded by the parser
	rec = kbin.AppendUnsignedVarint(rec, 0)  // value_length, advisory

	rec = kbin.AppendInt8(rec, 1) // frame_version
	rec = kbin.AppendInt8(rec, recordType)
	rec = kbin.AppendInt8(rec, 0) // body schema version
	rec = append(rec, body...)
	rec = kbin.AppendTagBuffer(rec)

	return kbin.AppendUnsignedVarint(rec, 0) // headers count
}

func buildBatch(records [][]byte) []byte {
	var payload []byte
	for _, r := range records {
		payload = append(payload, r...)
	}

	header := kbin.AppendInt32(nil, 0) // partition_leader_epoch
	header = kbin.AppendInt8(header, 2)
	header = kbin.AppendInt32(header, 0) // crc
	header = kbin.AppendInt16(header, 0) // attributes: codec none
	header = kbin.AppendInt32(header, 0)
	header = kbin.AppendInt64(header, 0)
	header = kbin.AppendInt64(header, 0)
	header = kbin.AppendInt64(header, 0)
	header = kbin.AppendInt16(header, 0)
	header = kbin.AppendInt32(header, 0)
	header = kbin.AppendInt32(header, int32(len(records)))
	header = append(header, payload...)

	out := kbin.AppendInt64(nil, 0)
	out = kbin.AppendInt32(out, int32(len(header)))
	return append(out, header...)
}
