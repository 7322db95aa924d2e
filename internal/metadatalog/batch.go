package metadatalog

import (
	"github.com/pkg/errors"

	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/recordcodec"
)

// Batch is one Kafka v2 record batch from the metadata log.
type Batch struct {
	BaseOffset         int64
	PartitionLeaderEpoch int32
	MagicByte          int8
	Crc                uint32
	Attributes         int16
	LastOffsetDelta    int32
	BaseTimestamp      int64
	MaxTimestamp       int64
	ProducerID         int64
	ProducerEpoch      int16
	BaseSequence       int32
	Records            []record
}

// parseBatch reads one record batch: base_offset and length bound the
// batch's remaining bytes, which are then parsed as a unit so that a
// compressed records section can be decompressed before its records are
// read.
func parseBatch(r *kbin.Reader) (*Batch, error) {
	baseOffset := r.Int64()
	length := r.Int32()
	body := r.Span(int(length))
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "read batch body")
	}

	br := kbin.NewReader(body)
	b := &Batch{
		BaseOffset:           baseOffset,
		PartitionLeaderEpoch: br.Int32(),
		MagicByte:            br.Int8(),
		Crc:                  uint32(br.Int32()),
		Attributes:           br.Int16(),
		LastOffsetDelta:      br.Int32(),
		BaseTimestamp:        br.Int64(),
		MaxTimestamp:         br.Int64(),
		ProducerID:           br.Int64(),
		ProducerEpoch:        br.Int16(),
		BaseSequence:         br.Int32(),
	}
	recordCount := br.Int32()
	if err := br.Err(); err != nil {
		return nil, errors.Wrap(err, "parse batch header")
	}

	payload, err := recordcodec.Decompress(recordcodec.CodecFromAttributes(b.Attributes), br.Remaining())
	if err != nil {
		return nil, errors.Wrap(err, "decompress batch records")
	}

	rr := kbin.NewReader(payload)
	records := make([]record, recordCount)
	for i := range records {
		rec, err := parseRecord(rr)
		if err != nil {
			return nil, errors.Wrapf(err, "parse record %d", i)
		}
		records[i] = *rec
	}
	b.Records = records
	return b, nil
}
