// Package recordcodec decompresses Kafka record-batch payloads. A batch's
// attributes field carries the compression codec in its low 3 bits, the
// same layout franz-go's kgo.RecordAttrs.CompressionType exposes; this
// package turns that code into the bytes metadatalog actually parses
// records from.
package recordcodec

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Codec identifies a record-batch compression scheme, taken from the low 3
// bits of a Batch's attributes field.
type Codec uint8

const (
	CodecNone   Codec = 0
	CodecGzip   Codec = 1
	CodecSnappy Codec = 2
	CodecLZ4    Codec = 3
	CodecZstd   Codec = 4
)

// CodecFromAttributes extracts the compression codec from a batch's raw
// attributes bits.
func CodecFromAttributes(attributes int16) Codec {
	return Codec(attributes & 0x07)
}

// Decompress returns src's records payload decompressed per codec. CodecNone
// returns src unchanged without copying.
func Decompress(codec Codec, src []byte) ([]byte, error) {
	switch codec {
	case CodecNone:
		return src, nil
	case CodecGzip:
		zr, err := gzip.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, errors.Wrap(err, "open gzip record payload")
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, errors.Wrap(err, "inflate gzip record payload")
		}
		return out, nil
	case CodecSnappy:
		out, err := snappy.Decode(nil, src)
		if err != nil {
			return nil, errors.Wrap(err, "inflate snappy record payload")
		}
		return out, nil
	case CodecLZ4:
		zr := lz4.NewReader(bytes.NewReader(src))
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, errors.Wrap(err, "inflate lz4 record payload")
		}
		return out, nil
	case CodecZstd:
		zr, err := zstd.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, errors.Wrap(err, "open zstd record payload")
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, errors.Wrap(err, "inflate zstd record payload")
		}
		return out, nil
	default:
		return nil, errors.Errorf("unknown record batch compression codec %d", codec)
	}
}
