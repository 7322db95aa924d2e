// Package metadatalog parses the on-disk KRaft cluster metadata log and
// answers the read-side queries DescribeTopicPartitions and Fetch need.
// ClusterMetadataLog is process-wide shared state: loading is deferred to
// first use, idempotent, and guarded by a mutex; once loaded the batch list
// is immutable for the rest of the process's life.
package metadatalog

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/moband/kaf-broker/internal/kbin"
)

// ClusterMetadataLog is a lazily-loaded, read-only view over the metadata
// log file at path.
type ClusterMetadataLog struct {
	path string

	mu      sync.Mutex
	loaded  bool
	batches []Batch
}

// New returns a ClusterMetadataLog for the log file at path. It does not
// touch the filesystem until Load is called.
func New(path string) *ClusterMetadataLog {
	return &ClusterMetadataLog{path: path}
}

// Load opens and parses the metadata log file the first time it is called;
// later calls are no-ops once loading has succeeded. A failed load leaves
// the log Unloaded so the caller's current request can fail without
// poisoning future attempts... except this broker treats a load failure as
// fatal to the process on first use, per its error handling policy.
func (l *ClusterMetadataLog) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return errors.Wrapf(err, "open metadata log at %s", l.path)
	}
	defer f.Close()

	raw, err := io.ReadAll(bufio.NewReader(f))
	if err != nil {
		return errors.Wrap(err, "read metadata log")
	}

	r := kbin.NewReader(raw)
	var batches []Batch
	for r.Len() > 0 {
		b, err := parseBatch(r)
		if err != nil {
			return errors.Wrap(err, "parse metadata log batch")
		}
		batches = append(batches, *b)
	}

	l.batches = batches
	l.loaded = true
	return nil
}

func (l *ClusterMetadataLog) snapshot() []Batch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.batches
}

// Records returns a flat, file-ordered sequence of every record body across
// every batch.
func (l *ClusterMetadataLog) Records() []RecordBody {
	batches := l.snapshot()
	var out []RecordBody
	for _, b := range batches {
		for _, rec := range b.Records {
			out = append(out, rec.Value)
		}
	}
	return out
}

// Topics returns every TopicRecord in the log, in file order.
func (l *ClusterMetadataLog) Topics() []*TopicRecord {
	var out []*TopicRecord
	for _, rec := range l.Records() {
		if t, ok := rec.(*TopicRecord); ok {
			out = append(out, t)
		}
	}
	return out
}

func (l *ClusterMetadataLog) topicName(topicID [16]byte) (string, bool) {
	for _, t := range l.Topics() {
		if t.TopicUUID == topicID {
			return t.TopicName, true
		}
	}
	return "", false
}
