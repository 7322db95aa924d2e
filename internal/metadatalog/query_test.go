package metadatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moband/kaf-broker/internal/kerr"
)

func TestDescribeTopicPartitionsUnknownTopic(t *testing.T) {
	path := writeLogFile(t, buildBatch(nil))
	l := New(path)
	require.NoError(t, l.Load(context.Background()))

	topics := l.DescribeTopicPartitions([]string{"nope"})
	require.Len(t, topics, 1)
	assert.Equal(t, kerr.UnknownTopicOrPartition, topics[0].ErrorCode)
	require.NotNil(t, topics[0].Name)
	assert.Equal(t, "nope", *topics[0].Name)
	assert.Equal(t, [16]byte{}, topics[0].TopicID)
	assert.Empty(t, topics[0].Partitions)
}

func TestDescribeTopicPartitionsFoundWithTwoPartitions(t *testing.T) {
	uuid := [16]byte{0xCC}
	batch := buildBatch([][]byte{
		buildRecord(recordTypeTopic, appendTopicRecordBody(nil, "foo", uuid)),
		buildRecord(recordTypePartition, appendPartitionRecordBody(nil, 0, uuid, []int32{1, 2}, []int32{1, 2}, 1, 0)),
		buildRecord(recordTypePartition, appendPartitionRecordBody(nil, 1, uuid, []int32{2, 3}, []int32{2, 3}, 2, 0)),
	})
	path := writeLogFile(t, batch)
	l := New(path)
	require.NoError(t, l.Load(context.Background()))

	topics := l.DescribeTopicPartitions([]string{"foo"})
	require.Len(t, topics, 1)
	assert.Equal(t, kerr.NoError, topics[0].ErrorCode)
	assert.Equal(t, "foo", *topics[0].Name)
	assert.Equal(t, uuid, topics[0].TopicID)
	require.Len(t, topics[0].Partitions, 2)
	assert.Equal(t, int32(0), topics[0].Partitions[0].PartitionIndex)
	assert.Equal(t, []int32{1, 2}, topics[0].Partitions[0].ReplicaNodes)
	assert.Equal(t, int32(1), topics[0].Partitions[1].PartitionIndex)
	assert.Equal(t, []int32{2, 3}, topics[0].Partitions[1].IsrNodes)
}

func TestMessageReadsTopicLogVerbatim(t *testing.T) {
	uuid := [16]byte{0x01}
	batch := buildBatch([][]byte{buildRecord(recordTypeTopic, appendTopicRecordBody(nil, "foo", uuid))})
	path := writeLogFile(t, batch)
	l := New(path)
	require.NoError(t, l.Load(context.Background()))

	dataDir := t.TempDir()
	topicDir := filepath.Join(dataDir, "foo-0")
	require.NoError(t, os.MkdirAll(topicDir, 0o755))
	want := []byte("some record batch bytes")
	require.NoError(t, os.WriteFile(filepath.Join(topicDir, partitionLogFile), want, 0o644))

	got, err := l.Message(uuid, dataDir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFetchTopicsKnownTopic(t *testing.T) {
	uuid := [16]byte{0x02}
	batch := buildBatch([][]byte{buildRecord(recordTypeTopic, appendTopicRecordBody(nil, "foo", uuid))})
	path := writeLogFile(t, batch)
	l := New(path)
	require.NoError(t, l.Load(context.Background()))

	dataDir := t.TempDir()
	topicDir := filepath.Join(dataDir, "foo-0")
	require.NoError(t, os.MkdirAll(topicDir, 0o755))
	want := []byte("verbatim bytes")
	require.NoError(t, os.WriteFile(filepath.Join(topicDir, partitionLogFile), want, 0o644))

	responses := l.FetchTopics(requestTopics(uuid), dataDir)
	require.Len(t, responses, 1)
	require.Len(t, responses[0].Partitions, 1)
	assert.Equal(t, kerr.NoError, responses[0].Partitions[0].ErrorCode)
	assert.Equal(t, want, responses[0].Partitions[0].Records)
}

func TestFetchTopicsUnknownTopicID(t *testing.T) {
	path := writeLogFile(t, buildBatch(nil))
	l := New(path)
	require.NoError(t, l.Load(context.Background()))

	var missing [16]byte
	missing[0] = 0xFF
	responses := l.FetchTopics(requestTopics(missing), t.TempDir())
	require.Len(t, responses, 1)
	require.Len(t, responses[0].Partitions, 1)
	assert.Equal(t, kerr.UnknownTopic, responses[0].Partitions[0].ErrorCode)
	assert.Empty(t, responses[0].Partitions[0].Records)
}

func TestFetchTopicsNoTopicsRequested(t *testing.T) {
	path := writeLogFile(t, buildBatch(nil))
	l := New(path)
	require.NoError(t, l.Load(context.Background()))

	assert.Empty(t, l.FetchTopics(nil, t.TempDir()))
}
