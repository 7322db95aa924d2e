package metadatalog

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/moband/kaf-broker/internal/kerr"
	"github.com/moband/kaf-broker/internal/kmsg"
)

// partitionLogFile is the well-known filename every per-topic partition-0
// log uses under its topic directory.
const partitionLogFile = "00000000000000000000.log"

// Message returns the verbatim bytes of topicID's partition-0 log file
// under dataDir, resolving topicID to a topic name via the metadata log
// first.
func (l *ClusterMetadataLog) Message(topicID [16]byte, dataDir string) ([]byte, error) {
	name, ok := l.topicName(topicID)
	if !ok {
		return nil, errors.Errorf("no topic record for id %x", topicID)
	}
	path := filepath.Join(dataDir, name+"-0", partitionLogFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read topic log %s", path)
	}
	return data, nil
}

// DescribeTopicPartitions answers a DescribeTopicPartitions query: a
// single pass over Records() with a single-element current-topic cursor.
// Topics appear in the order they were encountered in the log, not in
// request order. If no requested name matches any TopicRecord, the result
// is one stub Topic for the first requested name reporting
// UNKNOWN_TOPIC_OR_PARTITION; otherwise unmatched names are left out.
func (l *ClusterMetadataLog) DescribeTopicPartitions(requested []string) []kmsg.Topic {
	wanted := make(map[string]bool, len(requested))
	for _, name := range requested {
		wanted[name] = true
	}

	var topics []kmsg.Topic
	var currentTopicID [16]byte
	haveCurrent := false

	for _, rec := range l.Records() {
		switch body := rec.(type) {
		case *TopicRecord:
			if !wanted[body.TopicName] {
				continue
			}
			name := body.TopicName
			topics = append(topics, kmsg.Topic{
				ErrorCode: kerr.NoError,
				Name:      &name,
				TopicID:   body.TopicUUID,
			})
			currentTopicID = body.TopicUUID
			haveCurrent = true
		case *PartitionRecord:
			if !haveCurrent || body.TopicID != currentTopicID {
				continue
			}
			last := len(topics) - 1
			topics[last].Partitions = append(topics[last].Partitions, kmsg.Partition{
				ErrorCode:      kerr.NoError,
				PartitionIndex: body.PartitionID,
				LeaderID:       body.Leader,
				LeaderEpoch:    body.LeaderEpoch,
				ReplicaNodes:   body.Replicas,
				IsrNodes:       body.Isr,
			})
		}
	}

	if len(topics) == 0 {
		var name string
		if len(requested) > 0 {
			name = requested[0]
		}
		topics = append(topics, kmsg.Topic{
			ErrorCode: kerr.UnknownTopicOrPartition,
			Name:      &name,
		})
	}
	return topics
}

// FetchTopics answers a Fetch query for the first requested topic only,
// reading its raw partition-0 log from dataDir. A request with no topics
// yields an empty response.
func (l *ClusterMetadataLog) FetchTopics(topics []kmsg.FetchRequestTopic, dataDir string) []kmsg.FetchResponseTopic {
	if len(topics) == 0 {
		return nil
	}
	t := topics[0]

	var partitionIndex int32
	if len(t.Partitions) > 0 {
		partitionIndex = t.Partitions[0].Partition
	}

	data, err := l.Message(t.TopicID, dataDir)
	errCode := kerr.NoError
	if err != nil || len(data) == 0 {
		data = nil
		errCode = kerr.UnknownTopic
	}

	return []kmsg.FetchResponseTopic{{
		TopicID: t.TopicID,
		Partitions: []kmsg.FetchResponsePartition{{
			PartitionIndex:       partitionIndex,
			ErrorCode:            errCode,
			PreferredReadReplica: -1,
			Records:              data,
		}},
	}}
}
