package broker

import (
	"github.com/pkg/errors"

	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kmsg"
)

func (h *Handler) handleDescribeTopicPartitions(r *kbin.Reader) ([]byte, error) {
	var req kmsg.DescribeTopicPartitionsRequest
	if err := req.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "decode DescribeTopicPartitions request")
	}

	resp := kmsg.DescribeTopicPartitionsResponse{
		ThrottleTimeMs: 0,
		Topics:         h.Log.DescribeTopicPartitions(req.Topics),
		NextCursor:     nil,
	}
	return resp.AppendTo(nil), nil
}
