package broker

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kerr"
	"github.com/moband/kaf-broker/internal/kmsg"
)

// handleFetch answers a Fetch request. The top-level error_code always
// stays NO_ERROR, even when the single served partition reports
// UNKNOWN_TOPIC: that per-partition detail does not bubble up to the
// response header.
func (h *Handler) handleFetch(r *kbin.Reader) ([]byte, error) {
	var req kmsg.FetchRequest
	if err := req.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "decode Fetch request")
	}

	for _, t := range req.Topics {
		h.Logger.Debug("fetch topic_id=%s partitions=%d", uuid.UUID(t.TopicID).String(), len(t.Partitions))
	}

	resp := kmsg.FetchResponse{
		ThrottleTimeMs: 0,
		ErrorCode:      kerr.NoError,
		SessionID:      0,
		Responses:      h.Log.FetchTopics(req.Topics, h.DataDir),
	}
	return resp.AppendTo(nil), nil
}
