package broker

import (
	"github.com/pkg/errors"

	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kerr"
	"github.com/moband/kaf-broker/internal/kmsg"
)

// supportedApiKeys is the fixed set this broker advertises in every
// ApiVersions response, in error or not.
var supportedApiKeys = []kmsg.ApiKeyEntry{
	{ApiKey: apiKeyFetch, MinVersion: 0, MaxVersion: 16},
	{ApiKey: apiKeyApiVersions, MinVersion: 0, MaxVersion: 4},
	{ApiKey: apiKeyDescribeTopicPartitions, MinVersion: 0, MaxVersion: 0},
}

func (h *Handler) handleApiVersions(hdr *kmsg.RequestHeader, r *kbin.Reader) ([]byte, error) {
	var req kmsg.ApiVersionsRequest
	if err := req.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "decode ApiVersions request")
	}

	errCode := kerr.NoError
	if hdr.ApiVersion < 0 || hdr.ApiVersion > 4 {
		errCode = kerr.UnsupportedVersion
	}

	resp := kmsg.ApiVersionsResponse{
		ErrorCode:      errCode.Code,
		ApiKeys:        supportedApiKeys,
		ThrottleTimeMs: 0,
	}
	return resp.AppendTo(nil), nil
}
