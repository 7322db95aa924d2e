package kmsg

import "github.com/moband/kaf-broker/internal/kbin"

// ApiVersionsRequest is the ApiVersions v4 request body.
type ApiVersionsRequest struct {
	ClientSoftwareName    string
	ClientSoftwareVersion string
}

// ReadFrom decodes an ApiVersionsRequest from r.
func (req *ApiVersionsRequest) ReadFrom(r *kbin.Reader) error {
	req.ClientSoftwareName = r.CompactString()
	req.ClientSoftwareVersion = r.CompactString()
	r.TagBuffer()
	return r.Err()
}

// ApiKeyEntry describes one API key's supported version range within an
// ApiVersionsResponse.
type ApiKeyEntry struct {
	ApiKey     int16
	MinVersion int16
	MaxVersion int16
}

// AppendTo appends this ApiKeyEntry's encoding, including its own trailing
// tag buffer (it is a nested struct in a flexible-version array).
func (e ApiKeyEntry) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt16(dst, e.ApiKey)
	dst = kbin.AppendInt16(dst, e.MinVersion)
	dst = kbin.AppendInt16(dst, e.MaxVersion)
	return kbin.AppendTagBuffer(dst)
}

// ApiVersionsResponse is the ApiVersions v4 response body.
type ApiVersionsResponse struct {
	ErrorCode      int16
	ApiKeys        []ApiKeyEntry
	ThrottleTimeMs int32
}

// AppendTo appends this ApiVersionsResponse's body encoding, including its
// trailing tag buffer.
func (resp ApiVersionsResponse) AppendTo(dst []byte) []byte {
	dst = kbin.AppendInt16(dst, resp.ErrorCode)
	dst = kbin.AppendCompactArray(dst, resp.ApiKeys)
	dst = kbin.AppendInt32(dst, resp.ThrottleTimeMs)
	return kbin.AppendTagBuffer(dst)
}
