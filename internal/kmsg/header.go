// Package kmsg holds the typed request/response schemas for the three API
// keys this broker understands, built on top of kbin. Each type implements
// ReadFrom (request-side decode) or AppendTo (response-side encode), the
// same split franz-go's kmsg package draws between its generated Request
// and Response types.
package kmsg

import "github.com/moband/kaf-broker/internal/kbin"

// RequestHeader is the common prefix of every request this broker reads.
// All three supported API keys use a flexible-version (v2) header, so a
// tag buffer always trails client_id.
type RequestHeader struct {
	ApiKey        int16
	ApiVersion    int16
	CorrelationID int32
	ClientID      *string
}

// ReadFrom decodes a RequestHeader from r.
func (h *RequestHeader) ReadFrom(r *kbin.Reader) error {
	h.ApiKey = r.Int16()
	h.ApiVersion = r.Int16()
	h.CorrelationID = r.Int32()
	h.ClientID = r.NullableString()
	r.TagBuffer()
	return r.Err()
}
