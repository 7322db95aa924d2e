// Package kerr holds the Kafka protocol error codes this broker can return,
// modeled on franz-go's kerr package: a small Error type carrying the
// numeric code alongside a human description, with a lookup from code to
// Error.
package kerr

import "fmt"

// Error is a Kafka protocol error code paired with its description.
type Error struct {
	Message     string
	Code        int16
	Retriable   bool
	Description string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Description)
}

var (
	// NoError is the zero error code: the request was handled without a
	// protocol-level problem.
	NoError = &Error{"NO_ERROR", 0, false, "No error."}

	// UnknownTopicOrPartition is returned when a request names a
	// partition this broker's metadata log has no record of.
	UnknownTopicOrPartition = &Error{"UNKNOWN_TOPIC_OR_PARTITION", 3, true,
		"This server does not host this topic-partition."}

	// UnsupportedVersion is returned when a request's declared API
	// version falls outside the range this broker implements for that
	// API key.
	UnsupportedVersion = &Error{"UNSUPPORTED_VERSION", 35, false,
		"The version of API is not supported."}

	// UnknownTopic is returned when a request names a topic this
	// broker's metadata log has no record of.
	UnknownTopic = &Error{"UNKNOWN_TOPIC", 100, false,
		"The request attempted to perform an operation on an unknown topic."}
)

var byCode = map[int16]*Error{
	NoError.Code:                 NoError,
	UnknownTopicOrPartition.Code: UnknownTopicOrPartition,
	UnsupportedVersion.Code:      UnsupportedVersion,
	UnknownTopic.Code:            UnknownTopic,
}

// ErrorForCode returns the Error registered for code, or an unrecognized
// placeholder if this broker does not know the code. It never panics: codes
// arrive from parsed bytes and may legitimately be outside the small set
// this broker emits itself.
func ErrorForCode(code int16) *Error {
	if e, ok := byCode[code]; ok {
		return e
	}
	return &Error{"UNKNOWN_ERROR", code, false, "Unrecognized error code."}
}
