// Package broker implements the per-connection request/response loop: it
// frames requests and responses, decodes the request header, and dispatches
// by API key to the ApiVersions, DescribeTopicPartitions, and Fetch
// handlers, generalizing the teacher's internal/kafka.RequestHandler into a
// schema-driven dispatcher over kmsg and metadatalog.
package broker

import (
	"io"
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/moband/kaf-broker/internal/kbin"
	"github.com/moband/kaf-broker/internal/kmsg"
	"github.com/moband/kaf-broker/internal/metadatalog"
	"github.com/moband/kaf-broker/internal/metrics"
	"github.com/moband/kaf-broker/pkg/logger"
)

const (
	apiKeyFetch                   = 1
	apiKeyApiVersions             = 18
	apiKeyDescribeTopicPartitions = 75
)

// Handler serves requests on accepted connections; a single Handler is
// shared by every connection. It holds no per-connection mutable state:
// the socket is passed to HandleConnection, and ClusterMetadataLog, the only
// state shared across connections, manages its own locking.
type Handler struct {
	Log     *metadatalog.ClusterMetadataLog
	DataDir string
	Metrics *metrics.Metrics
	Logger  *logger.Logger
}

// New returns a Handler backed by the given metadata log and per-topic log
// directory.
func New(log *metadatalog.ClusterMetadataLog, dataDir string, m *metrics.Metrics, lg *logger.Logger) *Handler {
	return &Handler{Log: log, DataDir: dataDir, Metrics: m, Logger: lg}
}

// HandleConnection reads and answers requests on conn until the peer closes
// the connection or an error occurs, at which point it closes conn and
// returns. Request/response ordering on a single connection is strict: the
// next frame is not read until the previous response has been written.
func (h *Handler) HandleConnection(conn net.Conn) {
	defer conn.Close()
	h.Metrics.ConnectionsTotal.Inc()

	remote := conn.RemoteAddr().String()
	log := h.Logger.WithFields(map[string]any{"remote_addr": remote})

	for {
		raw, err := readFrame(conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			log.Error("read request frame: %v", err)
			return
		}

		resp, err := h.handleRequest(raw, log)
		if err != nil {
			log.Error("handle request: %v", err)
			return
		}

		if err := writeFrame(conn, resp); err != nil {
			log.Error("write response frame: %v", err)
			return
		}
	}
}

// handleRequest decodes a request header, dispatches to the matching
// handler, and assembles the framed response body: correlation_id, the
// response-header tag buffer (omitted for ApiVersions only), then the
// handler's body.
func (h *Handler) handleRequest(raw []byte, log *logger.Logger) ([]byte, error) {
	r := kbin.NewReader(raw)
	var hdr kmsg.RequestHeader
	if err := hdr.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "decode request header")
	}

	apiKeyLabel := strconv.Itoa(int(hdr.ApiKey))
	timer := prometheus.NewTimer(h.Metrics.RequestDuration.WithLabelValues(apiKeyLabel))
	defer timer.ObserveDuration()
	h.Metrics.RequestsTotal.WithLabelValues(apiKeyLabel).Inc()

	log = log.WithFields(map[string]any{
		"api_key":        hdr.ApiKey,
		"api_version":    hdr.ApiVersion,
		"correlation_id": hdr.CorrelationID,
	})
	log.Debug("request")

	var body []byte
	var err error
	omitHeaderTagBuffer := false

	switch hdr.ApiKey {
	case apiKeyApiVersions:
		body, err = h.handleApiVersions(&hdr, r)
		omitHeaderTagBuffer = true
	case apiKeyDescribeTopicPartitions:
		body, err = h.handleDescribeTopicPartitions(r)
	case apiKeyFetch:
		body, err = h.handleFetch(r)
	default:
		return nil, errors.Errorf("unknown api key %d", hdr.ApiKey)
	}
	if err != nil {
		return nil, err
	}

	out := kbin.AppendInt32(nil, hdr.CorrelationID)
	if !omitHeaderTagBuffer {
		out = kbin.AppendTagBuffer(out)
	}
	out = append(out, body...)
	return out, nil
}
