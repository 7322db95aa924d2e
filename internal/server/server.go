// Package server provides the TCP accept loop for the Kafka broker.
package server

import (
	"fmt"
	"net"
	"sync"

	"github.com/moband/kaf-broker/internal/broker"
	"github.com/moband/kaf-broker/pkg/logger"
)

// Config holds server configuration
type Config struct {
	BindAddr string
}

// Server represents a Kafka broker's TCP front end
type Server struct {
	config    Config
	logger    *logger.Logger
	listener  net.Listener
	handler   *broker.Handler
	wg        sync.WaitGroup
	clients   map[string]net.Conn
	clientsMu sync.Mutex
	shutdown  chan struct{}
}

// New creates a new Kafka broker server
func New(config Config, handler *broker.Handler, logger *logger.Logger) *Server {
	return &Server{
		config:   config,
		logger:   logger,
		handler:  handler,
		clients:  make(map[string]net.Conn),
		shutdown: make(chan struct{}),
	}
}

// Start starts the Kafka broker server
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.BindAddr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.config.BindAddr, err)
	}

	s.listener = listener
	s.logger.Info("kaf-broker listening on %s", s.config.BindAddr)

	s.wg.Add(1)
	go s.acceptConnections()

	return nil
}

// Stop stops the Kafka broker server
func (s *Server) Stop() error {
	close(s.shutdown)

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.logger.Error("error closing listener: %s", err.Error())
		}
	}

	s.clientsMu.Lock()
	for _, conn := range s.clients {
		if err := conn.Close(); err != nil {
			s.logger.Error("error closing client connection: %s", err.Error())
		}
	}
	s.clientsMu.Unlock()

	s.wg.Wait()

	s.logger.Info("kaf-broker stopped")
	return nil
}

// acceptConnections accepts incoming connections
func (s *Server) acceptConnections() {
	defer s.wg.Done()

	for {
		select {
		case <-s.shutdown:
			return
		default:
		}

		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				s.logger.Error("error accepting connection: %s", err.Error())
				continue
			}
		}

		clientAddr := conn.RemoteAddr().String()
		s.registerClient(clientAddr, conn)

		s.wg.Add(1)
		go s.handleConnection(clientAddr, conn)
	}
}

// registerClient registers a client connection
func (s *Server) registerClient(addr string, conn net.Conn) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	s.clients[addr] = conn
	s.logger.Info("new connection from: %s", addr)
}

// unregisterClient removes a client connection
func (s *Server) unregisterClient(addr string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	delete(s.clients, addr)
	s.logger.Info("connection closed: %s", addr)
}

// handleConnection runs the broker's per-connection request/response loop
// until the peer disconnects or a fatal error occurs.
func (s *Server) handleConnection(addr string, conn net.Conn) {
	defer func() {
		s.unregisterClient(addr)
		s.wg.Done()
	}()

	s.handler.HandleConnection(conn)
}
