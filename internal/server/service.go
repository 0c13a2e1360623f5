package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"sync"
	"time"

	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/pkg/errorcode"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const readBufferSize = 4096

var ErrLineTooLong = errorcode.New(errorcode.LineTooLong, "message exceeds the maximum line length")

// Handler turns parser output into reply lines. *broker.Service satisfies it.
type Handler interface {
	Handle(ctx context.Context, cmd redisish.Command, client string) string
	Reject(err error, client string) string
}

type Config struct {
	Address string
	// MaxLineLength bounds the bytes buffered for a single line. Zero
	// disables the limit.
	MaxLineLength int
	// IdleTimeout closes connections that send nothing for this long. Zero
	// disables the timeout.
	IdleTimeout time.Duration
}

type Service struct {
	logger  *logrus.Logger
	parser  redisish.Parser
	handler Handler
	cfg     Config

	conns sync.WaitGroup
}

func New(logger *logrus.Logger, parser redisish.Parser, handler Handler, cfg Config) *Service {
	return &Service{
		logger:  logger,
		parser:  parser,
		handler: handler,
		cfg:     cfg,
	}
}

// Run listens on the configured address until done receives a value.
func (s *Service) Run(done chan bool, wg *sync.WaitGroup) {

	defer wg.Done()

	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		s.logger.WithError(err).WithField("addr", s.cfg.Address).Error("failed to open listener")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ctx, listener)
	}()

	s.logger.WithField("addr", listener.Addr().String()).Info("listener initialized successfully, accepting connections")

	select {
	case <-done:
		s.logger.WithField("service", "server").Info("hold channel received value, closing listener")
	case err := <-errCh:
		s.logger.WithError(err).Error("server stopped accepting connections")
		return
	}

	cancel()
	if err := <-errCh; err != nil {
		s.logger.WithError(err).Error("server did not shut down cleanly")
	}

}

// Serve accepts connections on listener until ctx is cancelled, then
// closes every open connection and waits for their handlers to return.
func (s *Service) Serve(ctx context.Context, listener net.Listener) error {

	defer s.conns.Wait()

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return errors.Wrap(err, "failed to accept connection")
		}

		s.conns.Add(1)
		go s.handleConnection(ctx, conn)
	}

}

func (s *Service) handleConnection(ctx context.Context, conn net.Conn) {

	defer s.conns.Done()

	client := conn.RemoteAddr().String()
	entry := s.logger.WithField("client", client)
	entry.Debug("client connected")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		_ = conn.Close()
	}()

	buf := make([]byte, readBufferSize)
	pending := make([]byte, 0, readBufferSize)

	for {
		if s.cfg.IdleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))
		}

		n, err := conn.Read(buf)
		if n > 0 {
			var open bool
			pending, open = s.drain(ctx, conn, append(pending, buf[:n]...), client)
			if !open {
				return
			}
		}

		if err != nil {
			switch {
			case ctx.Err() != nil:
			case errors.Is(err, io.EOF):
				if len(pending) > 0 {
					entry.WithField("bytes", len(pending)).Debug("client disconnected with an incomplete message")
				}
			case isTimeout(err):
				entry.Info("closing idle connection")
			default:
				entry.WithError(err).Warn("failed to read from connection")
			}
			entry.Debug("client disconnected")
			return
		}
	}

}

// drain answers every complete line held in pending and returns the bytes
// left over. The bool is false once the connection should be closed.
func (s *Service) drain(ctx context.Context, conn net.Conn, pending []byte, client string) ([]byte, bool) {

	for {
		cmd, err := s.parser.ParseMessage(string(pending))
		if redisish.IsIncomplete(err) {
			if s.tooLong(len(pending)) {
				s.reply(conn, s.handler.Reject(ErrLineTooLong, client), client)
				return nil, false
			}
			return pending, true
		}

		end := bytes.IndexByte(pending, '\n')
		if s.tooLong(end) {
			s.reply(conn, s.handler.Reject(ErrLineTooLong, client), client)
			return nil, false
		}
		pending = append(pending[:0], pending[end+1:]...)

		var reply string
		if err != nil {
			reply = s.handler.Reject(err, client)
		} else {
			reply = s.handler.Handle(ctx, cmd, client)
		}

		if !s.reply(conn, reply, client) {
			return nil, false
		}
	}

}

func (s *Service) tooLong(n int) bool {
	return s.cfg.MaxLineLength > 0 && n > s.cfg.MaxLineLength
}

func (s *Service) reply(conn net.Conn, reply, client string) bool {

	_, err := io.WriteString(conn, reply)
	if err != nil {
		s.logger.WithError(err).WithField("client", client).Warn("failed to write reply")
		return false
	}

	return true

}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
