package rpcserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/migchat/server/internal/chatroom"
	"github.com/migchat/server/internal/codec"
	"github.com/migchat/server/internal/rpc/migchat"
)

// Server binds the migchat ChatRoomService to a gRPC server listening on a
// TCP address.
type Server struct {
	addr   string
	grpc   *grpc.Server
	logger *slog.Logger
	ready  chan net.Addr
}

// New constructs a Server around an already-wired ChatRoom. A nil logger
// is replaced by slog.Default().
func New(cr *chatroom.ChatRoom, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "rpcserver", "instance", uuid.NewString())

	grpcServer := grpc.NewServer(
		grpc.ForceServerCodec(codec.JSON{}),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    15 * time.Second,
			Timeout: 5 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(loggingUnaryInterceptor(logger)),
		grpc.ChainStreamInterceptor(loggingStreamInterceptor(logger)),
	)

	grpcServer.RegisterService(&migchat.ChatRoomService_ServiceDesc, &chatRoomServer{cr: cr, logger: logger})

	return &Server{addr: addr, grpc: grpcServer, logger: logger, ready: make(chan net.Addr, 1)}
}

// Ready yields the bound address once Serve has successfully listened;
// useful in tests that bind to "127.0.0.1:0" and need the ephemeral port.
func (s *Server) Ready() <-chan net.Addr {
	return s.ready
}

// Serve binds the listening address and blocks, serving RPCs until Shutdown
// stops the server or Serve itself fails to bind.
func (s *Server) Serve() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	s.logger.Info("rpc server listening", "addr", ln.Addr().String())
	s.ready <- ln.Addr()
	if err := s.grpc.Serve(ln); err != nil {
		return fmt.Errorf("serving rpc: %w", err)
	}
	return nil
}

// Shutdown stops accepting new RPCs and waits for in-flight ones to finish,
// falling back to a hard stop if ctx expires first.
func (s *Server) Shutdown(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.logger.Warn("graceful stop timed out, forcing shutdown")
		s.grpc.Stop()
	}
}
