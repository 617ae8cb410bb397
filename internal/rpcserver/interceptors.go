package rpcserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// wrappedServerStream lets a stream interceptor substitute the context a
// handler sees without touching the stream's framing. The logging
// interceptor below passes the stream's own context through unchanged; the
// per-call correlation id appears only on the interceptor's log lines.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context { return w.ctx }

// loggingUnaryInterceptor logs every unary RPC's method, duration, and
// resulting status code.
func loggingUnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("unary rpc",
			"method", info.FullMethod,
			"duration", time.Since(start),
			"code", status.Code(err).String(),
		)
		return resp, err
	}
}

// loggingStreamInterceptor logs every streaming RPC's method, duration, and
// resulting status code once the stream ends.
func loggingStreamInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		correlationID := uuid.NewString()
		callLogger := logger.With("method", info.FullMethod, "correlation_id", correlationID)
		wrapped := &wrappedServerStream{ServerStream: ss, ctx: ss.Context()}

		start := time.Now()
		callLogger.Debug("stream rpc started")
		err := handler(srv, wrapped)
		callLogger.Debug("stream rpc finished",
			"duration", time.Since(start),
			"code", status.Code(err).String(),
		)
		return err
	}
}
