// Package middleware holds the Connect interceptors shared by every service.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/vcom/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and observes its latency. Unary and server-streaming handlers are covered.
func LoggingInterceptor() connect.Interceptor {
	return &loggingInterceptor{}
}

type loggingInterceptor struct{}

func (i *loggingInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		observe(req.Spec().Procedure, start, err)
		return resp, err
	}
}

func (i *loggingInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *loggingInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		err := next(ctx, conn)
		observe(conn.Spec().Procedure, start, err)
		return err
	}
}

// observe logs the outcome of one call and records it in RPCDuration.
func observe(procedure string, start time.Time, err error) {
	elapsed := time.Since(start)
	duration := elapsed.Milliseconds()

	code := "ok"
	if err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			code = connectErr.Code().String()
			slog.Warn("RPC error",
				"procedure", procedure,
				"code", connectErr.Code(),
				"error", connectErr.Message(),
				"duration_ms", duration,
			)
		} else {
			code = connect.CodeUnknown.String()
			slog.Error("RPC error",
				"procedure", procedure,
				"error", err,
				"duration_ms", duration,
			)
		}
	} else {
		slog.Info("RPC ok",
			"procedure", procedure,
			"duration_ms", duration,
		)
	}

	metrics.RPCDuration.WithLabelValues(procedure, code).Observe(elapsed.Seconds())
}
