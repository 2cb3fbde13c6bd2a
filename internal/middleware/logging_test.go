package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/vcom/internal/metrics"
)

func TestObserve_RecordsCode(t *testing.T) {
	tests := []struct {
		name      string
		procedure string
		err       error
		code      string
	}{
		{"success", "/test.v1.Svc/Ok", nil, "ok"},
		{"connect error", "/test.v1.Svc/Missing", connect.NewError(connect.CodeNotFound, errors.New("gone")), "not_found"},
		{"plain error", "/test.v1.Svc/Broken", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CollectAndCount(metrics.RPCDuration)
			observe(tt.procedure, time.Now(), tt.err)

			if got := testutil.CollectAndCount(metrics.RPCDuration); got != before+1 {
				t.Errorf("expected a new series for %s/%s, series count %d -> %d", tt.procedure, tt.code, before, got)
			}
		})
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	want := connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))
	unary := LoggingInterceptor().WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, want
	})

	_, err := unary(context.Background(), connect.NewRequest(&struct{}{}))
	if !errors.Is(err, want) {
		t.Errorf("expected handler error to pass through, got %v", err)
	}
}
