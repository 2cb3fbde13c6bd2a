package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/vcom/internal/mentor"
	"github.com/mmynk/vcom/internal/metrics"
	"github.com/mmynk/vcom/pkg/api"
)

// MentorService implements the Connect MentorService.
type MentorService struct {
	mentor mentor.Mentor
}

var _ api.MentorServiceHandler = (*MentorService)(nil)

// NewMentorService creates a MentorService. A nil mentor makes every Chat
// call fail with Unavailable.
func NewMentorService(m mentor.Mentor) *MentorService {
	return &MentorService{mentor: m}
}

// Chat forwards one message to the mentor and streams cumulative updates
// back. A failure ends this exchange only; the caller may send again.
func (s *MentorService) Chat(ctx context.Context, req *connect.Request[api.ChatRequest], stream *connect.ServerStream[api.ChatResponse]) error {
	text := strings.TrimSpace(req.Msg.Text)
	slog.Info("Chat request received", "chars", len(text))

	if text == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("message text is required"))
	}
	if s.mentor == nil {
		return connectError(mentor.ErrUnavailable)
	}

	var sendErr error
	err := s.mentor.SendMessageStream(ctx, text, func(update mentor.Response) {
		if sendErr != nil {
			return
		}
		msg := &api.ChatResponse{
			Text:    update.Text,
			Sources: toAPISources(update.Sources),
			Final:   update.Done,
		}
		if update.Done {
			html, err := mentor.RenderHTML(update.Text)
			if err != nil {
				slog.Warn("Failed to render mentor answer", "error", err)
			}
			msg.HTML = html
		}
		sendErr = stream.Send(msg)
	})

	switch {
	case ctx.Err() != nil:
		metrics.MentorExchanges.WithLabelValues("canceled").Inc()
		slog.Info("Chat abandoned by caller")
		return connect.NewError(connect.CodeCanceled, ctx.Err())
	case err != nil:
		metrics.MentorExchanges.WithLabelValues("error").Inc()
		slog.Error("Chat failed", "error", err)
		return connect.NewError(connect.CodeUnavailable, err)
	case sendErr != nil:
		metrics.MentorExchanges.WithLabelValues("error").Inc()
		slog.Warn("Chat stream send failed", "error", sendErr)
		return sendErr
	}

	metrics.MentorExchanges.WithLabelValues("ok").Inc()
	slog.Info("Chat completed")
	return nil
}
