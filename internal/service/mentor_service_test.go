package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/vcom/internal/mentor"
	"github.com/mmynk/vcom/pkg/api"
)

// fakeMentor replays fixed updates, optionally failing afterwards.
type fakeMentor struct {
	updates []mentor.Response
	err     error
}

func (f *fakeMentor) SendMessageStream(ctx context.Context, _ string, onUpdate func(mentor.Response)) error {
	for _, u := range f.updates {
		onUpdate(u)
	}
	return f.err
}

func setupMentorTestServer(t *testing.T, m mentor.Mentor) (*api.MentorServiceClient, func()) {
	t.Helper()

	path, handler := api.NewMentorServiceHandler(NewMentorService(m))
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)
	return api.NewMentorServiceClient(http.DefaultClient, server.URL), server.Close
}

func collect(t *testing.T, client *api.MentorServiceClient, text string) ([]*api.ChatResponse, error) {
	t.Helper()

	stream, err := client.Chat(context.Background(), connect.NewRequest(&api.ChatRequest{Text: text}))
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var msgs []*api.ChatResponse
	for stream.Receive() {
		msgs = append(msgs, stream.Msg())
	}
	return msgs, stream.Err()
}

func TestChat_StreamsUpdates(t *testing.T) {
	client, cleanup := setupMentorTestServer(t, &fakeMentor{updates: []mentor.Response{
		{Text: "Start"},
		{Text: "Start with **prayer**."},
		{
			Text:    "Start with **prayer**.",
			Sources: []mentor.Source{{URI: "https://example.org/john-15", Title: "John 15"}},
			Done:    true,
		},
	}})
	defer cleanup()

	msgs, err := collect(t, client, "How do I begin?")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(msgs))
	}
	if msgs[0].Text != "Start" || msgs[0].Final || msgs[0].HTML != "" {
		t.Errorf("unexpected first update: %+v", msgs[0])
	}

	final := msgs[2]
	if !final.Final {
		t.Error("expected last update to be final")
	}
	if !strings.Contains(final.HTML, "<strong>prayer</strong>") {
		t.Errorf("expected rendered HTML, got %q", final.HTML)
	}
	if len(final.Sources) != 1 || final.Sources[0].URI != "https://example.org/john-15" {
		t.Errorf("unexpected sources: %+v", final.Sources)
	}
}

func TestChat_MentorFailure(t *testing.T) {
	client, cleanup := setupMentorTestServer(t, &fakeMentor{
		updates: []mentor.Response{{Text: "Partial"}},
		err:     errors.New("upstream reset"),
	})
	defer cleanup()

	msgs, err := collect(t, client, "hello")
	assertCode(t, err, connect.CodeUnavailable)
	if len(msgs) != 1 || msgs[0].Final {
		t.Errorf("expected the partial update before the failure, got %+v", msgs)
	}
}

func TestChat_NotConfigured(t *testing.T) {
	client, cleanup := setupMentorTestServer(t, nil)
	defer cleanup()

	_, err := collect(t, client, "hello")
	assertCode(t, err, connect.CodeUnavailable)
}

func TestChat_EmptyMessage(t *testing.T) {
	client, cleanup := setupMentorTestServer(t, &fakeMentor{})
	defer cleanup()

	_, err := collect(t, client, "   ")
	assertCode(t, err, connect.CodeInvalidArgument)
}
