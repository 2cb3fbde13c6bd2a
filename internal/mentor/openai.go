package mentor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-4o-mini"

// Config configures the OpenAI-backed mentor.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways).
	BaseURL string

	HTTPClient *http.Client
}

// OpenAIMentor streams chat completions from an OpenAI-compatible API.
type OpenAIMentor struct {
	client openai.Client
	model  string
}

var _ Mentor = (*OpenAIMentor)(nil)

// NewOpenAI builds a mentor backed by the chat completions API.
// Failed exchanges are not retried; the user may send the message again.
func NewOpenAI(cfg Config) *OpenAIMentor {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIMentor{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// SendMessageStream implements Mentor.
func (m *OpenAIMentor) SendMessageStream(ctx context.Context, userText string, onUpdate func(Response)) error {
	stream := m.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(Instructions),
			openai.UserMessage(userText),
		},
	})
	defer stream.Close()

	var (
		text    strings.Builder
		sources []Source
		seen    = make(map[string]bool)
	)
	for stream.Next() {
		chunk := stream.Current()
		for _, src := range citations(chunk.RawJSON()) {
			if !seen[src.URI] {
				seen[src.URI] = true
				sources = append(sources, src)
			}
		}

		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		text.WriteString(chunk.Choices[0].Delta.Content)
		onUpdate(Response{Text: text.String()})
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("mentor stream failed: %w", err)
	}

	final := Response{Text: text.String(), Sources: sources, Done: true}
	onUpdate(final)

	slog.Debug("Mentor exchange complete", "model", m.model, "chars", len(final.Text), "sources", len(final.Sources))
	return nil
}

// citations extracts the url_citation annotations carried by one streamed
// chunk. The typed delta does not expose them.
func citations(raw string) []Source {
	var out []Source
	gjson.Get(raw, "choices.0.delta.annotations").ForEach(func(_, a gjson.Result) bool {
		if a.Get("type").String() != "url_citation" {
			return true
		}
		uri := strings.TrimSpace(a.Get("url_citation.url").String())
		if uri == "" {
			return true
		}
		out = append(out, Source{URI: uri, Title: a.Get("url_citation.title").String()})
		return true
	})
	return out
}
