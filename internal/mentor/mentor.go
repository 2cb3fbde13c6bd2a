// Package mentor connects to the conversational mentor service.
//
// The mentor never reads or writes campaign state. Each exchange is a single
// streamed answer; nothing is remembered between exchanges.
package mentor

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no mentor backend is configured.
var ErrUnavailable = errors.New("mentor is not configured")

// Source is a reference the answer was grounded on.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Response is the mentor's answer so far.
// Text is cumulative: each update replaces the previous one.
type Response struct {
	Text    string
	Sources []Source

	// Done marks the final update of an exchange.
	Done bool
}

// Mentor answers a single user message as a stream of cumulative updates.
type Mentor interface {
	// SendMessageStream calls onUpdate zero or more times with partial text and
	// then once with Done set, unless it returns an error. Cancelling ctx
	// abandons the stream.
	SendMessageStream(ctx context.Context, userText string, onUpdate func(Response)) error
}

// Instructions frames every exchange.
const Instructions = `You are the VCOM outreach mentor. VCOM (Voice Crying Outreach Mandate) ` +
	`participants share the Gospel in their daily lives, record the people they reach, ` +
	`and follow them up until they are established in a local church. Give practical, ` +
	`encouraging guidance on personal witnessing, follow-up visits, and discipleship. ` +
	`Keep answers short and cite scripture references where helpful.`
