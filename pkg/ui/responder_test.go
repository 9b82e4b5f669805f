package ui

import (
	"context"
	"sync"
)

// recordingResponder captures everything a cycle sends.
type recordingResponder struct {
	mu       sync.Mutex
	calls    []string
	updates  []*Message
	replies  []*Message
	modals   []*Modal
	sent     map[string][]*Message
	deferred int
}

func (r *recordingResponder) Update(_ context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "update")
	r.updates = append(r.updates, msg)
	return nil
}

func (r *recordingResponder) Reply(_ context.Context, msg *Message, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "reply")
	r.replies = append(r.replies, msg)
	return nil
}

func (r *recordingResponder) OpenModal(_ context.Context, modal *Modal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "modal")
	r.modals = append(r.modals, modal)
	return nil
}

func (r *recordingResponder) Send(_ context.Context, channelID string, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sent == nil {
		r.sent = make(map[string][]*Message)
	}
	r.calls = append(r.calls, "send")
	r.sent[channelID] = append(r.sent[channelID], msg)
	return nil
}

// deferringRecorder also acknowledges interactions.
type deferringRecorder struct {
	recordingResponder
}

func (r *deferringRecorder) Defer(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "defer")
	r.deferred++
	return nil
}

func (r *recordingResponder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
