package session

import (
	"sync"
	"time"

	"parkportal/internal/constants"
	"parkportal/internal/types"
)

// Transcript is the append-only message log behind one open chat panel. It is
// keyed by the panel cookie and lives only until its idle TTL runs out; chat
// history is never persisted durably. The in-memory store hands the same
// pointer to every request on the panel, so field access goes through the
// mutex.
type Transcript struct {
	ID        string              `json:"id"`
	Messages  []types.ChatMessage `json:"messages"`
	UpdatedAt time.Time           `json:"updated_at"`

	mu sync.Mutex
}

func NewTranscript(id string) *Transcript {
	return &Transcript{ID: id, UpdatedAt: time.Now()}
}

func (t *Transcript) Append(role, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Messages = append(t.Messages, types.ChatMessage{Role: role, Text: text})
	t.UpdatedAt = time.Now()
}

// History returns a copy of the message log safe to hand to a template.
func (t *Transcript) History() []types.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]types.ChatMessage(nil), t.Messages...)
}

func (t *Transcript) ExpiresAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.UpdatedAt.Add(constants.TranscriptTTL)
}

func (t *Transcript) IsExpired() bool {
	return time.Now().After(t.ExpiresAt())
}
