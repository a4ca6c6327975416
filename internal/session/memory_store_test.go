package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"parkportal/internal/constants"
	"parkportal/internal/types"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	tr := NewTranscript("panel-1")
	tr.Append(types.RoleUser, "Where is slot B2?")
	tr.Append(types.RoleBot, "B2 is on level 2")
	store.Save(tr)

	got, ok := store.Get("panel-1")
	if !ok {
		t.Fatal("Get missed a saved transcript")
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].Role != types.RoleUser || got.Messages[0].Text != "Where is slot B2?" {
		t.Errorf("first message = %+v", got.Messages[0])
	}
	if got.Messages[1].Role != types.RoleBot {
		t.Errorf("second message role = %q", got.Messages[1].Role)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	tr := NewTranscript("panel-2")
	tr.UpdatedAt = time.Now().Add(-constants.TranscriptTTL - time.Minute)
	store.Save(tr)

	if _, ok := store.Get("panel-2"); ok {
		t.Error("Get returned an expired transcript")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	store.Save(NewTranscript("panel-3"))
	store.Delete("panel-3")

	if _, ok := store.Get("panel-3"); ok {
		t.Error("transcript survived Delete")
	}
}

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript("panel-4")
	tr.Append(types.RoleUser, "first")
	tr.Append(types.RoleBot, "second")
	tr.Append(types.RoleUser, "third")

	want := []string{"first", "second", "third"}
	for i, text := range want {
		if tr.Messages[i].Text != text {
			t.Errorf("message[%d] = %q, want %q", i, tr.Messages[i].Text, text)
		}
	}
}

func TestTranscriptConcurrentAppend(t *testing.T) {
	tr := NewTranscript("panel-5")

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Append(types.RoleUser, fmt.Sprintf("message %d", i))
		}(i)
	}
	wg.Wait()

	history := tr.History()
	if len(history) != writers {
		t.Fatalf("history length = %d, want %d: concurrent appends lost messages", len(history), writers)
	}

	seen := make(map[string]bool)
	for _, m := range history {
		seen[m.Text] = true
	}
	if len(seen) != writers {
		t.Errorf("distinct messages = %d, want %d", len(seen), writers)
	}
}
