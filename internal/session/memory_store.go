package session

import (
	"sync"
	"time"

	"parkportal/internal/constants"
)

type MemoryStore struct {
	transcripts sync.Map
	done        chan struct{}
	closeOnce   sync.Once
}

func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{done: make(chan struct{})}
	go store.cleanupLoop()
	return store
}

func (st *MemoryStore) Save(t *Transcript) {
	st.transcripts.Store(t.ID, t)
}

func (st *MemoryStore) Get(id string) (*Transcript, bool) {
	val, ok := st.transcripts.Load(id)
	if !ok {
		return nil, false
	}
	t := val.(*Transcript)
	if t.IsExpired() {
		st.transcripts.Delete(id)
		return nil, false
	}
	return t, true
}

func (st *MemoryStore) Delete(id string) {
	st.transcripts.Delete(id)
}

func (st *MemoryStore) Close() error {
	st.closeOnce.Do(func() { close(st.done) })
	return nil
}

func (st *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(constants.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			st.transcripts.Range(func(key, value interface{}) bool {
				if value.(*Transcript).IsExpired() {
					st.transcripts.Delete(key)
				}
				return true
			})
		}
	}
}
