package session

// StoreInterface holds chat transcripts keyed by panel id. Implementations
// expire idle transcripts on their own.
type StoreInterface interface {
	Save(t *Transcript)
	Get(id string) (*Transcript, bool)
	Delete(id string)
	Close() error
}
