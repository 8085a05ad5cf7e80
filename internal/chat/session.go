package chat

import (
	"strings"
	"sync"
)

// Session holds the conversational state for one browser session: the
// document set, the transcript, the in-flight flag, and the single visible
// error slot. All mutations go through the mutex so interleaved requests can
// never lose an update; the document set is handed out only as copies.
type Session struct {
	mu         sync.Mutex
	documents  []Document
	transcript []Message
	pending    bool
	lastError  string
}

// State is the observable snapshot consumed by the rendering layer.
type State struct {
	Documents  []Document `json:"documents"`
	Transcript []Message  `json:"transcript"`
	Pending    bool       `json:"pending"`
	LastError  string     `json:"last_error,omitempty"`
}

func NewSession() *Session {
	return &Session{}
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Documents:  append([]Document(nil), s.documents...),
		Transcript: append([]Message(nil), s.transcript...),
		Pending:    s.pending,
		LastError:  s.lastError,
	}
}

// AddDocuments appends a successfully extracted batch. A document whose name
// matches an existing one replaces it in place, keeping its position; new
// names are appended in batch order. Clears the error slot.
func (s *Session) AddDocuments(docs []Document) []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		replaced := false
		for i := range s.documents {
			if s.documents[i].Name == doc.Name {
				s.documents[i] = doc
				replaced = true
				break
			}
		}
		if !replaced {
			s.documents = append(s.documents, doc)
		}
	}
	s.lastError = ""
	return append([]Document(nil), s.documents...)
}

// RemoveDocument deletes the named document, preserving the order of the
// survivors. Reports whether anything was removed.
func (s *Session) RemoveDocument(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].Name == name {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears documents, transcript and the error slot. The in-flight flag
// is left alone: a running request still owns it and will clear it itself.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = nil
	s.transcript = nil
	s.lastError = ""
}

// BeginAsk validates a question submission and, if accepted, appends the
// user message, raises the in-flight flag, and returns the document set
// snapshot the answer must be grounded in. Exactly one submission can win
// while a request is in flight; losers get a busy error and cause no model
// call. An empty question or an empty document set is rejected before any
// composition or network work.
func (s *Session) BeginAsk(question string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return nil, NewError(KindBusy, "an answer is still being prepared; wait for it before asking again", nil)
	}
	if strings.TrimSpace(question) == "" {
		return nil, NewError(KindValidation, "type a question before submitting", nil)
	}
	if len(s.documents) == 0 {
		return nil, NewError(KindValidation, "upload at least one document before asking a question", nil)
	}
	s.pending = true
	s.lastError = ""
	s.transcript = append(s.transcript, Message{
		ID:     newMessageID(),
		Sender: SenderUser,
		Text:   question,
	})
	return append([]Document(nil), s.documents...), nil
}

// CompleteAsk records the assistant's answer and clears the in-flight flag.
func (s *Session) CompleteAsk(answer string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := Message{
		ID:     newMessageID(),
		Sender: SenderAssistant,
		Text:   answer,
	}
	s.transcript = append(s.transcript, msg)
	s.pending = false
	return msg
}

// FailAsk clears the in-flight flag and records the failure in the error
// slot. The user message stays in the transcript.
func (s *Session) FailAsk(err error) {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
	s.SetError(err)
}

// SetError fills the single visible error slot, replacing whatever was
// there.
func (s *Session) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.lastError = ""
		return
	}
	s.lastError = err.Error()
}
