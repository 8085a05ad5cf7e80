// Package session keeps per-browser chat sessions in memory. Nothing here
// survives a restart: transcripts and document sets live exactly as long as
// the session.
package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"docchat/internal/chat"
)

// Registry maps session IDs to live sessions with idle-based expiry.
type Registry struct {
	sessions *gocache.Cache
	ttl      time.Duration
}

// NewRegistry creates a registry whose sessions expire after ttl without
// activity.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Registry{
		sessions: gocache.New(ttl, ttl/2),
		ttl:      ttl,
	}
}

// Get returns the session for id, creating one when the id is empty or
// unknown. The returned id is the effective session id; callers echo it back
// to the client. Each access renews the TTL.
func (r *Registry) Get(id string) (*chat.Session, string) {
	if id != "" {
		if v, ok := r.sessions.Get(id); ok {
			sess := v.(*chat.Session)
			r.sessions.Set(id, sess, r.ttl)
			return sess, id
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	sess := chat.NewSession()
	r.sessions.Set(id, sess, r.ttl)
	return sess, id
}

// Len reports how many sessions are currently live.
func (r *Registry) Len() int {
	return r.sessions.ItemCount()
}
