package relay

import "sync"

type entry struct {
	peer Peer
	m    Membership
}

// Registry maps live peers to their room/identity. It is the shared-state
// boundary of the relay: every mutation and every member snapshot goes
// through one lock.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry // keyed by peer ID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: map[string]entry{}}
}

// Attach records the membership for a newly opened peer. Multiple peers may
// share the same identity or room; sessions are not deduplicated.
func (r *Registry) Attach(p Peer, room, user string) {
	r.mu.Lock()
	r.entries[p.ID()] = entry{peer: p, m: Membership{Room: room, User: user}}
	r.mu.Unlock()
}

// Lookup returns the membership for a peer, or false if it was never
// attached or has already been detached.
func (r *Registry) Lookup(p Peer) (Membership, bool) {
	r.mu.RLock()
	e, ok := r.entries[p.ID()]
	r.mu.RUnlock()
	return e.m, ok
}

// Detach removes a peer. Detaching an unknown peer is a no-op.
func (r *Registry) Detach(p Peer) {
	r.mu.Lock()
	delete(r.entries, p.ID())
	r.mu.Unlock()
}

// MembersOf returns a snapshot of every peer currently in the room, in no
// particular order.
func (r *Registry) MembersOf(room string) []Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Peer
	for _, e := range r.entries {
		if e.m.Room == room {
			out = append(out, e.peer)
		}
	}
	return out
}

// Count returns the number of attached peers
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
