// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workspace

import (
	"sync"
	"time"
)

// Registry maps login session ids to their workspaces. Entries live as long
// as their session is used: Sweep closes the ones idle for longer than the
// session TTL.
type Registry struct {
	loader *Loader
	now    func() time.Time

	mu    sync.Mutex
	items map[string]*entry
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// NewRegistry creates an empty registry whose workspaces share loader.
func NewRegistry(loader *Loader) *Registry {
	return &Registry{loader: loader, now: time.Now, items: make(map[string]*entry)}
}

// Open returns the workspace for id, creating it when missing. A new
// workspace is Unauthenticated until Start is called.
func (r *Registry) Open(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[id]; ok {
		e.lastSeen = r.now()
		return e.ws
	}
	w := New(r.loader)
	r.items[id] = &entry{ws: w, lastSeen: r.now()}
	return w
}

// Get returns the workspace for id without creating one.
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.ws, true
}

// Drop closes and forgets the workspace for id.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	e, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()
	if ok {
		e.ws.Close()
	}
}

// Sweep closes and forgets every workspace not opened or fetched within
// maxIdle, and returns how many were removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*Workspace
	for id, e := range r.items {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.ws)
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	for _, w := range stale {
		w.Close()
	}
	return len(stale)
}

// Len is the number of open workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
