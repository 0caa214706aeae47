// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workspace

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State is the lifecycle state of a Workspace.
type State int

const (
	Unauthenticated State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// ErrClosed is returned by Refresh on a workspace that was never started
// or has been closed.
var ErrClosed = errors.New("workspace is closed")

// Workspace is the content held for one logged-in session. It moves from
// Unauthenticated to Loading on Start, and always ends a load in Ready,
// whether or not the load succeeded. Close returns it to Unauthenticated
// and discards the snapshot.
//
// A Workspace is safe for concurrent use.
type Workspace struct {
	loader *Loader

	mu       sync.RWMutex
	open     bool
	inflight int
	gen      uint64
	snap     *Snapshot
	loadedAt time.Time
}

// New creates a workspace in the Unauthenticated state.
func New(loader *Loader) *Workspace {
	return &Workspace{loader: loader}
}

// State reports the current lifecycle state.
func (w *Workspace) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	switch {
	case !w.open:
		return Unauthenticated
	case w.inflight > 0:
		return Loading
	default:
		return Ready
	}
}

// Snapshot returns the last published snapshot. ok is false until a load
// has fully succeeded.
func (w *Workspace) Snapshot() (snap Snapshot, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.snap == nil {
		return Snapshot{}, false
	}
	return *w.snap, true
}

// LoadedAt is the time of the last published full load.
func (w *Workspace) LoadedAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loadedAt
}

// Start runs the aggregate load. The snapshot is replaced only when every
// fetch succeeded; on failure the previous snapshot stays and the
// *LoadError is returned.
func (w *Workspace) Start(ctx context.Context) error {
	w.mu.Lock()
	w.open = true
	w.inflight++
	gen := w.gen
	w.mu.Unlock()

	snap, err := w.loader.Load(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		// Closed while loading.
		return ErrClosed
	}
	w.inflight--
	if err != nil {
		return err
	}
	w.snap = snap
	w.loadedAt = time.Now()
	return nil
}

// Refresh refetches one kind and replaces only that part of the snapshot.
// Without a published snapshot it runs a full Start instead, so a partial
// snapshot is never shown.
func (w *Workspace) Refresh(ctx context.Context, kind Kind) error {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.snap == nil {
		w.mu.Unlock()
		return w.Start(ctx)
	}
	w.inflight++
	gen := w.gen
	w.mu.Unlock()

	part, err := w.loader.LoadKind(ctx, kind)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		return ErrClosed
	}
	w.inflight--
	if err != nil {
		return err
	}
	next := *w.snap
	next.copyKind(kind, part)
	w.snap = &next
	return nil
}

// Close discards the snapshot and returns to Unauthenticated. Loads still
// running when Close is called do not publish.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
	w.inflight = 0
	w.gen++
	w.snap = nil
	w.loadedAt = time.Time{}
}
