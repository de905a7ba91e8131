package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-web/internal/pkg/metrics"
)

const defaultIdleTTL = 30 * time.Minute

// Registry maps client ids to their workspaces. A workspace is created, and
// its persisted session restored, the first time its id is seen.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	newWorkspace func(clientID string) *Workspace
	idleTTL      time.Duration
	now          func() time.Time
	log          zerolog.Logger
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// NewRegistry returns an empty registry. Workspaces unused for idleTTL are
// dropped by Sweep.
func NewRegistry(newWorkspace func(clientID string) *Workspace, idleTTL time.Duration, now func() time.Time, log zerolog.Logger) *Registry {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		entries:      make(map[string]*entry),
		newWorkspace: newWorkspace,
		idleTTL:      idleTTL,
		now:          now,
		log:          log,
	}
}

// Acquire returns the workspace of clientID, creating and restoring it when
// absent. The new workspace stays locked until its restore finished, so
// concurrent requests for the same id see the restored state.
func (r *Registry) Acquire(ctx context.Context, clientID string) *Workspace {
	r.mu.Lock()
	if e, ok := r.entries[clientID]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.ws
	}

	ws := r.newWorkspace(clientID)
	ws.Lock()
	r.entries[clientID] = &entry{ws: ws, lastSeen: r.now()}
	metrics.ActiveWorkspaces.Set(float64(len(r.entries)))
	r.mu.Unlock()

	defer ws.Unlock()
	// A browser abandoning its first request must not cost it the stored token.
	ws.Restore(context.WithoutCancel(ctx))
	r.log.Debug().Str("client_id", clientID).Bool("authenticated", ws.Authenticated()).Msg("workspace created")
	return ws
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops workspaces idle for longer than the idle TTL and returns how
// many were removed. Their persisted tokens survive, so the next request
// from the same browser restores the session.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.WorkspacesEvictedTotal.Add(float64(removed))
		r.log.Debug().Int("evicted", removed).Msg("idle workspaces swept")
	}
	metrics.ActiveWorkspaces.Set(float64(len(r.entries)))
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.idleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
