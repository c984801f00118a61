package websocket

import (
	"context"
	"time"

	"github.com/wricardo/shoko-rocket/game/app"
	"github.com/wricardo/shoko-rocket/game/engine"
	"github.com/wricardo/shoko-rocket/game/input"
	"github.com/wricardo/shoko-rocket/game/service"
)

// FrameInterval is the wall-clock period of one game frame.
const FrameInterval = time.Second / 60

// Runner drives every running session in real time. Each frame it
// ticks the session's machine once and broadcasts the resulting
// snapshot through the hub. Sessions that are stopped or finished are
// skipped; clients stepping those through the REST API get their
// snapshots from the API responses instead.
type Runner struct {
	sessions service.SessionManager
	hub      *Hub
}

// NewRunner creates a runner over the given session manager and hub.
func NewRunner(sessions service.SessionManager, hub *Hub) *Runner {
	return &Runner{
		sessions: sessions,
		hub:      hub,
	}
}

// Run loops at the frame rate until the context is cancelled. The
// hub's event loop must already be running.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.frame()
		}
	}
}

// frame advances every running session by one frame
func (r *Runner) frame() {
	for _, sess := range r.sessions.List() {
		snapshot, event := advance(sess)
		if snapshot == nil {
			continue
		}
		r.hub.BroadcastToSession(sess.ID, snapshot)
		if event != "" {
			r.hub.BroadcastEvent(sess.ID, event, nil)
		}
	}
}

// advance ticks one session if it is actually running. It returns a
// nil snapshot for sessions that did not move this frame.
func advance(sess *service.Session) (*service.WorldSnapshot, string) {
	sess.Lock()
	defer sess.Unlock()

	machine := sess.Machine
	if machine.Kind() != app.KindGame {
		return nil, ""
	}
	switch machine.RunState() {
	case engine.WorldRunning, engine.WorldRunningFast:
	default:
		return nil, ""
	}

	change := machine.Tick(input.State{})
	snapshot := service.Snapshot(machine)
	if change != engine.NoChange {
		return snapshot, change.String()
	}
	return snapshot, ""
}
