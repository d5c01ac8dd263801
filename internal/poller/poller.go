// Package poller tracks an asynchronous job until it reaches a terminal
// state. One session owns the full lifecycle of repeated status requests for
// a single job id: at most one request is in flight at a time, the repeat
// timer is gated on the previous fetch resolving, and cancellation is
// deterministic so no stale result can apply to a superseded job id.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/briefdeck/briefdeck/internal/api"
)

// DefaultInterval is the delay between status fetches.
const DefaultInterval = 2 * time.Second

// State is the polling lifecycle state for one job id.
type State int32

const (
	// StateIdle means no job id is being tracked.
	StateIdle State = iota
	// StateFetching means a status request is in flight.
	StateFetching
	// StatePolling means the last fetch was non-terminal and the repeat
	// timer is armed.
	StatePolling
	// StateStopped means a terminal status or a fetch error ended the
	// session. Stopped sessions never fetch again.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StatePolling:
		return "polling"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StatusFetcher issues a single status request for a job. api.Client
// satisfies this; tests substitute scripted fakes.
type StatusFetcher interface {
	JobStatus(ctx context.Context, jobID string) (*api.Job, error)
}

// Snapshot is the immutable result of one fetch. Exactly one of Job and Err
// is meaningful; State reports where the session landed after the fetch.
type Snapshot struct {
	JobID string
	Job   *api.Job
	Err   error
	State State
}

// Poller creates polling sessions against one backend.
type Poller struct {
	fetcher  StatusFetcher
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the delay between fetches.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithLogger sets the logger for fetch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) { p.logger = l }
}

// New creates a Poller using fetcher for status requests.
func New(fetcher StatusFetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Session is one polling run over a single job id.
type Session struct {
	jobID   string
	state   atomic.Int32
	snaps   chan Snapshot
	refresh chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
}

// Watch starts polling jobID and returns the session. The first fetch is
// issued immediately; subsequent fetches follow the poller interval until a
// terminal status, a fetch error, or cancellation of ctx.
func (p *Poller) Watch(ctx context.Context, jobID string) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		jobID:   jobID,
		snaps:   make(chan Snapshot, 1),
		refresh: make(chan struct{}, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.state.Store(int32(StateFetching))
	go p.run(ctx, s)
	return s
}

func (p *Poller) run(ctx context.Context, s *Session) {
	defer close(s.done)
	defer close(s.snaps)
	defer s.state.Store(int32(StateStopped))

	for {
		s.state.Store(int32(StateFetching))
		job, err := p.fetcher.JobStatus(ctx, s.jobID)

		// A fetch that resolves after cancellation belongs to a superseded
		// session; its result must not be observed.
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			p.logger.Debug("status fetch failed", "job_id", s.jobID, "error", err)
			s.state.Store(int32(StateStopped))
			s.emit(ctx, Snapshot{JobID: s.jobID, Err: err, State: StateStopped})
			return
		}

		if job.Status.Terminal() {
			p.logger.Debug("job reached terminal state", "job_id", s.jobID, "status", job.Status)
			s.state.Store(int32(StateStopped))
			s.emit(ctx, Snapshot{JobID: s.jobID, Job: job, State: StateStopped})
			return
		}

		s.state.Store(int32(StatePolling))
		if !s.emit(ctx, Snapshot{JobID: s.jobID, Job: job, State: StatePolling}) {
			return
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case <-s.refresh:
			timer.Stop()
		}
	}
}

func (s *Session) emit(ctx context.Context, snap Snapshot) bool {
	select {
	case s.snaps <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}

// JobID returns the job id this session tracks.
func (s *Session) JobID() string { return s.jobID }

// State returns the current lifecycle state.
func (s *Session) State() State { return State(s.state.Load()) }

// Snapshots returns the stream of fetch results. The channel is closed when
// the session stops.
func (s *Session) Snapshots() <-chan Snapshot { return s.snaps }

// Refresh forces the next fetch immediately, independent of the timer. It
// never queues more than one pending refresh and never blocks.
func (s *Session) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Stop cancels the session and waits for its goroutine to exit.
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

// Watcher multiplexes sessions so a consumer can switch between job ids and
// keep reading one snapshot stream. Switching cancels the previous session;
// any late snapshot from it is dropped rather than forwarded, so a stale
// result can never overwrite data for the currently watched job.
type Watcher struct {
	poller *Poller
	out    chan Snapshot

	mu     sync.Mutex
	active *Session
	quit   chan struct{}
}

// NewWatcher creates a Watcher over p with no active job.
func NewWatcher(p *Poller) *Watcher {
	return &Watcher{poller: p, out: make(chan Snapshot, 1)}
}

// Switch starts watching jobID, cancelling any previous session first.
func (w *Watcher) Switch(ctx context.Context, jobID string) {
	w.mu.Lock()
	if w.active != nil {
		w.active.cancel()
		close(w.quit)
	}
	sess := w.poller.Watch(ctx, jobID)
	w.active = sess
	w.quit = make(chan struct{})
	quit := w.quit
	w.mu.Unlock()

	go w.forward(sess, quit)
}

// forward relays one session's snapshots onto the merged stream. quit is
// closed under the watcher lock when the session is superseded, so a relay
// blocked on a slow consumer stops instead of delivering its held snapshot
// later. A snapshot already being handed over at the instant of a switch can
// still land; consumers resolve that last sliver through Snapshot.JobID.
func (w *Watcher) forward(sess *Session, quit <-chan struct{}) {
	for snap := range sess.snaps {
		select {
		case <-quit:
			return
		default:
		}
		select {
		case w.out <- snap:
		case <-quit:
			return
		}
	}
}

// Snapshots returns the merged snapshot stream. Unlike a session channel it
// stays open across Switch calls.
func (w *Watcher) Snapshots() <-chan Snapshot { return w.out }

// Refresh forces an immediate fetch on the active session, if any.
func (w *Watcher) Refresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != nil {
		w.active.Refresh()
	}
}

// State returns the active session's state, or StateIdle with no session.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active == nil {
		return StateIdle
	}
	return w.active.State()
}

// Stop cancels the active session, if any.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != nil {
		w.active.cancel()
		close(w.quit)
		w.active = nil
		w.quit = nil
	}
}
