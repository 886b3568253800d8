package progress

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	"github.com/made-to-scale/scaleops/pkg/metrics"
)

// Reader loads the raw progress inputs for one project. The store-backed
// implementation lives in reader.go; tests substitute their own.
type Reader interface {
	JobSections(ctx context.Context, projectID uuid.UUID) ([]SectionRow, error)
	MasterSections(ctx context.Context, projectID uuid.UUID, avatarID *uuid.UUID) ([]SectionRow, error)
}

// Scope selects what a subscription watches: a whole project, or one avatar's
// master dossier within it.
type Scope struct {
	ProjectID uuid.UUID
	AvatarID  *uuid.UUID
}

// Progress is one evaluation delivered to a subscriber. On a failed read Err
// is set and the snapshot maps are nil; the subscription stays alive and the
// tracker retries with backoff.
type Progress struct {
	Scope   Scope
	Jobs    map[uuid.UUID]Snapshot
	Masters map[uuid.UUID]Snapshot
	Err     error
}

// Tracker periodically re-evaluates progress for subscribed scopes. One
// tracker is shared by all API consumers; each Track call runs its own poll
// loop.
type Tracker struct {
	reader     Reader
	manifests  ManifestSet
	interval   time.Duration
	maxBackoff time.Duration
	log        *zap.SugaredLogger
}

func NewTracker(reader Reader, manifests ManifestSet, interval, maxBackoff time.Duration) *Tracker {
	return &Tracker{
		reader:     reader,
		manifests:  manifests,
		interval:   interval,
		maxBackoff: maxBackoff,
		log:        zap.S().Named("progress"),
	}
}

// Manifests returns the section manifests this tracker evaluates against.
func (t *Tracker) Manifests() ManifestSet {
	return t.manifests
}

// Subscription is one live poll loop. Updates delivers the latest evaluation;
// a slow receiver only ever misses intermediate states, never the newest one.
type Subscription struct {
	updates  chan Progress
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

func (s *Subscription) Updates() <-chan Progress {
	return s.updates
}

// Stop tears the poll loop down. It is idempotent and does not return until
// the loop has exited, so no update is delivered after Stop returns. The
// updates channel is closed on exit.
func (s *Subscription) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Track starts a poll loop for the scope. The first evaluation runs
// immediately, later ones on a jittered interval. The loop exits when ctx is
// canceled or Stop is called, whichever comes first.
func (t *Tracker) Track(ctx context.Context, scope Scope) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		updates: make(chan Progress, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go t.run(ctx, scope, sub)
	return sub, nil
}

func (t *Tracker) run(ctx context.Context, scope Scope, sub *Subscription) {
	defer close(sub.done)
	defer close(sub.updates)

	ticker := jitterbug.New(t.interval, &jitterbug.Norm{Stdev: t.interval / 10})
	defer ticker.Stop()

	ready := readyState{jobs: make(map[uuid.UUID]bool), masters: make(map[uuid.UUID]bool)}
	var backoff time.Duration
	var nextAttempt time.Time

	// One evaluation runs at a time; overlapping polls against a slow
	// database only ever made the slowness worse.
	t.deliver(ctx, sub, t.evaluate(ctx, scope, &ready, &backoff, &nextAttempt))

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Before(nextAttempt) {
				continue
			}
			t.deliver(ctx, sub, t.evaluate(ctx, scope, &ready, &backoff, &nextAttempt))
		}
	}
}

type readyState struct {
	jobs    map[uuid.UUID]bool
	masters map[uuid.UUID]bool
}

func (t *Tracker) evaluate(ctx context.Context, scope Scope, ready *readyState, backoff *time.Duration, nextAttempt *time.Time) Progress {
	progress := Progress{Scope: scope}

	jobRows, err := t.reader.JobSections(ctx, scope.ProjectID)
	if err == nil {
		var masterRows []SectionRow
		masterRows, err = t.reader.MasterSections(ctx, scope.ProjectID, scope.AvatarID)
		if err == nil {
			progress.Jobs = Aggregate(jobRows, t.manifests.AnalysisJob)
			progress.Masters = Aggregate(masterRows, t.manifests.AvatarMaster)
		}
	}

	if err != nil {
		if ctx.Err() == nil {
			*backoff = nextBackoff(*backoff, t.interval, t.maxBackoff)
			*nextAttempt = time.Now().Add(*backoff)
			t.log.Warnf("progress read failed for project %s, retrying in %s: %v", scope.ProjectID, *backoff, err)
			metrics.IncreaseProgressEvaluationsMetric("error")
		}
		progress.Err = err
		return progress
	}

	*backoff = 0
	*nextAttempt = time.Time{}
	metrics.IncreaseProgressEvaluationsMetric("ok")

	pinReady(progress.Jobs, ready.jobs)
	pinReady(progress.Masters, ready.masters)
	return progress
}

// pinReady keeps readiness monotonic within a subscription: once an owner has
// reported ready, a later partial read cannot take it back.
func pinReady(snapshots map[uuid.UUID]Snapshot, seen map[uuid.UUID]bool) {
	for ownerID, snapshot := range snapshots {
		if seen[ownerID] && !snapshot.IsReady {
			snapshot.CompletedSections = snapshot.TotalExpected
			snapshot.MissingSections = nil
			snapshot.IsReady = true
			snapshots[ownerID] = snapshot
		}
		if snapshot.IsReady {
			seen[ownerID] = true
		}
	}
}

func nextBackoff(current, base, max time.Duration) time.Duration {
	if current == 0 {
		return base
	}
	next := current * 2
	if next > max {
		return max
	}
	return next
}

// deliver replaces any undelivered update so the receiver always gets the
// newest state.
func (t *Tracker) deliver(ctx context.Context, sub *Subscription, progress Progress) {
	select {
	case <-sub.updates:
	default:
	}
	select {
	case sub.updates <- progress:
	case <-ctx.Done():
	}
}
