package uploads

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/logging"
	"github.com/google/uuid"
)

// Compressor turns a file into a possibly smaller one. It fails with an error
// wrapping common.ErrCompression when the input cannot be processed.
type Compressor interface {
	Compress(ctx context.Context, f models.File, opts models.CompressOptions) (models.File, error)
}

// Transport stores a file remotely and returns its remote reference.
// onProgress receives non-decreasing byte counts no larger than f.Size().
// When ctx is canceled the returned error wraps common.ErrCanceled; other
// failures wrap common.ErrTransport.
type Transport interface {
	Upload(ctx context.Context, f models.File, onProgress func(int64)) (string, error)
}

type entry struct {
	upload models.Upload
	run    uint64
	// cancel is nil once the current run has reached a terminal status.
	cancel context.CancelFunc
}

type Orchestrator struct {
	compressor   Compressor
	transport    Transport
	compressOpts models.CompressOptions
	log          logging.Logger
	observers    []func(models.Upload)
	newID        func() string
	now          func() time.Time

	base context.Context
	stop context.CancelFunc

	mu      sync.Mutex
	order   []string
	entries map[string]*entry
	lastRun uint64
	active  int
	idle    chan struct{}
}

func New(c Compressor, t Transport, opts ...Option) *Orchestrator {
	base, stop := context.WithCancel(context.Background())

	o := &Orchestrator{
		compressor: c,
		transport:  t,
		log:        logging.Discard(),
		newID:      uuid.NewString,
		now:        time.Now,
		base:       base,
		stop:       stop,
		entries:    make(map[string]*entry),
		idle:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Add creates one record per file, in order, and starts a pipeline for each.
// The records are visible to List before Add returns. Nil files are skipped.
func (o *Orchestrator) Add(files ...models.File) []string {
	ids := make([]string, 0, len(files))

	for _, f := range files {
		if f == nil {
			continue
		}

		now := o.now()

		o.mu.Lock()
		id := o.uniqueIDLocked()
		e := &entry{upload: models.Upload{
			ID:           id,
			Name:         f.Name(),
			Source:       f,
			OriginalSize: f.Size(),
			CreatedAt:    now,
		}}
		o.entries[id] = e
		o.order = append(o.order, id)
		ctx, run := o.startLocked(e, now)
		snapshot := e.upload
		o.mu.Unlock()

		o.log.Info(ctx, "upload added", "upload_id", id, "name", snapshot.Name, "size", snapshot.OriginalSize)
		o.notify(snapshot)

		go o.process(ctx, id, run, f)
		ids = append(ids, id)
	}

	return ids
}

// Cancel requests cancellation of the record's current run. It does not
// change the status itself; the pipeline moves the record to StatusCanceled
// once it observes the signal. Unknown ids and settled records are ignored.
func (o *Orchestrator) Cancel(id string) {
	o.mu.Lock()
	e, ok := o.entries[id]
	if !ok || e.cancel == nil {
		o.mu.Unlock()
		o.log.Debug(o.base, "cancel ignored", "upload_id", id, "known", ok)
		return
	}
	cancel := e.cancel
	o.mu.Unlock()

	o.log.Info(o.base, "cancel requested", "upload_id", id)
	cancel()
}

// Retry restarts the record's pipeline from compression regardless of its
// status. A run still in flight is canceled and its later results are
// discarded. Unknown ids are ignored.
func (o *Orchestrator) Retry(id string) {
	now := o.now()

	o.mu.Lock()
	e, ok := o.entries[id]
	if !ok {
		o.mu.Unlock()
		o.log.Debug(o.base, "retry ignored", "upload_id", id)
		return
	}
	superseded := e.cancel
	ctx, run := o.startLocked(e, now)
	snapshot := e.upload
	o.mu.Unlock()

	if superseded != nil {
		superseded()
	}

	o.log.Info(ctx, "retry started", "upload_id", id, "attempt", snapshot.Attempt)
	o.notify(snapshot)

	go o.process(ctx, id, run, snapshot.Source)
}

// List returns snapshots of all records in insertion order.
func (o *Orchestrator) List() []models.Upload {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.Upload, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.entries[id].upload)
	}
	return out
}

// Get returns a snapshot of one record.
func (o *Orchestrator) Get(id string) (models.Upload, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	e, ok := o.entries[id]
	if !ok {
		return models.Upload{}, false
	}
	return e.upload, true
}

// Progress projects the current records onto the aggregate view.
func (o *Orchestrator) Progress() models.Progress {
	return Project(o.List())
}

// Wait blocks until no pipeline goroutine is running or ctx is done.
func (o *Orchestrator) Wait(ctx context.Context) error {
	for {
		o.mu.Lock()
		if o.active == 0 {
			o.mu.Unlock()
			return nil
		}
		idle := o.idle
		o.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels every run in flight. Records started afterwards are canceled
// as soon as their compression stage completes.
func (o *Orchestrator) Close() {
	o.stop()
}

// startLocked resets e for a new run and allocates its cancellation handle.
// The caller must hold o.mu.
func (o *Orchestrator) startLocked(e *entry, now time.Time) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(o.base)

	o.lastRun++
	e.run = o.lastRun
	e.cancel = cancel

	next := e.upload
	next.Status = models.StatusProgress
	next.CompressedSize = nil
	next.Transferred = 0
	next.RemoteRef = ""
	next.Err = ""
	next.Attempt++
	next.Version++
	next.UpdatedAt = now
	e.upload = next

	o.active++

	return ctx, e.run
}

func (o *Orchestrator) runDone() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.active--
	if o.active == 0 {
		close(o.idle)
		o.idle = make(chan struct{})
	}
}

func (o *Orchestrator) uniqueIDLocked() string {
	for {
		id := o.newID()
		if _, taken := o.entries[id]; !taken {
			return id
		}
	}
}

func (o *Orchestrator) notify(u models.Upload) {
	for _, fn := range o.observers {
		fn(u)
	}
}
