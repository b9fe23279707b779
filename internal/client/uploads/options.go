package uploads

import (
	"time"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/logging"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithCompressOptions sets the options passed to the compressor on every run.
func WithCompressOptions(opts models.CompressOptions) Option {
	return func(o *Orchestrator) {
		o.compressOpts = opts
	}
}

// WithObserver registers fn to receive every committed record change. It is
// called outside the orchestrator lock, possibly from many goroutines, so
// snapshots of one record may arrive out of order. Observers keep the
// snapshot with the highest Version and drop older ones; Latest does this.
func WithObserver(fn func(models.Upload)) Option {
	return func(o *Orchestrator) {
		o.observers = append(o.observers, fn)
	}
}

// WithIDGenerator replaces the uuid-based identifier source.
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) {
		o.newID = fn
	}
}

func WithClock(fn func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = fn
	}
}
