package uploads

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
)

// process executes one run: compress, then upload. Every state change goes
// through commit, which drops it if the run has been superseded.
func (o *Orchestrator) process(ctx context.Context, id string, run uint64, src models.File) {
	defer o.runDone()

	log := o.log.With("upload_id", id, "run", run)

	// Compression is not interrupted by cancel; the signal is checked once it
	// returns.
	compressed, err := o.compressor.Compress(context.WithoutCancel(ctx), src, o.compressOpts)
	if err != nil {
		o.fail(ctx, id, run, fmt.Errorf("compress %s: %w", src.Name(), err))
		return
	}

	size := compressed.Size()
	_, ok := o.commit(id, run, func(u *models.Upload) bool {
		u.CompressedSize = &size
		return true
	})
	if !ok {
		log.Debug(ctx, "run superseded after compression")
		return
	}
	log.Debug(ctx, "compressed", "original", src.Size(), "compressed", size)

	if err := ctx.Err(); err != nil {
		o.fail(ctx, id, run, fmt.Errorf("%w: %w", common.ErrCanceled, err))
		return
	}

	ref, err := o.transport.Upload(ctx, compressed, func(n int64) {
		o.advance(id, run, n)
	})
	if err != nil {
		o.fail(ctx, id, run, fmt.Errorf("upload %s: %w", src.Name(), err))
		return
	}

	if _, ok := o.commit(id, run, func(u *models.Upload) bool {
		u.Status = models.StatusSuccess
		u.RemoteRef = ref
		u.Transferred = u.Limit()
		return true
	}); ok {
		log.Debug(ctx, "upload succeeded", "remote_ref", ref)
	}
}

// advance records a transport progress tick, keeping Transferred monotonic and
// within the payload size.
func (o *Orchestrator) advance(id string, run uint64, n int64) {
	o.commit(id, run, func(u *models.Upload) bool {
		if limit := u.Limit(); n > limit {
			n = limit
		}
		if n <= u.Transferred {
			return false
		}
		u.Transferred = n
		return true
	})
}

// fail settles the run as canceled or errored depending on the cause.
func (o *Orchestrator) fail(ctx context.Context, id string, run uint64, cause error) {
	status := models.StatusError
	if isCancellation(ctx, cause) {
		status = models.StatusCanceled
	}

	_, ok := o.commit(id, run, func(u *models.Upload) bool {
		u.Status = status
		if status == models.StatusError {
			u.Err = cause.Error()
		}
		return true
	})
	if !ok {
		return
	}

	if status == models.StatusCanceled {
		o.log.Debug(ctx, "upload canceled", "upload_id", id, "run", run)
		return
	}
	o.log.Debug(ctx, "upload failed", "upload_id", id, "run", run, "error", cause)
}

// isCancellation reports whether cause stems from this run's own handle.
func isCancellation(ctx context.Context, cause error) bool {
	if errors.Is(cause, common.ErrCanceled) {
		return true
	}
	return errors.Is(cause, context.Canceled) && ctx.Err() != nil
}

// commit applies mutate to a copy of the record and stores the copy, provided
// run is still the record's current, unsettled run. mutate returns false to
// leave the record untouched. Reaching a terminal status releases the run's
// cancellation handle.
func (o *Orchestrator) commit(id string, run uint64, mutate func(u *models.Upload) bool) (models.Upload, bool) {
	now := o.now()

	o.mu.Lock()
	e, ok := o.entries[id]
	if !ok || e.run != run || e.upload.Status.IsTerminal() {
		o.mu.Unlock()
		return models.Upload{}, false
	}

	next := e.upload
	if !mutate(&next) {
		o.mu.Unlock()
		return models.Upload{}, false
	}
	next.Version++
	next.UpdatedAt = now
	e.upload = next

	var release func()
	if next.Status.IsTerminal() {
		release = e.cancel
		e.cancel = nil
	}
	o.mu.Unlock()

	if release != nil {
		release()
	}
	o.notify(next)

	return next, true
}
