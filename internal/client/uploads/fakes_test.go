package uploads

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
)

// sizedFile is a source of a given size without backing data.
type sizedFile struct {
	name string
	size int64
}

func (f sizedFile) Name() string { return f.name }
func (f sizedFile) Size() int64  { return f.size }
func (f sizedFile) Open() (io.ReadSeekCloser, error) {
	return nil, fmt.Errorf("sizedFile %s has no content", f.name)
}

type fakeCompressor struct {
	mu    sync.Mutex
	calls int

	// fn overrides the default, which halves the size.
	fn func(ctx context.Context, f models.File, call int) (models.File, error)
}

func (c *fakeCompressor) Compress(ctx context.Context, f models.File, _ models.CompressOptions) (models.File, error) {
	c.mu.Lock()
	c.calls++
	call := c.calls
	c.mu.Unlock()

	if c.fn != nil {
		return c.fn(ctx, f, call)
	}
	return sizedFile{name: f.Name(), size: f.Size() / 2}, nil
}

func (c *fakeCompressor) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fakeTransport struct {
	mu    sync.Mutex
	calls int

	// fn overrides the default, which reports the full size and succeeds.
	fn func(ctx context.Context, f models.File, onProgress func(int64), call int) (string, error)
}

func (t *fakeTransport) Upload(ctx context.Context, f models.File, onProgress func(int64)) (string, error) {
	t.mu.Lock()
	t.calls++
	call := t.calls
	t.mu.Unlock()

	if t.fn != nil {
		return t.fn(ctx, f, onProgress, call)
	}
	onProgress(f.Size())
	return "ref-" + f.Name(), nil
}

func (t *fakeTransport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

// blockUntilCanceled behaves like a real transport waiting on the network.
func blockUntilCanceled(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", fmt.Errorf("%w: %w", common.ErrCanceled, ctx.Err())
}

// recorder collects observer notifications. For returns them in commit order.
type recorder struct {
	mu     sync.Mutex
	events []models.Upload
}

func (r *recorder) observe(u models.Upload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, u)
}

func (r *recorder) For(id string) []models.Upload {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Upload
	for _, u := range r.events {
		if u.ID == id {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}
