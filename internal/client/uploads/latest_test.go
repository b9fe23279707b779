package uploads

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatest_KeepsHighestVersion(t *testing.T) {
	l := NewLatest()

	assert.True(t, l.Observe(models.Upload{ID: "a", Version: 2, Status: models.StatusProgress}))
	assert.False(t, l.Observe(models.Upload{ID: "a", Version: 1, Status: models.StatusSuccess}))
	assert.False(t, l.Observe(models.Upload{ID: "a", Version: 2, Status: models.StatusError}))
	assert.True(t, l.Observe(models.Upload{ID: "b", Version: 1}))

	u, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, models.StatusProgress, u.Status)

	_, ok = l.Get("missing")
	assert.False(t, ok)
}

func TestVersion_IncreasesWithEveryCommit(t *testing.T) {
	rec := &recorder{}
	o := New(&fakeCompressor{}, &fakeTransport{}, WithObserver(rec.observe))

	id := o.Add(sizedFile{name: "a", size: 100})[0]
	waitIdle(t, o)
	o.Retry(id)
	waitIdle(t, o)

	events := rec.For(id)
	require.NotEmpty(t, events)
	for i := 1; i < len(events); i++ {
		require.Greater(t, events[i].Version, events[i-1].Version)
	}
	assert.Equal(t, events[len(events)-1], mustGet(t, o, id))
}

// A terminal snapshot of the first run that reaches the observer only after a
// retry has published its reset must not win.
func TestObserver_LateSnapshotOfSupersededRunIsDropped(t *testing.T) {
	secondStarted := make(chan struct{})
	secondRun := make(chan struct{})
	tr := &fakeTransport{fn: func(ctx context.Context, f models.File, onProgress func(int64), call int) (string, error) {
		if call == 1 {
			onProgress(f.Size())
			return "r1", nil
		}
		close(secondStarted)
		select {
		case <-secondRun:
			onProgress(f.Size())
			return "r2", nil
		case <-ctx.Done():
			return blockUntilCanceled(ctx)
		}
	}}

	latest := NewLatest()
	delivering := make(chan struct{})
	release := make(chan struct{})
	staleStored := make(chan bool, 1)
	observer := func(u models.Upload) {
		if u.Status == models.StatusSuccess && u.Attempt == 1 {
			close(delivering)
			<-release
			staleStored <- latest.Observe(u)
			return
		}
		latest.Observe(u)
	}

	o := New(&fakeCompressor{}, tr, WithObserver(observer))
	t.Cleanup(o.Close)

	id := o.Add(sizedFile{name: "a.jpg", size: 100})[0]
	receive(t, delivering)

	o.Retry(id)
	close(release)

	select {
	case stored := <-staleStored:
		assert.False(t, stored, "stale success must be dropped")
	case <-time.After(5 * time.Second):
		t.Fatal("stale snapshot was never delivered")
	}

	receive(t, secondStarted)
	current := mustGet(t, o, id)
	seen, ok := latest.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusProgress, seen.Status)
	assert.Equal(t, 2, seen.Attempt)
	assert.Equal(t, current.Version, seen.Version)

	close(secondRun)
	waitIdle(t, o)

	seen, _ = latest.Get(id)
	assert.Equal(t, models.StatusSuccess, seen.Status)
	assert.Equal(t, "r2", seen.RemoteRef)
}
