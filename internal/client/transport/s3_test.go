package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
	"github.com/dmitrijs2005/gophupload/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Uploader_Upload(t *testing.T) {
	fs := newFakeStorage(t)
	u, err := NewS3Uploader(context.Background(), fs.settings())
	require.NoError(t, err)

	data := bytes.Repeat([]byte("gophupload"), 4096)
	f := models.NewMemFile("holiday photo.jpg", data, "image/jpeg")

	var progress progressLog
	key, err := u.Upload(context.Background(), f, progress.add)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, common.StorageKeyPrefix+"/"), key)
	assert.True(t, strings.HasSuffix(key, "-holiday_photo.jpg"), key)

	got := fs.received()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/gophupload/"+key, got[0].path)
	assert.Equal(t, "image/jpeg", got[0].contentType)
	assert.Equal(t, int64(len(data)), got[0].length)
	assert.Equal(t, cryptox.DigestBytes(data), got[0].meta)
	assert.Equal(t, data, got[0].body)

	ticks := progress.all()
	require.NotEmpty(t, ticks)
	for i := 1; i < len(ticks); i++ {
		assert.GreaterOrEqual(t, ticks[i], ticks[i-1])
	}
	assert.Equal(t, int64(len(data)), ticks[len(ticks)-1])
}

func TestS3Uploader_SniffsContentType(t *testing.T) {
	fs := newFakeStorage(t)
	u, err := NewS3Uploader(context.Background(), fs.settings())
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), plainFile{name: "notes.txt", data: []byte("just some text\n")}, nil)
	require.NoError(t, err)

	got := fs.received()
	require.Len(t, got, 1)
	assert.Equal(t, "text/plain; charset=utf-8", got[0].contentType)
}

func TestS3Uploader_APIErrorMapsToTransport(t *testing.T) {
	fs := newFakeStorage(t)
	fs.respond = accessDenied

	u, err := NewS3Uploader(context.Background(), fs.settings())
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), models.NewMemFile("a.bin", []byte("abc"), ""), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.NotErrorIs(t, err, common.ErrCanceled)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestS3Uploader_CancelMidTransfer(t *testing.T) {
	fs := newFakeStorage(t)
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	fs.respond = func(w http.ResponseWriter, r *http.Request) bool {
		arrived <- struct{}{}
		select {
		case <-r.Context().Done():
		case <-release:
		}
		return true
	}

	u, err := NewS3Uploader(context.Background(), fs.settings())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := u.Upload(ctx, models.NewMemFile("big.bin", make([]byte, 1<<16), ""), nil)
		errc <- err
	}()

	<-arrived
	cancel()

	err = <-errc
	assert.ErrorIs(t, err, common.ErrCanceled)
	assert.NotErrorIs(t, err, common.ErrTransport)
}

func TestS3Uploader_OpenFailure(t *testing.T) {
	fs := newFakeStorage(t)
	u, err := NewS3Uploader(context.Background(), fs.settings())
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), brokenFile{}, nil)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Empty(t, fs.received())
}

func TestNewClient_RequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), Settings{Region: "us-east-1"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

type plainFile struct {
	name string
	data []byte
}

func (f plainFile) Name() string { return f.name }
func (f plainFile) Size() int64  { return int64(len(f.data)) }
func (f plainFile) Open() (io.ReadSeekCloser, error) {
	return nopReadSeekCloser{bytes.NewReader(f.data)}, nil
}

type nopReadSeekCloser struct{ io.ReadSeeker }

func (nopReadSeekCloser) Close() error { return nil }

type brokenFile struct{}

func (brokenFile) Name() string { return "broken" }
func (brokenFile) Size() int64  { return 10 }
func (brokenFile) Open() (io.ReadSeekCloser, error) {
	return nil, errors.New("permission denied")
}
