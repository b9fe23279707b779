package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type storedObject struct {
	method      string
	path        string
	query       string
	contentType string
	length      int64
	meta        string
	body        []byte
}

// fakeStorage is a minimal S3-compatible endpoint. Handlers may be replaced
// per test through respond.
type fakeStorage struct {
	*httptest.Server

	mu      sync.Mutex
	objects []storedObject
	respond func(w http.ResponseWriter, r *http.Request) bool
}

func newFakeStorage(t *testing.T) *fakeStorage {
	t.Helper()
	fs := &fakeStorage{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.objects = append(fs.objects, storedObject{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
			length:      r.ContentLength,
			meta:        r.Header.Get("X-Amz-Meta-Blake2b"),
			body:        body,
		})
		respond := fs.respond
		fs.mu.Unlock()

		if respond != nil && respond(w, r) {
			return
		}
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeStorage) received() []storedObject {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]storedObject(nil), fs.objects...)
}

func (fs *fakeStorage) settings() Settings {
	return Settings{
		Endpoint:      fs.URL,
		Region:        "us-east-1",
		Bucket:        "gophupload",
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		PresignExpiry: 5 * time.Minute,
		MaxAttempts:   1,
	}
}

func accessDenied(w http.ResponseWriter, _ *http.Request) bool {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusForbidden)
	_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Error><Code>AccessDenied</Code><Message>Access Denied.</Message></Error>`)
	return true
}

// progressLog collects onProgress calls.
type progressLog struct {
	mu    sync.Mutex
	ticks []int64
}

func (p *progressLog) add(n int64) {
	p.mu.Lock()
	p.ticks = append(p.ticks, n)
	p.mu.Unlock()
}

func (p *progressLog) all() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int64(nil), p.ticks...)
}
