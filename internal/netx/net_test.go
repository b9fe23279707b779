package netx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPut(t *testing.T) {
	payload := "hello, s3"

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod string
		var gotLen int64

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotLen = r.ContentLength
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := Put(context.Background(), ts.Client(), ts.URL+"/some/presigned?X-Amz-Signature=abc",
			strings.NewReader(payload), int64(len(payload)), "image/png")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPut {
			t.Fatalf("method = %q, want PUT", gotMethod)
		}
		if gotCT != "image/png" {
			t.Fatalf("Content-Type = %q, want image/png", gotCT)
		}
		if gotLen != int64(len(payload)) {
			t.Fatalf("Content-Length = %d, want %d", gotLen, len(payload))
		}
		if string(gotBody) != payload {
			t.Fatalf("body = %q, want %q", gotBody, payload)
		}
	})

	t.Run("non-2xx returns StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.Copy(io.Discard, r.Body)
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, "SignatureDoesNotMatch")
		}))
		defer ts.Close()

		err := Put(context.Background(), nil, ts.URL, strings.NewReader(payload), int64(len(payload)), "text/plain")
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StatusError, got %v", err)
		}
		if se.Code != http.StatusForbidden {
			t.Fatalf("code = %d, want 403", se.Code)
		}
		if !strings.Contains(se.Error(), "SignatureDoesNotMatch") {
			t.Fatalf("error %q does not carry body", se.Error())
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := Put(ctx, ts.Client(), ts.URL, strings.NewReader(payload), int64(len(payload)), "text/plain")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("bad url", func(t *testing.T) {
		err := Put(context.Background(), nil, "://bad", strings.NewReader(payload), 1, "text/plain")
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
