package internal

import (
	"bufio"
	"bytes"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter records the status and size of a response and whether the
// header was sent. Between Buffer and ReleaseBuffer nothing reaches the
// client, so a response can be withdrawn with DiscardBuffer.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool

	buf    *bytes.Buffer
	header http.Header

	mu sync.Mutex
}

// NewResponseWriter wraps w. If w already is a *ResponseWriter it is returned as is.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	if w.written {
		w.mu.Unlock()
		return
	}
	w.written = true
	w.status = code
	buffering := w.buf != nil
	w.mu.Unlock()

	if !buffering {
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	first := !w.written
	w.written = true
	if w.buf != nil {
		n, err := w.buf.Write(b)
		w.size += int64(n)
		w.mu.Unlock()
		return n, err
	}
	w.mu.Unlock()

	if first {
		w.ResponseWriter.WriteHeader(w.status)
	}

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Status returns the status sent, 200 if none was set explicitly.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Buffer starts holding back the response. It returns false, and does
// nothing, when the header was already sent or buffering is active.
func (w *ResponseWriter) Buffer() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written || w.buf != nil {
		return false
	}
	w.buf = new(bytes.Buffer)
	w.header = w.ResponseWriter.Header().Clone()
	return true
}

// ReleaseBuffer sends the held response and stops buffering.
func (w *ResponseWriter) ReleaseBuffer() error {
	w.mu.Lock()
	buf, written, status := w.buf, w.written, w.status
	w.buf, w.header = nil, nil
	w.mu.Unlock()

	if buf == nil || !written {
		return nil
	}
	w.ResponseWriter.WriteHeader(status)
	if buf.Len() == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(buf.Bytes())
	return err
}

// DiscardBuffer drops the held response, restores the headers present at
// Buffer and stops buffering. No-op when not buffering.
func (w *ResponseWriter) DiscardBuffer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf == nil {
		return
	}

	h := w.ResponseWriter.Header()
	clear(h)
	for k, v := range w.header {
		h[k] = v
	}
	w.buf, w.header = nil, nil
	w.written = false
	w.status = http.StatusOK
	w.size = 0
}

func (w *ResponseWriter) Flush() {
	w.mu.Lock()
	buffering := w.buf != nil
	w.mu.Unlock()
	if buffering {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
