package trellis

import (
	"bytes"
	stdContext "context"
	"io"
	"net/http"
)

// Request is the read surface over the incoming HTTP request.
type Request interface {
	RawData() ([]byte, error)
	RawDataSetBody() ([]byte, error)
	Context() stdContext.Context
	Header(string) string
	Host() string
	Method() string
	Path() string
	Protocol() string
	Scheme() string
	RawQuery() string
	ContentType() string
	Req() *http.Request
}

type request struct {
	req *http.Request
}

func (r *request) RawData() ([]byte, error) {
	return io.ReadAll(r.req.Body)
}

// RawDataSetBody reads the body and puts a rewindable copy back so
// later binding can read it again.
func (r *request) RawDataSetBody() ([]byte, error) {
	b, err := io.ReadAll(r.req.Body)
	if err != nil {
		return nil, err
	}
	r.req.Body = io.NopCloser(bytes.NewBuffer(b))
	return b, nil
}

func (r *request) Context() stdContext.Context {
	return r.req.Context()
}

func (r *request) Header(key string) string {
	return r.req.Header.Get(key)
}

func (r *request) Method() string {
	return r.req.Method
}

func (r *request) Protocol() string {
	return r.req.Proto
}

func (r *request) Host() string {
	return r.req.Host
}

func (r *request) Path() string {
	return r.req.URL.Path
}

func (r *request) RawQuery() string {
	return r.req.URL.RawQuery
}

func (r *request) Scheme() string {
	scheme := r.Header(forwardedProtoHeader)
	if scheme != "" {
		return scheme
	}
	if r.req.TLS != nil {
		return "https"
	}
	return "http"
}

func (r *request) ContentType() string {
	return filterFlags(r.Header(contentTypeHeader))
}

func (r *request) Req() *http.Request {
	return r.req
}

// filterFlags cuts a header value at the first space or semicolon, so
// "application/json; charset=utf-8" selects the json binding.
func filterFlags(content string) string {
	for i, char := range content {
		if char == ' ' || char == ';' {
			return content[:i]
		}
	}
	return content
}
