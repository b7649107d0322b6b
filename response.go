package trellis

import "net/http"

// Response is the write surface over the outgoing HTTP response.
type Response interface {
	Header(string) string
	SetHeader(string, string)
	WriteHeader(int)
	Write([]byte) (int, error)
	Written() bool
	Rw() http.ResponseWriter
	SetRw(http.ResponseWriter)
	Pusher() http.Pusher
}

type response struct {
	rw    http.ResponseWriter
	wrote bool
}

func (r *response) Header(key string) string {
	return r.rw.Header().Get(key)
}

func (r *response) SetHeader(key, value string) {
	r.rw.Header().Set(key, value)
}

func (r *response) WriteHeader(status int) {
	r.wrote = true
	r.rw.WriteHeader(status)
}

func (r *response) Write(b []byte) (int, error) {
	r.wrote = true
	return r.rw.Write(b)
}

// Written reports whether a status or body went out through this
// wrapper. Writes made directly on Rw() are not tracked.
func (r *response) Written() bool {
	return r.wrote
}

func (r *response) Rw() http.ResponseWriter {
	return r.rw
}

func (r *response) SetRw(rw http.ResponseWriter) {
	r.rw = rw
}

func (r *response) Pusher() http.Pusher {
	if pusher, ok := r.rw.(http.Pusher); ok {
		return pusher
	}
	return nil
}
