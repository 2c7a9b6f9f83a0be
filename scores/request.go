package scores

import "sync"

// Request is the pending result of a submit or fetch. It is filled in by
// whichever goroutine performs the I/O and polled by the game loop.
type Request struct {
	mu      sync.Mutex
	done    bool
	entries []Entry
	err     error
}

func newRequest() *Request {
	return &Request{}
}

// Done returns an already completed request.
func Done(entries []Entry, err error) *Request {
	r := newRequest()
	r.resolve(entries, err)
	return r
}

func (r *Request) resolve(entries []Entry, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	r.entries = entries
	r.err = err
	r.done = true
}

// Pending reports whether the request is still in flight.
func (r *Request) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.done
}

// Err returns the failure, if any, once the request has completed.
func (r *Request) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Entries returns the board, best first, once the request has completed.
func (r *Request) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries
}

// Store submits and fetches scores.
type Store interface {
	Submit(category string, s Score) *Request
	Fetch(category string) *Request
}
