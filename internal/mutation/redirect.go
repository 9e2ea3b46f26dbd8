package mutation

import (
	"sync/atomic"
	"time"
)

// RedirectDelay is how long a success message stays on screen before the
// screen navigates away.
const RedirectDelay = 2 * time.Second

// Redirect is armed after a successful save. The caller schedules a timer
// for After and hands Token back to Fire when it expires.
type Redirect struct {
	Path  string
	After time.Duration
	Token uint64
}

var tokens atomic.Uint64

// Redirector holds at most one pending timed navigation for a screen.
// Tokens are unique within the process, so a timer started by one screen
// can never fire another screen's redirect. The zero value is ready to use.
type Redirector struct {
	path   string
	token  uint64
	armed  bool
	closed bool
}

// Arm schedules a navigation to path, replacing any earlier one. It
// reports false once the redirector is closed.
func (r *Redirector) Arm(path string) (Redirect, bool) {
	if r.closed {
		return Redirect{}, false
	}
	r.path = path
	r.token = tokens.Add(1)
	r.armed = true
	return Redirect{Path: path, After: RedirectDelay, Token: r.token}, true
}

// Armed reports whether a redirect is waiting to fire.
func (r *Redirector) Armed() bool { return r.armed }

// Closed reports whether Close was called.
func (r *Redirector) Closed() bool { return r.closed }

// Fire consumes the armed redirect and returns its path. It reports false
// when token does not match, the redirect already fired, or the
// redirector was closed.
func (r *Redirector) Fire(token uint64) (string, bool) {
	if r.closed || !r.armed || token != r.token {
		return "", false
	}
	r.armed = false
	return r.path, true
}

// Close disarms any pending redirect and refuses new ones.
func (r *Redirector) Close() {
	r.closed = true
	r.armed = false
}
