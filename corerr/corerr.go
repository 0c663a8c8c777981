// Package corerr holds fatal, request- or acceptor-programming-error
// sentinels: things a handler or embedder did wrong, as opposed to
// something the client sent wrong (those are status.HTTPError values).
package corerr

import "errors"

var (
	// ErrBodyAlreadyAccessed is raised when a handler requests a second
	// body-access mode (POST params, stream, octets) after already using
	// one — spec §3/§4.6 "exactly one mode".
	ErrBodyAlreadyAccessed = errors.New("corerr: request body has already been accessed in a different mode")

	// ErrAlreadyStarted / ErrNotStarted guard Acceptor.Start/Stop misuse
	// (spec §7 "Acceptor misuse").
	ErrAlreadyStarted = errors.New("corerr: acceptor is already listening")
	ErrNotStarted     = errors.New("corerr: acceptor is not listening")

	// ErrHeadersAlreadySent is panicked by Request.AbortRequest once the
	// response headers are on the wire (spec §3 invariant). The plain
	// setters (SetStatus, SetHeader, SetCookie, ...) ignore late calls
	// instead of raising it.
	ErrHeadersAlreadySent = errors.New("corerr: response headers have already been sent")
)
