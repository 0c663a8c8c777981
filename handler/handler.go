// Package handler defines the pluggable dispatch contract the connection
// engine calls into (spec §4.4), and the default ErrorGenerator.
package handler

import (
	"strconv"

	"github.com/originhttp/core/request"
	"github.com/originhttp/core/status"
)

// Kind tags a Result the way spec.md's Design Notes §9 recommend modeling
// the source's non-local-exit flow control as a plain tagged value instead.
type Kind int

const (
	// KindHandled means the handler produced a body string to send as-is.
	KindHandled Kind = iota
	// KindNotHandled is the "not-handled" sentinel: try the next handler,
	// or 404 if there is none.
	KindNotHandled
	// KindAborted means the handler called Abort: status is preset, body
	// is optional.
	KindAborted
	// KindStreamed means the handler already called SendHeaders and wrote
	// the body itself; there's nothing left for the engine to write.
	KindStreamed
)

// Result carries a body only when HasBody is true; otherwise the engine
// fills the body via the ErrorGenerator (spec §4.4 step 3: "If headers_sent
// = false, send a response consisting of the body (or, if nil, the
// error-generator body)").
type Result struct {
	Kind    Kind
	Body    string
	HasBody bool
}

// Handled wraps a body string response - always has a body, even an
// intentionally empty one.
func Handled(body string) Result {
	return Result{Kind: KindHandled, Body: body, HasBody: true}
}

// NotHandled is the sentinel meaning "I decline, try the next option".
var NotHandled = Result{Kind: KindNotHandled}

// Streamed is returned by handlers that wrote their own response via
// request.SendHeaders/request.Write.
var Streamed = Result{Kind: KindStreamed}

// Abort sets the response status and, optionally, a body, then hands
// control back to the engine to send it - the Go analogue of the source's
// abort_request_handler non-local exit (spec §4.4).
func Abort(req *request.Request, code status.Code, body ...string) Result {
	req.SetStatus(code)

	if len(body) == 0 {
		return Result{Kind: KindAborted}
	}

	return Result{Kind: KindAborted, Body: body[0], HasBody: true}
}

// Handler transforms a Request into a Result. Implementations may also
// return a plain error (via panic, caught by the connection engine) instead
// of a Result to signal an unhandled failure - see spec §7. A non-nil error
// always wins over the Result: the engine answers InternalServerError and
// discards Result entirely, so an implementation that wants a specific
// status (e.g. Abort(req, status.BadRequest) for a bad request body) must
// return a nil error alongside it.
type Handler interface {
	Handle(req *request.Request) (Result, error)
}

// Func adapts a plain function to Handler.
type Func func(req *request.Request) (Result, error)

func (f Func) Handle(req *request.Request) (Result, error) {
	return f(req)
}

// Composite tries each Handler in order until one returns something other
// than NotHandled - spec's Design Notes §9 "search handler".
type Composite []Handler

func (c Composite) Handle(req *request.Request) (Result, error) {
	for _, h := range c {
		res, err := h.Handle(req)
		if err != nil {
			return res, err
		}
		if res.Kind != KindNotHandled {
			return res, nil
		}
	}

	return NotHandled, nil
}

// ErrorGenerator produces a body for a status/error pair, replacing the
// core's minimal default when plugged in (spec §4.4 "ErrorGenerator
// contract").
type ErrorGenerator interface {
	GeneratePage(req *request.Request, code status.Code, cause error, backtrace string) string
}

// DefaultErrorGenerator renders a minimal HTML page, optionally including
// the error and backtrace when the corresponding show-flags are enabled.
type DefaultErrorGenerator struct {
	ShowErrors     bool
	ShowBacktraces bool
}

func (d DefaultErrorGenerator) GeneratePage(_ *request.Request, code status.Code, cause error, backtrace string) string {
	reason := status.ReasonPhrase(code)
	page := "<html><head><title>" + reason + "</title></head><body><h1>" +
		strconv.Itoa(int(code)) + " " + reason + "</h1>"

	if d.ShowErrors && cause != nil {
		page += "<pre>" + cause.Error() + "</pre>"
	}
	if d.ShowBacktraces && backtrace != "" {
		page += "<pre>" + backtrace + "</pre>"
	}

	return page + "</body></html>"
}
