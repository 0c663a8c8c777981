package engine

import (
	"fmt"
	"runtime/debug"

	"github.com/originhttp/core/handler"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/logging"
	"github.com/originhttp/core/method"
	"github.com/originhttp/core/request"
	"github.com/originhttp/core/status"
)

// processRequest implements process_request (spec §4.5): run the handler
// under panic recovery, then answer NotHandled/Aborted/Handled/Streamed the
// way step 3 describes, and finally fall back to the ErrorGenerator for any
// unrecovered failure - respecting headers_sent, which forces a hard close
// instead of a second write once the response line is already on the wire.
func (e *Engine) processRequest(client netio.Client, req *request.Request) {
	res, err := e.runHandler(req)

	if err != nil {
		e.answerError(client, req, status.InternalServerError, err)
		return
	}

	switch res.Kind {
	case handler.KindStreamed:
		return
	case handler.KindNotHandled:
		e.answerError(client, req, status.NotFound, nil)
		return
	case handler.KindAborted, handler.KindHandled:
		e.answerResult(client, req, res)
		return
	default:
		e.answerError(client, req, status.InternalServerError, fmt.Errorf("engine: unknown handler.Kind %d", res.Kind))
	}
}

// runHandler calls the plugged-in Handler, converting a panic into the
// (Result{}, error) shape the rest of processRequest expects - the Go
// analogue of the source's two nested non-local-exit traps (spec §4.5
// step 2).
func (e *Engine) runHandler(req *request.Request) (res handler.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e.cfg.Logging.LogBacktraces {
				err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()

	return e.handler.Handle(req)
}

// answerResult sends a KindHandled/KindAborted result's body, or the
// error-generator body when HasBody is false (spec §4.4 step 3).
func (e *Engine) answerResult(client netio.Client, req *request.Request, res handler.Result) {
	if req.HeadersSent {
		return
	}

	body := res.Body
	if !res.HasBody {
		body = e.errorGenerator.GeneratePage(req, req.Status, nil, "")
	}

	e.writeFinal(client, req, body)
}

// answerError renders cause via the ErrorGenerator and sends it as the
// response, unless headers are already on the wire - in which case the only
// safe move left is to log and close (spec §4.5 step 6: "an error occurring
// after headers_sent = true cannot be reported to the client").
func (e *Engine) answerError(client netio.Client, req *request.Request, code status.Code, cause error) {
	if req.HeadersSent {
		req.CloseStream = true

		if e.cfg.Logging.LogErrors {
			e.message.Log(logging.LevelError, "error after headers sent", cause)
		}

		return
	}

	req.SetStatus(code)

	backtrace := ""
	if e.cfg.Logging.LogBacktraces && cause != nil {
		backtrace = cause.Error()
	}

	body := e.errorGenerator.GeneratePage(req, code, cause, backtrace)

	if e.cfg.Logging.LogErrors && cause != nil {
		e.message.Log(logging.LevelError, "handler error", cause)
	}

	e.writeFinal(client, req, body)
}

// writeFinal sends headers (with Content-Length fixed to len(body) unless
// the handler already committed to a different framing) and, unless the
// method is HEAD, the body itself.
func (e *Engine) writeFinal(client netio.Client, req *request.Request, body string) {
	if _, ok := req.ContentLengthSet(); !ok {
		req.SetContentLength(int64(len(body)))
	}

	if err := req.SendHeaders(); err != nil {
		req.CloseStream = true
		return
	}

	if req.Method == method.HEAD || len(body) == 0 {
		return
	}

	if _, err := req.Write([]byte(body)); err != nil {
		req.CloseStream = true
	}
}
