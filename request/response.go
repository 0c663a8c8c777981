package request

import (
	"github.com/originhttp/core/cookie"
	"github.com/originhttp/core/corerr"
	"github.com/originhttp/core/mime"
	"github.com/originhttp/core/status"
)

// SetStatus sets the response status code. Ignored once headers are sent.
func (r *Request) SetStatus(code status.Code) *Request {
	if r.HeadersSent {
		return r
	}

	r.Status = code
	return r
}

// SetHeader overwrites name's value in the outgoing header set (spec §3:
// "later writes overwrite prior same-key").
func (r *Request) SetHeader(name, value string) *Request {
	if r.HeadersSent {
		return r
	}

	r.RespHeaders.Set(name, value)
	return r
}

func (r *Request) AddHeader(name, value string) *Request {
	if r.HeadersSent {
		return r
	}

	r.RespHeaders.Add(name, value)
	return r
}

// SetContentLength sets a known length; mutually informative with chunked
// framing decisions made in finalize_response_headers (engine package).
func (r *Request) SetContentLength(n int64) *Request {
	if r.HeadersSent {
		return r
	}

	r.respLength = n
	r.respLengthSet = true
	return r
}

func (r *Request) ContentLengthSet() (int64, bool) {
	return r.respLength, r.respLengthSet
}

func (r *Request) SetContentType(m mime.MIME) *Request {
	if r.HeadersSent {
		return r
	}

	r.ContentType = m
	return r
}

func (r *Request) SetCharset(c mime.Charset) *Request {
	if r.HeadersSent {
		return r
	}

	r.Charset = c
	return r
}

// SetCookie queues an outgoing Set-Cookie.
func (r *Request) SetCookie(c cookie.Cookie) *Request {
	if r.HeadersSent {
		return r
	}

	r.OutCookies = append(r.OutCookies, c)
	return r
}

// KeepAlive clears close_stream so the connection engine may reuse the
// connection for another request (spec §3 default true, cleared to enable
// keep-alive).
func (r *Request) KeepAlive() *Request {
	r.CloseStream = false
	return r
}

// SendHeaders finalizes and writes the status line and headers, per spec
// §3's invariant that response headers are materialized exactly when
// headers_sent transitions false->true. Calling it twice is a no-op.
func (r *Request) SendHeaders() error {
	if r.HeadersSent {
		return nil
	}

	if r.sendHeaders == nil {
		panic("request: SendHeaders called before the connection engine wired hooks")
	}

	if err := r.sendHeaders(r); err != nil {
		return err
	}

	r.HeadersSent = true

	return nil
}

// Write streams body bytes, sending headers first if they haven't been yet.
// Attempting a second, incompatible write mode isn't checked here - headers
// negotiation only cares about length-known vs chunked, decided once at
// SendHeaders time.
func (r *Request) Write(data []byte) (int, error) {
	if err := r.SendHeaders(); err != nil {
		return 0, err
	}

	if r.writeFn == nil {
		panic("request: Write called before the connection engine wired hooks")
	}

	if err := r.writeFn(r, data); err != nil {
		return 0, err
	}

	return len(data), nil
}

// AbortRequest sets the response status, the status half of spec §4.4's
// abort_request_handler; it takes no body and panics with
// corerr.ErrHeadersAlreadySent once headers are sent. handler.Abort sets
// the status itself and carries the optional body in the Result it
// returns to the engine.
func (r *Request) AbortRequest(code status.Code) {
	if r.HeadersSent {
		panic(corerr.ErrHeadersAlreadySent)
	}

	r.SetStatus(code)
}
