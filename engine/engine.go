// Package engine implements the per-connection request loop and the
// per-request dispatch cycle (spec §4.5 process_connection/process_request).
package engine

import (
	"io"
	"net"
	"strings"
	"time"

	"github.com/originhttp/core/config"
	"github.com/originhttp/core/handler"
	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/logging"
	"github.com/originhttp/core/method"
	"github.com/originhttp/core/request"
	"github.com/originhttp/core/status"
	"github.com/originhttp/core/tlswrap"
	"github.com/originhttp/core/wire"
)

// Hooks are the Acceptor-owned bits the engine needs but must not import
// directly (the Acceptor owns the shutdown flag and in-flight counter that
// spec §5 requires be touched exactly once per request).
type Hooks struct {
	BeginRequest func()
	EndRequest   func()
	ShuttingDown func() bool
}

// Engine runs connections for one Acceptor configuration. It holds no
// per-connection state itself - Run is safe to call concurrently for
// different connections, which is exactly what ThreadPerConnection does.
type Engine struct {
	cfg            *config.Config
	handler        handler.Handler
	errorGenerator handler.ErrorGenerator
	access         logging.AccessLogger
	message        logging.MessageLogger
	tls            tlswrap.Wrapper
	hooks          Hooks
}

func New(cfg *config.Config, h handler.Handler, errGen handler.ErrorGenerator,
	access logging.AccessLogger, message logging.MessageLogger, tls tlswrap.Wrapper, hooks Hooks) *Engine {
	return &Engine{
		cfg:            cfg,
		handler:        h,
		errorGenerator: errGen,
		access:         access,
		message:        message,
		tls:            tls,
		hooks:          hooks,
	}
}

// Run implements process_connection (spec §4.5). It always returns after
// best-effort flushing and closing conn, regardless of how the loop ends.
func (e *Engine) Run(conn net.Conn) {
	if e.tls != nil {
		wrapped, err := e.tls.Wrap(conn)
		if err != nil {
			e.message.Log(logging.LevelWarning, "TLS handshake failed", err)
			_ = conn.Close()
			return
		}

		conn = wrapped
	}

	client := netio.New(conn, make([]byte, e.cfg.NET.ReadBufferSize), e.cfg.NET.ReadTimeout, e.cfg.NET.WriteTimeout)

	defer func() {
		_ = client.Close()
	}()

	for {
		if e.hooks.ShuttingDown() {
			return
		}

		closeAfter, err := e.serveOne(client)
		if err != nil {
			if err != io.EOF {
				e.message.Log(logging.LevelWarning, "connection loop ended", err)
			}

			return
		}

		if closeAfter {
			return
		}
	}
}

// serveOne parses and answers exactly one request. It returns
// (closeAfter, err): err is non-nil only for conditions that must tear the
// connection down (parse failure already answered with 400, or clean EOF
// reported as io.EOF to stop the loop without logging).
func (e *Engine) serveOne(client netio.Client) (bool, error) {
	start := time.Now()

	rl, err := wire.ParseRequestLine(client, e.cfg.URI.RequestLineSize.Maximal)
	if err != nil {
		e.respondBadRequestAndClose(client, err)
		return true, err
	}
	if rl == nil {
		return true, io.EOF
	}

	var h *headers.Headers
	if rl.Protocol != "" {
		h, err = wire.ParseHeaders(client, e.cfg.Headers.ValueLength.Maximal, e.cfg.Headers.Number.Maximal, e.cfg.NET.HeaderTap)
		if err != nil {
			e.respondBadRequestAndClose(client, err)
			return true, err
		}
	} else {
		h = headers.New()
	}

	if err := wire.HandleExpectContinue(client, h); err != nil {
		return true, err
	}

	cs := &chunkState{}
	req := e.buildRequest(client, rl, h, cs)

	e.hooks.BeginRequest()
	e.processRequest(client, req)
	e.hooks.EndRequest()

	if cs.writer != nil {
		if err := cs.writer.Close(); err != nil {
			req.CloseStream = true
		}
	}

	if err := req.DrainBody(); err != nil {
		req.CloseStream = true
	}

	req.CleanupTempFiles()

	e.access.LogAccess(logging.AccessEntry{
		RemoteAddr: req.RemoteAddr.String(),
		Method:     string(req.Method),
		URI:        req.URI,
		Protocol:   req.Protocol,
		Status:     req.Status,
		Took:       time.Since(start),
		RequestID:  req.ID,
	})

	return req.CloseStream, nil
}

// chunkState is the mutable slot shared between the sendHeaders closure
// (which creates the writer once finalize_response_headers picks chunked
// framing) and serveOne's post-processRequest step, which must Close it to
// emit the terminating chunk.
type chunkState struct {
	writer *wire.ChunkedWriter
}

func (e *Engine) buildRequest(client netio.Client, rl *wire.RequestLine, h *headers.Headers, cs *chunkState) *request.Request {
	req := request.New(e.cfg)
	req.Reset()

	req.RemoteAddr = client.RemoteAddr()
	req.Method = method.Parse(strings.ToUpper(rl.Method))
	req.Protocol = rl.Protocol
	req.Headers = h

	path, rawQuery := wire.SplitURI(rl.URI)
	req.URI = path
	req.Query = wire.ParseQuery(rawQuery)

	if raw, ok := h.Get("COOKIE"); ok {
		req.Cookies.Fill(raw)
	}

	transferEncoding, _ := h.Get("TRANSFER-ENCODING")
	req.Chunked = headers.HasToken(transferEncoding, "chunked")

	req.ContentLength = -1
	if cl, ok := h.Get("CONTENT-LENGTH"); ok && !req.Chunked {
		if n, ok := parseUint(cl); ok {
			req.ContentLength = int64(n)
		}
	}

	req.HasBody = req.Chunked || req.ContentLength > 0

	switch {
	case req.Chunked:
		req.SetRawBody(wire.NewChunkedReader(client, e.cfg.Body.MaxSize))
	case req.ContentLength > 0:
		req.SetRawBody(wire.NewPlainBodyReader(client, req.ContentLength, e.cfg.Body.MaxSize))
	default:
		req.SetRawBody(emptyBody{})
	}

	req.SetHooks(
		func(rq *request.Request) error { return e.sendHeaders(client, rq, cs) },
		func(rq *request.Request, data []byte) error { return e.writeBody(client, rq, cs, data) },
		func(msg string) {
			if e.cfg.Logging.LogWarnings {
				e.message.Log(logging.LevelWarning, msg, nil)
			}
		},
	)

	return req
}

// emptyBody is the raw reader installed when a request declares no body at
// all, so PostParameters/BodyStream/BodyOctets/DrainBody all see a clean
// immediate EOF instead of blocking on the socket.
type emptyBody struct{}

func (emptyBody) Read() ([]byte, error) { return nil, io.EOF }

func (e *Engine) respondBadRequestAndClose(client netio.Client, err error) {
	code := status.BadRequest
	if he, ok := err.(status.HTTPError); ok {
		code = he.Code
	}

	_ = wire.WriteStatusLine(client, code)
	h := headers.New()
	h.Set("Connection", "close")
	h.Set("Content-Length", "0")
	_ = wire.WriteHeaders(client, h, e.cfg.NET.HeaderTap)
}

func parseUint(s string) (uint64, bool) {
	var n uint64
	if s == "" {
		return 0, false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
	}

	return n, true
}
