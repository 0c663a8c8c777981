package engine

import (
	"strconv"
	"time"

	"github.com/originhttp/core/cookie"
	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/method"
	"github.com/originhttp/core/mime"
	"github.com/originhttp/core/request"
	"github.com/originhttp/core/status"
	"github.com/originhttp/core/wire"
)

// knownLength reports whether the response's length is implicitly known
// without a Content-Length header - HEAD carries no body regardless of
// status, and 204/304 are defined to never carry one (spec §4.5 step names
// only 304; 204 is folded in here to match §8's testable properties, which
// exercise both).
func knownLength(req *request.Request) bool {
	if req.Method == method.HEAD {
		return true
	}

	switch req.Status {
	case status.NoContent, status.NotModified:
		return true
	}

	if _, ok := req.ContentLengthSet(); ok {
		return true
	}

	return false
}

// sendHeaders implements finalize_response_headers (spec §4.5): decides
// framing (length-known, chunked, or close-delimited), negotiates
// keep-alive, and writes the status line and header block.
func (e *Engine) sendHeaders(client netio.Client, req *request.Request, cs *chunkState) error {
	h := req.RespHeaders

	if !h.Has("Date") {
		h.Set("Date", time.Now().UTC().Format(time.RFC1123))
	}
	if e.cfg.Name != "" && !h.Has("Server") {
		h.Set("Server", e.cfg.Name)
	}

	if req.ContentType != "" && !h.Has("Content-Type") {
		ct := string(req.ContentType)
		if req.Charset != "" && mime.IsTextual(req.ContentType) {
			ct += "; charset=" + string(req.Charset)
		}
		h.Set("Content-Type", ct)
	}

	length, lengthKnown := req.ContentLengthSet()
	known := knownLength(req)

	switch {
	case known:
		if lengthKnown {
			h.Set("Content-Length", strconv.FormatInt(length, 10))
		} else {
			h.Delete("Content-Length")
		}
	case wire.IsHTTP11(req.Protocol):
		req.OutputChunked = true
		h.Set("Transfer-Encoding", "chunked")
		cs.writer = wire.NewChunkedWriter(client)
	default:
		// HTTP/1.0 has no chunked coding: an unknown-length body on that
		// protocol can only be delimited by closing the connection.
		req.CloseStream = true
	}

	persistent := e.negotiateKeepAlive(req, known)
	if persistent {
		h.Set("Connection", "keep-alive")
		if e.cfg.NET.ReadTimeout > 0 {
			h.Set("Keep-Alive", "timeout="+strconv.Itoa(int(e.cfg.NET.ReadTimeout/time.Second)))
		}
		req.CloseStream = false
	} else {
		h.Set("Connection", "close")
		req.CloseStream = true
	}

	for _, c := range req.OutCookies {
		h.Add("Set-Cookie", cookie.Encode(c))
	}

	if err := wire.WriteStatusLine(client, req.Status); err != nil {
		return err
	}

	return wire.WriteHeaders(client, h, e.cfg.NET.HeaderTap)
}

// negotiateKeepAlive implements the Connection-header policy spec §4.5
// describes: HTTP/1.1 is keep-alive unless "close" is present; HTTP/1.0
// requires an explicit "keep-alive" token. Either way persistence also
// requires the Acceptor allow it and the response be delimitable at all.
func (e *Engine) negotiateKeepAlive(req *request.Request, known bool) bool {
	if !e.cfg.PersistentConnections {
		return false
	}
	if !(known || req.OutputChunked) {
		return false
	}

	conn, _ := req.Headers.Get("CONNECTION")

	if wire.IsHTTP11(req.Protocol) {
		return !headers.HasToken(conn, "close")
	}

	return headers.HasToken(conn, "keep-alive")
}

// writeBody writes one slice of body data, applying chunked encoding when
// output_chunking is on for this response.
func (e *Engine) writeBody(client netio.Client, req *request.Request, cs *chunkState, data []byte) error {
	if req.OutputChunked {
		if cs.writer == nil {
			cs.writer = wire.NewChunkedWriter(client)
		}

		return cs.writer.WriteChunk(data)
	}

	if len(data) == 0 {
		return nil
	}

	return client.Write(data)
}
