// Package request implements the per-request data carrier passed to
// handlers (spec §3 Request). It knows nothing about sockets directly: the
// connection engine wires in a raw body reader and three callbacks
// (SendHeaders, Write, and a warning sink) before handing the Request to a
// handler.
package request

import (
	"net"

	"github.com/google/uuid"
	"github.com/originhttp/core/config"
	"github.com/originhttp/core/cookie"
	"github.com/originhttp/core/form"
	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/method"
	"github.com/originhttp/core/mime"
	"github.com/originhttp/core/status"
)

// QueryParam is one decoded GET parameter, order-preserving (spec §3).
type QueryParam struct {
	Key, Value string
}

// ChunkReader is the minimal interface the engine's plain/chunked body
// readers satisfy (see wire.PlainBodyReader, wire.ChunkedReader).
type ChunkReader interface {
	Read() ([]byte, error)
}

// SendHeadersFunc finalizes and writes the status line + headers on the
// wire; supplied by the connection engine, which alone knows the framing
// rules (spec §4.5 finalize_response_headers).
type SendHeadersFunc func(*Request) error

// WriteFunc writes body bytes on the wire, applying chunked encoding if the
// engine turned it on for this response.
type WriteFunc func(*Request, []byte) error

type bodyMode int

const (
	bodyModeNone bodyMode = iota
	bodyModeParams
	bodyModeStream
	bodyModeOctets
)

// Request is one client request. It is owned by exactly one goroutine for
// its whole life (spec §5) and is never shared.
type Request struct {
	// Incoming, read-only after construction.
	ID         string
	RemoteAddr net.Addr
	Method     method.Method
	URI        string
	Protocol   string
	Headers    *headers.Headers
	Query      []QueryParam
	Cookies    *cookie.Jar

	ContentLength int64 // -1 when absent
	HasBody       bool
	Chunked       bool

	// Outgoing.
	Status         status.Code
	respLength     int64 // -1 when unset
	respLengthSet  bool
	ContentType    mime.MIME
	Charset        mime.Charset
	RespHeaders    *headers.Headers
	OutCookies     []cookie.Cookie
	HeadersSent    bool
	CloseStream    bool
	OutputChunked  bool
	TempFiles      []string

	cfg *config.Config

	mode         bodyMode
	rawBody      ChunkReader
	bodyConsumed bool
	form         *form.Form
	streamReader *bodyStream
	octets       []byte

	sendHeaders SendHeadersFunc
	writeFn     WriteFunc

	warn func(msg string)
}

// New constructs an inert Request; the engine fills incoming fields and
// calls SetHooks/SetRawBody before dispatch.
func New(cfg *config.Config) *Request {
	return &Request{
		cfg:           cfg,
		Status:        status.OK,
		respLength:    -1,
		ContentLength: -1,
		Headers:       headers.NewSize(cfg.Headers.Number.Default),
		RespHeaders:   headers.NewSize(cfg.Headers.Number.Default),
		Cookies:       cookie.NewJar(cfg.Headers.CookiesPrealloc),
		CloseStream:   true,
		ContentType:   cfg.DefaultContentType,
		Charset:       cfg.DefaultCharset,
	}
}

// Reset restores a Request to a fresh state for reuse on a persistent
// connection or a pooled allocation.
func (r *Request) Reset() {
	r.ID = uuid.NewString()
	r.Method = ""
	r.URI = ""
	r.Protocol = ""
	r.Headers.Reset()
	r.Query = r.Query[:0]
	r.Cookies.Reset()
	r.ContentLength = -1
	r.HasBody = false
	r.Chunked = false

	r.Status = status.OK
	r.respLength = -1
	r.respLengthSet = false
	r.ContentType = r.cfg.DefaultContentType
	r.Charset = r.cfg.DefaultCharset
	r.RespHeaders.Reset()
	r.OutCookies = r.OutCookies[:0]
	r.HeadersSent = false
	r.CloseStream = true
	r.OutputChunked = false
	r.TempFiles = r.TempFiles[:0]

	r.mode = bodyModeNone
	r.rawBody = nil
	r.bodyConsumed = false
	r.form = nil
	r.streamReader = nil
	r.octets = nil
}

// SetHooks wires the engine's wire-level callbacks into the Request.
func (r *Request) SetHooks(send SendHeadersFunc, write WriteFunc, warn func(string)) {
	r.sendHeaders = send
	r.writeFn = write
	r.warn = warn
}

// SetRawBody installs the reader the engine prepared for this request's
// framing (plain, bounded by Content-Length, or chunked).
func (r *Request) SetRawBody(reader ChunkReader) {
	r.rawBody = reader
}

// Config exposes the shared tunables for collaborators (form decoders,
// error generators) that need them without importing the engine.
func (r *Request) Config() *config.Config {
	return r.cfg
}

func (r *Request) warnf(msg string) {
	if r.warn != nil {
		r.warn(msg)
	}
}
