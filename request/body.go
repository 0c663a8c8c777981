package request

import (
	"io"
	"os"
	"strings"

	"github.com/originhttp/core/corerr"
	"github.com/originhttp/core/form"
	"github.com/originhttp/core/mime"
)

// PostParameters implements spec §4.6 post_parameters: decodes the body per
// Content-Type. Calling it after a different body-access mode has already
// been used panics with corerr.ErrBodyAlreadyAccessed - a programming
// error, not a client error (spec §7).
func (r *Request) PostParameters() (*form.Form, error) {
	if r.mode != bodyModeNone && r.mode != bodyModeParams {
		panic(corerr.ErrBodyAlreadyAccessed)
	}

	if r.mode == bodyModeParams {
		return r.form, nil
	}

	r.mode = bodyModeParams

	if !r.HasBody {
		r.warnf("post_parameters called without a body (no Content-Length or chunked encoding)")
		return nil, nil
	}

	contentType, charset := r.parseContentType()

	if contentType == mime.FormMultipart {
		boundary := r.multipartBoundary()
		f, err := form.DecodeMultipart(r.asReader(), boundary, r.cfg.Body.Form.TempDir,
			r.cfg.Body.Form.EntriesPrealloc, r.cfg.Body.MaxSize)
		if err != nil {
			return nil, err
		}

		r.form = f
		r.TempFiles = append(r.TempFiles, f.TempFiles()...)
		r.bodyConsumed = true

		return f, nil
	}

	raw, err := r.readAllRaw()
	if err != nil {
		return nil, err
	}

	if charset == "" {
		charset = r.cfg.Body.Form.DefaultCoding
	}

	f, err := form.DecodeURLEncoded(raw, charset, r.cfg.Body.Form.EntriesPrealloc)
	if err != nil {
		return nil, err
	}

	r.form = f

	return f, nil
}

// BodyStream implements spec §4.6 body_stream: a read-only byte stream
// bounded by the framing already established by the engine (Content-Length
// or chunked).
func (r *Request) BodyStream() (io.Reader, error) {
	if r.mode != bodyModeNone && r.mode != bodyModeStream {
		panic(corerr.ErrBodyAlreadyAccessed)
	}

	r.mode = bodyModeStream

	if r.streamReader == nil {
		r.streamReader = &bodyStream{req: r}
	}

	return r.streamReader, nil
}

// BodyOctets implements spec §4.6 body_octets: fully buffers the body.
func (r *Request) BodyOctets() ([]byte, error) {
	if r.mode != bodyModeNone && r.mode != bodyModeOctets {
		panic(corerr.ErrBodyAlreadyAccessed)
	}

	if r.mode == bodyModeOctets {
		return r.octets, nil
	}

	r.mode = bodyModeOctets

	raw, err := r.readAllRaw()
	if err != nil {
		return nil, err
	}

	r.octets = raw

	return raw, nil
}

// DrainBody consumes any unread body bytes so the next request on a
// persistent connection starts at a frame boundary (spec §4.5 step 5).
func (r *Request) DrainBody() error {
	if r.bodyConsumed || r.rawBody == nil || !r.HasBody {
		return nil
	}

	for {
		_, err := r.rawBody.Read()
		if err == io.EOF {
			r.bodyConsumed = true
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// CleanupTempFiles removes every temp file registered during this request
// (spec §4.5 step 6, §5): multipart uploads land under Body.Form.TempDir and
// must not outlive the request that created them, on any exit path. Errors
// are swallowed the same way form.Form.cleanup does for its own mid-decode
// abort path - a file already gone, or one the sweeper beat us to, isn't a
// request failure.
func (r *Request) CleanupTempFiles() {
	for _, path := range r.TempFiles {
		os.Remove(path)
	}
}

func (r *Request) readAllRaw() ([]byte, error) {
	var buf []byte

	for {
		chunk, err := r.rawBody.Read()
		buf = append(buf, chunk...)

		if err == io.EOF {
			r.bodyConsumed = true
			return buf, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// asReader adapts the raw chunk reader to io.Reader for multipart.Reader.
func (r *Request) asReader() io.Reader {
	return &rawAdapter{req: r}
}

type rawAdapter struct {
	req     *Request
	pending []byte
}

func (a *rawAdapter) Read(p []byte) (int, error) {
	if len(a.pending) == 0 {
		chunk, err := a.req.rawBody.Read()
		a.pending = chunk

		if err == io.EOF {
			a.req.bodyConsumed = true
			if len(chunk) == 0 {
				return 0, io.EOF
			}
		} else if err != nil {
			return 0, err
		}
	}

	n := copy(p, a.pending)
	a.pending = a.pending[n:]

	return n, nil
}

// bodyStream adapts the raw chunk reader to io.Reader for BodyStream.
type bodyStream struct {
	req     *Request
	pending []byte
	eof     bool
}

func (s *bodyStream) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		if s.eof {
			return 0, io.EOF
		}

		chunk, err := s.req.rawBody.Read()
		s.pending = chunk

		if err == io.EOF {
			s.eof = true
			s.req.bodyConsumed = true
		} else if err != nil {
			return 0, err
		}

		if len(s.pending) == 0 {
			if s.eof {
				return 0, io.EOF
			}

			return 0, nil
		}
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	return n, nil
}

func (r *Request) parseContentType() (mime.MIME, string) {
	raw, ok := r.Headers.Get("CONTENT-TYPE")
	if !ok {
		return "", ""
	}

	parts := strings.Split(raw, ";")
	m := strings.TrimSpace(parts[0])

	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(strings.ToLower(p), "charset=") {
			return m, p[len("charset="):]
		}
	}

	return m, ""
}

func (r *Request) multipartBoundary() string {
	raw, ok := r.Headers.Get("CONTENT-TYPE")
	if !ok {
		return ""
	}

	for _, p := range strings.Split(raw, ";")[1:] {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(strings.ToLower(p), "boundary=") {
			return strings.Trim(p[len("boundary="):], `"`)
		}
	}

	return ""
}
