package wire

import (
	"bytes"
	"io"
	"strings"

	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/status"
)

// ParseHeaders reads header lines until a blank line, supporting the
// obsolete line-folded continuation (a line starting with space/tab appends
// to the previous header's value, joined by a single space) per spec §4.1.
// maxLineLen bounds each individual header line; maxCount bounds the number
// of distinct header names.
func ParseHeaders(client netio.Client, maxLineLen, maxCount int, tap io.Writer) (*headers.Headers, error) {
	h := headers.NewSize(maxCount)
	lastKey := ""
	count := 0

	for {
		line, err := readLine(client, maxLineLen)
		if err != nil {
			return nil, err
		}

		if line == nil {
			// EOF mid-headers: the request is truncated.
			return nil, status.ErrBadRequest
		}

		if len(line) == 0 {
			return h, nil
		}

		if tap != nil {
			tap.Write(line)
			tap.Write(crlf)
		}

		if line[0] == ' ' || line[0] == '\t' {
			if lastKey == "" {
				return nil, status.ErrBadRequest
			}

			cur, _ := h.Get(lastKey)
			h.Set(lastKey, cur+" "+strings.TrimSpace(headers.B2S(line)))
			continue
		}

		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			return nil, status.ErrBadRequest
		}

		// line backs a buffer allocated fresh by this readLine call and
		// never reused afterwards, so aliasing it via B2S instead of
		// copying into a new string is safe for as long as h is alive.
		name := strings.TrimSpace(headers.B2S(line[:colon]))
		value := strings.TrimSpace(headers.B2S(line[colon+1:]))

		if !h.Has(name) {
			count++
			if count > maxCount {
				return nil, status.ErrHeaderFieldsTooLarge
			}
		}

		h.Add(name, value)
		lastKey = name
	}
}

