package wire

import (
	"bytes"

	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/status"
)

// readLine accumulates bytes from client until a CRLF is found, pushing any
// bytes past the CRLF back onto client via Unread. maxLen bounds the line
// including the CRLF; exceeding it yields status.ErrTooLongRequestLine.
//
// Returns (nil, nil) exactly when a read fails before any byte was read -
// spec §4.1 "no request". That covers a clean connection close between
// requests (io.EOF) and any other read error at that point, such as a read
// timeout on an idle connection.
func readLine(client netio.Client, maxLen int) ([]byte, error) {
	var acc []byte

	for {
		chunk, err := client.Read()
		if len(chunk) == 0 && err != nil {
			if len(acc) == 0 {
				return nil, nil
			}

			return nil, err
		}

		acc = append(acc, chunk...)

		if idx := bytes.Index(acc, crlf); idx >= 0 {
			if idx+len(crlf) > maxLen {
				return nil, status.ErrTooLongRequestLine
			}

			line := acc[:idx]
			rest := acc[idx+2:]
			if len(rest) > 0 {
				client.Unread(rest)
			}

			return line, nil
		}

		if len(acc) > maxLen {
			return nil, status.ErrTooLongRequestLine
		}
	}
}

var crlf = []byte("\r\n")
