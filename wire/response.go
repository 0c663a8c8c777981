package wire

import (
	"strconv"
	"strings"

	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/status"
)

// WriteStatusLine always writes "HTTP/1.1 <code> <reason>\r\n", regardless
// of the request's declared protocol - an intentional, documented deviation
// (spec §4.1 "Response writing").
func WriteStatusLine(client netio.Client, code status.Code) error {
	var sb strings.Builder
	sb.WriteString("HTTP/1.1 ")
	sb.WriteString(strconv.Itoa(int(code)))
	sb.WriteByte(' ')
	sb.WriteString(status.ReasonPhrase(code))
	sb.WriteString("\r\n")

	return client.Write([]byte(sb.String()))
}

// WriteHeaders writes "Name: value\r\n" for each header, folding embedded
// newlines in a value onto tab-prefixed continuation lines and skipping
// empty inner lines, then terminates the block with a bare CRLF.
func WriteHeaders(client netio.Client, h *headers.Headers, tap ioWriter) error {
	var sb strings.Builder

	h.Each(func(name, value string) {
		sb.WriteString(name)
		sb.WriteString(": ")

		lines := strings.Split(value, "\n")
		first := true
		for _, l := range lines {
			l = strings.TrimRight(l, "\r")
			if l == "" {
				continue
			}
			if !first {
				sb.WriteString("\r\n\t")
			}
			sb.WriteString(l)
			first = false
		}

		sb.WriteString("\r\n")

		if tap != nil {
			tap.Write([]byte(name))
			tap.Write([]byte(": "))
			tap.Write([]byte(value))
			tap.Write(crlf)
		}
	})

	sb.WriteString("\r\n")

	return client.Write([]byte(sb.String()))
}

type ioWriter interface {
	Write([]byte) (int, error)
}
