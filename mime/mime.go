// Package mime holds the small set of content-type and charset constants the
// core needs to know about: what it defaults response bodies to, and which
// two content-types it can parse for POST parameters.
package mime

type MIME = string

const (
	Plain             MIME = "text/plain"
	HTML              MIME = "text/html"
	OctetStream       MIME = "application/octet-stream"
	FormURLEncoded    MIME = "application/x-www-form-urlencoded"
	FormMultipart     MIME = "multipart/form-data"
)

type Charset = string

const (
	UTF8 Charset = "UTF-8"
	ISO88591 Charset = "ISO-8859-1"
)

// IsTextual reports whether mime matches the ^text/ prefix the engine uses
// to decide whether to append "; charset=" to Content-Type (spec §4.5).
func IsTextual(m MIME) bool {
	return len(m) >= 5 && m[:5] == "text/"
}
