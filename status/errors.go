package status

// HTTPError pairs a status code with a message. The engine uses its Code as
// the status of the reply to a request it could not parse. An error returned
// by a handler is answered with 500 whether or not it is an HTTPError; a
// handler picks a status with handler.Abort instead.
type HTTPError struct {
	Message string
	Code    Code
}

// NewError builds an HTTPError. It's exported so handlers can produce their
// own status/message pairs beyond the sentinels below.
func NewError(code Code, message string) error {
	return HTTPError{Code: code, Message: message}
}

func (h HTTPError) Error() string {
	return h.Message
}

// Sentinel errors covering the taxonomy in spec §7. The connection engine
// and body parsers return these directly; handlers may compare against them
// with errors.Is.
var (
	ErrCloseConnection = NewError(CloseConnection, "actively closing the connection")

	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrTooLongRequestLine      = NewError(BadRequest, "request line is too long")
	ErrURLDecoding             = NewError(BadRequest, "invalid urlencoded sequence")
	ErrBadChunk                = NewError(BadRequest, "malformed chunk-encoded data")
	ErrBadMultipart            = NewError(BadRequest, "malformed multipart body")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
	ErrMethodNotAllowed        = NewError(MethodNotAllowed, "method not allowed")
	ErrBodyTooLarge            = NewError(RequestEntityTooLarge, "request body is too large")
	ErrHeaderFieldsTooLarge    = NewError(RequestEntityTooLarge, "too large headers section")
	ErrURITooLong              = NewError(RequestURITooLong, "request URI too long")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
	ErrExpectationFailed       = NewError(ExpectationFailed, "expectation failed")
	ErrServiceUnavailable      = NewError(ServiceUnavailable, "service unavailable")
)
