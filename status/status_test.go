package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReasonPhraseKnown(t *testing.T) {
	require.Equal(t, "Not Found", ReasonPhrase(NotFound))
}

func TestReasonPhraseUnknown(t *testing.T) {
	require.Equal(t, "Unknown Status", ReasonPhrase(Code(799)))
}

func TestRegisterReason(t *testing.T) {
	code := Code(799)
	RegisterReason(code, "Teapot Overflow")

	require.Equal(t, "Teapot Overflow", ReasonPhrase(code))
}

func TestHTTPErrorIsError(t *testing.T) {
	err := NewError(BadRequest, "nope")

	he, ok := err.(HTTPError)
	require.True(t, ok, "NewError did not return an HTTPError, got %T", err)
	require.Equal(t, BadRequest, he.Code)
	require.EqualError(t, err, "nope")
}
